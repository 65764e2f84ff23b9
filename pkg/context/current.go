package context

import (
	"context"
	"sync"
)

const (
	RequestIDKey = "request_id"
	ClientIPKey  = "ip_address"
	UserAgentKey = "user_agent"
	MethodKey    = "method"
	PathKey      = "path"
)

// Current holds request-scoped values. One instance lives per request.
type Current struct {
	mu   sync.RWMutex
	data map[string]interface{}
}

func NewCurrent() *Current {
	return &Current{
		data: make(map[string]interface{}),
	}
}

func (c *Current) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *Current) Get(key string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data[key]
}

func (c *Current) GetString(key string) (string, bool) {
	str, ok := c.Get(key).(string)
	return str, ok
}

func (c *Current) RequestID() string {
	id, _ := c.GetString(RequestIDKey)
	return id
}

func (c *Current) All() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]interface{}, len(c.data))
	for k, v := range c.data {
		result[k] = v
	}

	return result
}

type contextKey string

const currentKey contextKey = "current"

func WithCurrent(ctx context.Context, current *Current) context.Context {
	return context.WithValue(ctx, currentKey, current)
}

func FromContext(ctx context.Context) (*Current, bool) {
	current, ok := ctx.Value(currentKey).(*Current)
	return current, ok
}

// GetCurrent never returns nil; outside a request it yields an empty Current.
func GetCurrent(ctx context.Context) *Current {
	if current, ok := FromContext(ctx); ok {
		return current
	}

	return NewCurrent()
}

// RequestID is a shortcut for GetCurrent(ctx).RequestID().
func RequestID(ctx context.Context) string {
	return GetCurrent(ctx).RequestID()
}
