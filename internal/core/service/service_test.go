package service_test

import (
	"context"
	"sync"

	"crmchat/internal/core/telemetry"
)

var ctx = context.Background()

// eventProbe remembers the business events a service emits.
type eventProbe struct {
	*telemetry.NoOpProbe
	mu     sync.Mutex
	events []string
}

func newEventProbe() *eventProbe {
	return &eventProbe{NoOpProbe: &telemetry.NoOpProbe{}}
}

func (p *eventProbe) RecordBusinessEvent(ctx context.Context, event string, entity string, entityID string, metadata map[string]interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)
}

func (p *eventProbe) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]string(nil), p.events...)
}
