package context

import (
	"context"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
)

func TestCurrent_RoundTripThroughContext(t *testing.T) {
	RegisterTestingT(t)

	current := NewCurrent()
	current.Set(RequestIDKey, "req-1")
	current.Set(MethodKey, "GET")

	ctx := WithCurrent(context.Background(), current)

	Expect(RequestID(ctx)).To(Equal("req-1"))
	Expect(GetCurrent(ctx).All()).To(HaveKeyWithValue(MethodKey, "GET"))
}

func TestCurrent_MissingFromContext(t *testing.T) {
	RegisterTestingT(t)

	_, ok := FromContext(context.Background())

	Expect(ok).To(BeFalse())
	Expect(GetCurrent(context.Background())).ToNot(BeNil())
	Expect(RequestID(context.Background())).To(BeEmpty())
}

func TestCurrent_ConcurrentAccess(t *testing.T) {
	RegisterTestingT(t)

	current := NewCurrent()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			current.Set(PathKey, i)
			current.Get(PathKey)
		}(i)
	}

	wg.Wait()

	_, ok := current.GetString(PathKey)
	Expect(ok).To(BeFalse())
	Expect(current.Get(PathKey)).To(BeAssignableToTypeOf(0))
}
