package broker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
)

var ErrClosed = errors.New("broker: closed")

type Event interface {
	Name() string
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) []error
}

type Handler func(ctx context.Context, evt Event) error

// Bus delivers events synchronously to every handler subscribed to the event
// name, in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	closed   bool
}

func New() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

func (b *Bus) Subscribe(eventName string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], h)
}

// SubscribeAll registers h for each of the given event names.
func (b *Bus) SubscribeAll(h Handler, eventNames ...string) {
	for _, name := range eventNames {
		b.Subscribe(name, h)
	}
}

func (b *Bus) Publish(ctx context.Context, evt Event) []error {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return []error{ErrClosed}
	}
	hs := append([]Handler(nil), b.handlers[evt.Name()]...)
	b.mu.RUnlock()

	var errs []error
	for i, h := range hs {
		if err := b.deliver(ctx, evt, h); err != nil {
			log.Printf("layer=broker component=bus method=Publish event=%s handler_index=%d err=%v", evt.Name(), i, err)
			errs = append(errs, err)
		}
	}
	return errs
}

func (b *Bus) deliver(ctx context.Context, evt Event, h Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, evt)
}

// Close drops every subscription; later publishes fail with ErrClosed.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.handlers = make(map[string][]Handler)
}
