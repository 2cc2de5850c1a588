// Package events publishes combat events onto the rpg-toolkit event bus.
package events

import (
	"context"
	"log"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"
	rpgevents "github.com/KirkDiggler/rpg-toolkit/events"
)

// Handler receives toolkit events published on the bus
type Handler func(ctx context.Context, e rpgevents.Event) error

// Bus wraps the toolkit bus and remembers its own subscriptions so they can be dropped together
type Bus struct {
	bus *rpgevents.Bus

	mu            sync.Mutex
	subscriptions map[string]string // subscription id -> event name
}

// NewBus creates a bus over a fresh toolkit bus
func NewBus() *Bus {
	return Wrap(rpgevents.NewBus())
}

// Wrap shares an existing toolkit bus, e.g. one owned by a larger game loop
func Wrap(bus *rpgevents.Bus) *Bus {
	return &Bus{
		bus:           bus,
		subscriptions: make(map[string]string),
	}
}

// Toolkit returns the underlying rpg-toolkit bus
func (b *Bus) Toolkit() *rpgevents.Bus {
	return b.bus
}

// Publish sends a named event with context data. A nil bus is a no-op.
func (b *Bus) Publish(ctx context.Context, name string, source, target core.Entity, data map[string]any) error {
	if b == nil {
		return nil
	}

	event := rpgevents.NewGameEvent(name, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	return b.bus.Publish(ctx, event)
}

// Subscribe registers handler for name; lower priority runs first
func (b *Bus) Subscribe(name string, priority int, handler Handler) string {
	id := b.bus.SubscribeFunc(name, priority, func(ctx context.Context, e rpgevents.Event) error {
		return handler(ctx, e)
	})

	b.mu.Lock()
	b.subscriptions[id] = name
	b.mu.Unlock()

	return id
}

// Unsubscribe removes one subscription
func (b *Bus) Unsubscribe(id string) error {
	b.mu.Lock()
	delete(b.subscriptions, id)
	b.mu.Unlock()

	return b.bus.Unsubscribe(id)
}

// Close drops every subscription made through this wrapper
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, name := range b.subscriptions {
		if err := b.bus.Unsubscribe(id); err != nil {
			log.Printf("[EVENTS] failed to unsubscribe %s from %s: %v", id, name, err)
		}
	}
	b.subscriptions = make(map[string]string)
}

// SubscriptionCount reports how many subscriptions this wrapper holds
func (b *Bus) SubscriptionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subscriptions)
}

// IntValue reads an int from the event context
func IntValue(e rpgevents.Event, key string) (int, bool) {
	raw, ok := e.Context().Get(key)
	if !ok {
		return 0, false
	}
	v, ok := raw.(int)
	return v, ok
}

// StringValue reads a string from the event context
func StringValue(e rpgevents.Event, key string) (string, bool) {
	raw, ok := e.Context().Get(key)
	if !ok {
		return "", false
	}
	v, ok := raw.(string)
	return v, ok
}
