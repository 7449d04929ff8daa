package events

import (
	"sync"
	"time"

	"salonbook/models"
)

// Publisher is what the stores depend on.
type Publisher interface {
	Publish(evt models.Event)
}

// Handler receives events synchronously, in publish order.
type Handler func(evt models.Event)

// Bus is an in-process fan-out of store mutations.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
	order    []int
	now      func() time.Time
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler), now: time.Now}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = h
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
		for i, v := range b.order {
			if v == id {
				b.order = append(b.order[:i], b.order[i+1:]...)
				break
			}
		}
	}
}

// Publish stamps evt and hands it to every subscriber.
func (b *Bus) Publish(evt models.Event) {
	if evt.At.IsZero() {
		evt.At = b.now()
	}
	b.mu.RLock()
	hs := make([]Handler, 0, len(b.order))
	for _, id := range b.order {
		hs = append(hs, b.handlers[id])
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(evt)
	}
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(models.Event) {}

// Upserted builds an upsert event.
func Upserted(kind models.EventKind, id string, payload any) models.Event {
	return models.Event{Kind: kind, Action: models.ActionUpsert, ID: id, Payload: payload}
}

// Deleted builds a delete event.
func Deleted(kind models.EventKind, id string, payload any) models.Event {
	return models.Event{Kind: kind, Action: models.ActionDelete, ID: id, Payload: payload}
}
