package catalog

import (
	"sync"

	"salonbook/models"
	"salonbook/services/events"
)

// registry is the shared in-memory collection behind every catalog. Items
// are replaced whole; readers get copies of the slice.
type registry[T any] struct {
	mu    sync.RWMutex
	items []T
	idOf  func(T) string
	kind  models.EventKind
	pub   events.Publisher
}

func newRegistry[T any](kind models.EventKind, idOf func(T) string, pub events.Publisher) *registry[T] {
	if pub == nil {
		pub = events.Nop{}
	}
	return &registry[T]{idOf: idOf, kind: kind, pub: pub}
}

func (r *registry[T]) load(items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]T(nil), items...)
}

func (r *registry[T]) get(id string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, it := range r.items {
		if r.idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (r *registry[T]) list() []T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]T(nil), r.items...)
}

func (r *registry[T]) put(item T) {
	id := r.idOf(item)
	r.mu.Lock()
	replaced := false
	for i, it := range r.items {
		if r.idOf(it) == id {
			r.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		r.items = append(r.items, item)
	}
	r.mu.Unlock()

	r.pub.Publish(events.Upserted(r.kind, id, item))
}

func (r *registry[T]) remove(id string) (T, bool) {
	r.mu.Lock()
	var removed T
	found := false
	for i, it := range r.items {
		if r.idOf(it) == id {
			removed = it
			found = true
			r.items = append(r.items[:i], r.items[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	if found {
		r.pub.Publish(events.Deleted(r.kind, id, removed))
	}
	return removed, found
}
