package events

import (
	"sync"
)

// Feed fans a stream of values out to subscribers. Subscribers are either
// channels, which get non-blocking sends and miss values when full, or
// callbacks, which run synchronously on the publishing goroutine.
// With replay enabled a new subscriber immediately receives the latest value.
type Feed[T any] struct {
	mu        sync.RWMutex
	channels  map[uint64]chan<- T
	callbacks map[uint64]func(T)
	nextID    uint64
	replay    bool
	latest    T
	published bool
}

func NewFeed[T any](replay bool) *Feed[T] {
	return &Feed[T]{
		channels:  make(map[uint64]chan<- T),
		callbacks: make(map[uint64]func(T)),
		replay:    replay,
	}
}

// Subscribe registers ch and returns a func that removes it.
func (f *Feed[T]) Subscribe(ch chan<- T) func() {
	if ch == nil {
		panic("Feed: channel cannot be nil")
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.channels[id] = ch
	latest, send := f.latest, f.replay && f.published
	f.mu.Unlock()

	if send {
		select {
		case ch <- latest:
		default:
		}
	}

	return func() {
		f.mu.Lock()
		delete(f.channels, id)
		f.mu.Unlock()
	}
}

// OnPublish registers a callback and returns a func that removes it.
func (f *Feed[T]) OnPublish(callback func(T)) func() {
	if callback == nil {
		panic("Feed: callback cannot be nil")
	}

	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.callbacks[id] = callback
	latest, send := f.latest, f.replay && f.published
	f.mu.Unlock()

	if send {
		callback(latest)
	}

	return func() {
		f.mu.Lock()
		delete(f.callbacks, id)
		f.mu.Unlock()
	}
}

// Publish delivers value to every subscriber. Deliveries happen outside the
// lock so callbacks may subscribe or unsubscribe.
func (f *Feed[T]) Publish(value T) {
	f.mu.Lock()
	if f.replay {
		f.latest = value
		f.published = true
	}
	channels := make([]chan<- T, 0, len(f.channels))
	for _, ch := range f.channels {
		channels = append(channels, ch)
	}
	callbacks := make([]func(T), 0, len(f.callbacks))
	for _, cb := range f.callbacks {
		callbacks = append(callbacks, cb)
	}
	f.mu.Unlock()

	for _, ch := range channels {
		select {
		case ch <- value:
		default:
		}
	}
	for _, cb := range callbacks {
		cb(value)
	}
}

// Latest returns the last published value when replay is on.
func (f *Feed[T]) Latest() (T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest, f.published
}

func (f *Feed[T]) SubscriberCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.channels) + len(f.callbacks)
}
