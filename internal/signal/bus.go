// Package signal is a named publish/subscribe channel shared by widgets
// that do not know about each other.
package signal

import "sync"

// EventGoSearch asks the router to open the search view with a keyword
const EventGoSearch = "pilly:go-search"

// SearchSignal is the payload of EventGoSearch
type SearchSignal struct {
	Keyword string
}

// Handler receives a published payload
type Handler func(payload any)

type subscription struct {
	id int
	fn Handler
}

// Bus delivers payloads synchronously in subscription order
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]subscription
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[string][]subscription)}
}

// Subscribe registers fn for name and returns a function that removes it
func (b *Bus) Subscribe(name string, fn Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscription{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[name]
		for i, s := range list {
			if s.id == id {
				b.subs[name] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers payload to every handler subscribed to name and returns
// the number of handlers called.
func (b *Bus) Publish(name string, payload any) int {
	b.mu.Lock()
	handlers := make([]Handler, 0, len(b.subs[name]))
	for _, s := range b.subs[name] {
		handlers = append(handlers, s.fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(payload)
	}
	return len(handlers)
}

// GoSearch publishes EventGoSearch with keyword
func (b *Bus) GoSearch(keyword string) int {
	return b.Publish(EventGoSearch, SearchSignal{Keyword: keyword})
}
