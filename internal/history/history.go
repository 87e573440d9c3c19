package history

import (
	"net/url"
	"strings"
)

// Payload is one-shot state attached to a navigation. The receiver consumes
// it once and then replaces the location without it.
type Payload struct {
	TargetView string
	PostID     int
}

// Location is a single history entry
type Location struct {
	Path    string
	Query   url.Values
	Payload *Payload
}

// Parse splits a raw location such as "/oauth/kakao?code=abc"
func Parse(raw string) Location {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{Path: "/"}
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return Location{Path: raw}
	}
	return Location{Path: u.Path, Query: u.Query()}
}

// String renders the location with its query
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// History is an in-memory stand-in for the browser history. It is not safe
// for concurrent use; the UI loop owns it.
type History struct {
	entries []Location
	index   int
	pending []Location
}

// New creates a history positioned at start
func New(start string) *History {
	return &History{entries: []Location{Parse(start)}}
}

// Current returns the active location
func (h *History) Current() Location {
	return h.entries[h.index]
}

// Push appends a location, discarding any forward entries
func (h *History) Push(raw string, payload *Payload) {
	loc := Parse(raw)
	loc.Payload = payload
	h.entries = append(h.entries[:h.index+1], loc)
	h.index = len(h.entries) - 1
	h.pending = append(h.pending, loc)
}

// Replace overwrites the active location
func (h *History) Replace(raw string, payload *Payload) {
	loc := Parse(raw)
	loc.Payload = payload
	h.entries[h.index] = loc
	h.pending = append(h.pending, loc)
}

// ClearPayload drops the one-shot payload of the active location without
// raising a change notification.
func (h *History) ClearPayload() {
	h.entries[h.index].Payload = nil
}

// Back moves to the previous entry
func (h *History) Back() bool {
	if h.index == 0 {
		return false
	}
	h.index--
	h.pending = append(h.pending, h.entries[h.index])
	return true
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.entries)
}

// Drain returns and clears the location changes not yet delivered
func (h *History) Drain() []Location {
	out := h.pending
	h.pending = nil
	return out
}
