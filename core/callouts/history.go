package callouts

import "sync"

// HistoryDelegate observes history mutations. Callbacks fire synchronously
// from the context that mutated the history.
type HistoryDelegate interface {
	OnCalloutInserted(callout Callout)
	OnCalloutRemoved(callout Callout)
	OnHistoryCleared()
}

// History is a bounded record of played callouts. When the bound is reached,
// the oldest entry is evicted first. Duplicate identities are allowed;
// de-duplication is the caller's concern.
type History struct {
	mu       sync.Mutex
	bound    int
	entries  []Callout
	delegate HistoryDelegate
}

type HistoryOption func(*History)

func WithHistoryDelegate(delegate HistoryDelegate) HistoryOption {
	return func(h *History) { h.delegate = delegate }
}

func NewHistory(bound int, opts ...HistoryOption) *History {
	if bound < 1 {
		bound = 1
	}

	history := &History{bound: bound}
	for _, opt := range opts {
		opt(history)
	}
	return history
}

// Insert appends a callout, evicting the oldest entry when the bound is
// exceeded. The removal notification fires before the insertion one so the
// delegate always observes a history within bound.
func (h *History) Insert(callout Callout) {
	if h == nil || callout == nil {
		return
	}

	h.mu.Lock()
	var evicted Callout
	if len(h.entries) >= h.bound {
		evicted = h.entries[0]
		h.entries = append(h.entries[:0], h.entries[1:]...)
	}
	h.entries = append(h.entries, callout)
	delegate := h.delegate
	h.mu.Unlock()

	if delegate != nil {
		if evicted != nil {
			delegate.OnCalloutRemoved(evicted)
		}
		delegate.OnCalloutInserted(callout)
	}
}

// Callouts returns the recorded callouts oldest first.
func (h *History) Callouts() []Callout {
	if h == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Callout(nil), h.entries...)
}

func (h *History) Len() int {
	if h == nil {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Clear drops every entry and notifies the delegate once.
func (h *History) Clear() {
	if h == nil {
		return
	}

	h.mu.Lock()
	hadEntries := len(h.entries) > 0
	h.entries = nil
	delegate := h.delegate
	h.mu.Unlock()

	if hadEntries && delegate != nil {
		delegate.OnHistoryCleared()
	}
}
