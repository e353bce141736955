package source

import "sync"

// Registry holds one Feed per device
type Registry struct {
	bufferSize int

	mu    sync.RWMutex
	feeds map[string]*Feed
}

// NewRegistry creates an empty registry
func NewRegistry(bufferSize int) *Registry {
	return &Registry{
		bufferSize: bufferSize,
		feeds:      make(map[string]*Feed),
	}
}

// Get returns the device's feed, creating it on first use
func (r *Registry) Get(deviceID string) *Feed {
	r.mu.RLock()
	feed, ok := r.feeds[deviceID]
	r.mu.RUnlock()
	if ok {
		return feed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if feed, ok := r.feeds[deviceID]; ok {
		return feed
	}
	feed = NewFeed(deviceID, r.bufferSize)
	r.feeds[deviceID] = feed
	return feed
}

// Lookup returns the device's feed without creating one
func (r *Registry) Lookup(deviceID string) (*Feed, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	feed, ok := r.feeds[deviceID]
	return feed, ok
}
