package handler

import (
	"sync"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// Cache is a thread-safe, append-only output cache: every output ever
// delivered is first offered to the handler chain; a consumed output is
// never appended.
type Cache struct {
	mu       sync.RWMutex
	outputs  []navm.Output
	handlers *FlowHandlerList[navm.Output]
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{handlers: NewFlowHandlerList[navm.Output]()}
}

// Put offers out to the handler chain; if it passes through (possibly
// transformed), the result is appended to the cache's sequence.
func (c *Cache) Put(out navm.Output) {
	result := c.handlers.Handle(out)
	if !result.Passed {
		return
	}
	c.mu.Lock()
	c.outputs = append(c.outputs, result.Item)
	c.mu.Unlock()
}

// ForEach iterates the cached sequence under a read lock, calling f for
// each element; f returns false to stop early.
func (c *Cache) ForEach(f func(navm.Output) bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, out := range c.outputs {
		if !f(out) {
			return
		}
	}
}

// AddHandler appends a handler to the cache's chain, used by, e.g., a
// Websocket bridge's broadcast hook.
func (c *Cache) AddHandler(h Handler[navm.Output]) {
	c.handlers.AddHandler(h)
}

// Snapshot returns a copy of the cached outputs, used by save-outputs
// (nal.Executor) and by tests.
func (c *Cache) Snapshot() []navm.Output {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]navm.Output, len(c.outputs))
	copy(out, c.outputs)
	return out
}

// Len reports the number of cached (non-consumed) outputs.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.outputs)
}
