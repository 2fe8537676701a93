// Package handler implements the flow handler list and the output cache
// built on top of it. A handler chain is both an interception mechanism (a
// handler may consume an item) and a tee (a handler may return the item
// unchanged, producing only a side effect).
package handler

import "sync"

// Handler is one step of a FlowHandlerList: given an item, it either passes
// it on (possibly transformed) or consumes it, ending the chain. ok=false
// means consumed.
type Handler[Item any] func(Item) (result Item, ok bool)

// HandleResult is the outcome of running one item through a
// FlowHandlerList: either it Passed all the way through (with the final,
// possibly-transformed item), or some handler Consumed it (recording which
// index did so).
type HandleResult[Item any] struct {
	Passed     bool
	Item       Item
	ConsumedAt int
}

// FlowHandlerList is a generic, domain-agnostic pipeline where each handler
// may pass, transform, or consume an item.
type FlowHandlerList[Item any] struct {
	mu       sync.Mutex
	handlers []Handler[Item]
}

// NewFlowHandlerList creates an empty handler list, optionally seeded with
// handlers.
func NewFlowHandlerList[Item any](handlers ...Handler[Item]) *FlowHandlerList[Item] {
	return &FlowHandlerList[Item]{handlers: append([]Handler[Item]{}, handlers...)}
}

// AddHandler appends a handler to the end of the chain.
func (l *FlowHandlerList[Item]) AddHandler(h Handler[Item]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = append(l.handlers, h)
}

// Handle walks the chain in registration order, threading item through each
// handler. The first handler to return ok=false consumes the item and
// short-circuits the rest of the chain.
func (l *FlowHandlerList[Item]) Handle(item Item) HandleResult[Item] {
	l.mu.Lock()
	handlers := l.handlers
	l.mu.Unlock()

	for i, h := range handlers {
		next, ok := h(item)
		if !ok {
			return HandleResult[Item]{Passed: false, ConsumedAt: i}
		}
		item = next
	}
	return HandleResult[Item]{Passed: true, Item: item}
}
