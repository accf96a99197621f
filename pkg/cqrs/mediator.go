// Package cqrs routes typed command and query values to exactly one registered
// handler. Registration mistakes (no handler, duplicate handler) are
// configuration errors raised at wiring time or dispatch time, never domain
// errors.
package cqrs

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// HandlerFunc processes a single request type and returns its result.
type HandlerFunc[Req any, Res any] func(ctx context.Context, req Req) (Res, error)

// Mediator holds the request-type -> handler registry.
type Mediator struct {
	mu       sync.RWMutex
	handlers map[reflect.Type]any
}

func New() *Mediator {
	return &Mediator{handlers: make(map[reflect.Type]any)}
}

// Register binds h as the sole handler for Req. Registering a second handler
// for the same request type is a programming error and fails immediately.
func Register[Req any, Res any](m *Mediator, h HandlerFunc[Req, Res]) error {
	if h == nil {
		return fmt.Errorf("cqrs: nil handler for %v", requestType[Req]())
	}
	t := requestType[Req]()
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.handlers[t]; dup {
		return fmt.Errorf("cqrs: handler already registered for %v", t)
	}
	m.handlers[t] = h
	return nil
}

// MustRegister is Register for startup wiring, where a duplicate registration
// should stop the process.
func MustRegister[Req any, Res any](m *Mediator, h HandlerFunc[Req, Res]) {
	if err := Register(m, h); err != nil {
		panic(err)
	}
}

// Send dispatches req to its registered handler and returns the typed result.
// Dispatch is synchronous from the caller's perspective; the handler may still
// suspend on I/O through ctx.
func Send[Req any, Res any](ctx context.Context, m *Mediator, req Req) (Res, error) {
	var zero Res
	t := requestType[Req]()
	m.mu.RLock()
	raw, ok := m.handlers[t]
	m.mu.RUnlock()
	if !ok {
		return zero, fmt.Errorf("cqrs: no handler registered for %v", t)
	}
	h, ok := raw.(HandlerFunc[Req, Res])
	if !ok {
		return zero, fmt.Errorf("cqrs: handler for %v has result type %T, not %T", t, raw, h)
	}
	return h(ctx, req)
}

func requestType[Req any]() reflect.Type {
	return reflect.TypeOf((*Req)(nil)).Elem()
}
