package event

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"go.uber.org/zap"
)

// Handler reacts to one event.
type Handler func(ctx context.Context, ev Event) error

type subscription struct {
	id      uint64
	handler Handler
}

// Dispatcher routes events to the handlers subscribed for their kind.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[Kind][]subscription
	nextID   uint64
	logger   *zap.Logger
}

// NewDispatcher returns an empty dispatch table.
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{
		handlers: make(map[Kind][]subscription),
		logger:   logger,
	}
}

// Subscribe registers handler for kind and returns a function that removes it.
func (d *Dispatcher) Subscribe(kind Kind, handler Handler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	id := d.nextID
	d.handlers[kind] = append(d.handlers[kind], subscription{id: id, handler: handler})

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			subs := d.handlers[kind]
			for i, s := range subs {
				if s.id == id {
					d.handlers[kind] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
		})
	}
}

// Subscribed reports how many handlers are registered for kind.
func (d *Dispatcher) Subscribed(kind Kind) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers[kind])
}

// Dispatch runs every handler for ev's kind in registration order on the
// calling goroutine. Handler errors and panics are joined into the result;
// an event nobody handles is not an error.
func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) error {
	if ev == nil {
		return errors.New("dispatch nil event")
	}
	d.mu.RLock()
	subs := make([]subscription, len(d.handlers[ev.Kind()]))
	copy(subs, d.handlers[ev.Kind()])
	d.mu.RUnlock()

	if len(subs) == 0 {
		d.logger.Debug("event has no handlers", zap.String("kind", string(ev.Kind())))
		return nil
	}

	var errs []error
	for _, s := range subs {
		if err := d.call(ctx, s.handler, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) call(ctx context.Context, h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event handler panic",
				zap.String("kind", string(ev.Kind())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("%s handler panicked: %v", ev.Kind(), r)
		}
	}()
	return h(ctx, ev)
}
