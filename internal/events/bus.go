package events

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/wirebox/internal/logger"
)

// Handler receives events from a Bus.
type Handler interface {
	// Layer orders delivery: lower layers receive events first, except
	// Render which is delivered highest layer first.
	Layer() float64

	// Notify handles one event. Returning true consumes it and stops
	// delivery to the remaining handlers.
	Notify(ev Event) bool
}

type funcHandler struct {
	layer float64
	fn    func(Event) bool
}

func (f funcHandler) Layer() float64       { return f.layer }
func (f funcHandler) Notify(ev Event) bool { return f.fn(ev) }

// Func adapts a function to a Handler on the given layer.
func Func(layer float64, fn func(Event) bool) Handler {
	return funcHandler{layer: layer, fn: fn}
}

// Handle identifies a registration. The zero Handle is never issued.
type Handle uint64

type entry struct {
	handle  Handle
	handler Handler
}

// Bus delivers events to registered handlers in layer order.
//
// Architecture:
//   - Single-threaded; not safe for concurrent use
//   - Publish may be called from inside a handler (re-entrant)
//   - Handlers on the same layer run in registration order
//   - A handler unregistered during a publish is not called afterwards
type Bus struct {
	entries []entry
	live    map[Handle]struct{}
	next    Handle

	// ordered is rebuilt after registration changes; publishes in flight
	// keep iterating the slice they started with.
	ordered  []entry
	reversed []entry
	dirty    bool

	log *zap.Logger
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		live: make(map[Handle]struct{}),
		log:  logger.Named("events"),
	}
}

// Register adds h and returns the handle that removes it.
func (b *Bus) Register(h Handler) Handle {
	b.next++
	handle := b.next
	b.entries = append(b.entries, entry{handle: handle, handler: h})
	b.live[handle] = struct{}{}
	b.dirty = true
	b.log.Debug("handler registered", zap.Uint64("handle", uint64(handle)), zap.Float64("layer", h.Layer()))
	return handle
}

// Unregister removes the handler behind handle. Unregistering a handle that
// is not registered (or was already removed) is a no-op and returns false.
func (b *Bus) Unregister(handle Handle) bool {
	if _, ok := b.live[handle]; !ok {
		return false
	}
	delete(b.live, handle)
	for i, e := range b.entries {
		if e.handle == handle {
			b.entries = append(b.entries[:i:i], b.entries[i+1:]...)
			break
		}
	}
	b.dirty = true
	b.log.Debug("handler unregistered", zap.Uint64("handle", uint64(handle)))
	return true
}

// Registered reports whether handle is currently registered.
func (b *Bus) Registered(handle Handle) bool {
	_, ok := b.live[handle]
	return ok
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	return len(b.entries)
}

// Publish delivers ev to every handler in order until one consumes it.
// It reports whether the event was consumed.
func (b *Bus) Publish(ev Event) bool {
	order := b.order(ev.Kind == KindRender)
	for _, e := range order {
		if _, ok := b.live[e.handle]; !ok {
			continue
		}
		if e.handler.Notify(ev) {
			return true
		}
	}
	return false
}

func (b *Bus) order(reverse bool) []entry {
	if b.dirty {
		ordered := make([]entry, len(b.entries))
		copy(ordered, b.entries)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].handler.Layer() < ordered[j].handler.Layer()
		})

		reversed := make([]entry, len(ordered))
		copy(reversed, ordered)
		sort.SliceStable(reversed, func(i, j int) bool {
			return reversed[i].handler.Layer() > reversed[j].handler.Layer()
		})

		b.ordered = ordered
		b.reversed = reversed
		b.dirty = false
	}
	if reverse {
		return b.reversed
	}
	return b.ordered
}
