/*
Package watch broadcasts tree mutation events to any number of
subscribers.

A Hub decouples the single-threaded tree from observers such as debug
overlays, statistics collectors, or rebuild schedulers: mutations publish
fire-and-forget events, subscribers consume them on their own goroutines
at their own pace.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package watch

import (
	"context"

	"github.com/guiguan/caster"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'boxtree'
func tracer() tracing.Trace {
	return tracing.Select("boxtree")
}

// Op identifies the kind of tree mutation an event reports.
type Op uint8

const (
	OpBuild Op = iota + 1
	OpAdd
	OpRemove
	OpRefresh
)

func (op Op) String() string {
	switch op {
	case OpBuild:
		return "build"
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpRefresh:
		return "refresh"
	}
	return "unknown"
}

// Event is one tree mutation notice.
type Event struct {
	Op Op
	// Items is the number of items the operation touched.
	Items int
	// Tracked is the number of tracked items after the operation.
	Tracked int
}

// Hub fans mutation events out to subscribers.
//
// The zero Hub is not usable; create hubs with NewHub and Close them when
// the tree is done mutating.
type Hub struct {
	cast *caster.Caster
}

// NewHub creates a hub ready for subscriptions.
func NewHub() *Hub {
	return &Hub{cast: caster.New(nil)}
}

// Subscribe registers a subscriber and returns its event channel, buffered
// to capacity. The channel closes when ctx is canceled or the hub closes;
// events still undelivered at cancellation are dropped. A nil ctx
// subscribes for the hub's lifetime.
func (h *Hub) Subscribe(ctx context.Context, capacity uint) (<-chan Event, bool) {
	raw, ok := h.cast.Sub(ctx, capacity)
	if !ok {
		return nil, false
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ch := make(chan Event, capacity)
	go func() {
		defer close(ch)
		for m := range raw {
			ev, isEvent := m.(Event)
			if !isEvent {
				continue
			}
			select {
			case ch <- ev:
			case <-ctx.Done():
				// a canceled subscription is never drained
				return
			}
		}
	}()
	return ch, true
}

// Publish hands ev to the broadcaster. Subscribers that fall behind their
// channel capacity do not block publishing.
func (h *Hub) Publish(ev Event) {
	if h == nil || h.cast == nil {
		return
	}
	if !h.cast.Pub(ev) {
		tracer().Debugf("watch: event %s dropped, hub is closed", ev.Op)
	}
}

// Close shuts the hub down and closes all subscriber channels. Publishing
// to a closed hub is a no-op.
func (h *Hub) Close() {
	if h == nil || h.cast == nil {
		return
	}
	h.cast.Close()
}
