package boxtree

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"github.com/npillmayer/boxtree/geom"
	"github.com/npillmayer/boxtree/sah"
	"github.com/npillmayer/boxtree/watch"
)

// Tree is a bounding-box tree over a dynamic set of tracked items.
//
// Nodes live in an arena indexed by int32 and carry parent back-references,
// so ancestor updates after a mutation walk O(depth) slots instead of
// searching from the root. A handle map resolves every tracked item to its
// leaf in O(1).
//
// The zero Tree is an empty tree ready for use with default configuration.
// Trees are not safe for concurrent use; callers must serialize mutations
// and queries.
type Tree struct {
	cfg     Config
	split   *sah.Splitter
	nodes   []node
	free    []int32
	root    int32
	handles map[Item]int32
	hub     *watch.Hub
}

// New creates an empty tree with normalized configuration.
func New(cfg Config) *Tree {
	t := &Tree{cfg: cfg}
	t.ensure()
	return t
}

// ensure initializes the bookkeeping lazily, making the zero Tree behave
// like an empty tree built with New(Config{}).
func (t *Tree) ensure() {
	if t.handles != nil {
		return
	}
	t.cfg = t.cfg.normalized()
	t.split = sah.New(t.cfg.splitterConfig())
	t.handles = make(map[Item]int32)
	t.root = noNode
}

// Config returns a copy of the effective tree configuration.
func (t *Tree) Config() Config {
	if t == nil {
		return Config{}.normalized()
	}
	t.ensure()
	return t.cfg
}

// Notify directs mutation events to hub. A nil hub silences notifications.
func (t *Tree) Notify(hub *watch.Hub) {
	t.ensure()
	t.hub = hub
}

func (t *Tree) publish(op watch.Op, items int) {
	if t.hub == nil {
		return
	}
	t.hub.Publish(watch.Event{Op: op, Items: items, Tracked: len(t.handles)})
}

// IsEmpty reports whether the tree tracks no items.
func (t *Tree) IsEmpty() bool {
	return t == nil || t.handles == nil || t.root == noNode
}

// Len returns the number of tracked items.
func (t *Tree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.handles)
}

// Contains reports whether item is tracked by the tree.
func (t *Tree) Contains(item Item) bool {
	if t == nil || item == nil {
		return false
	}
	_, ok := t.handles[item]
	return ok
}

// Bounds returns the box enclosing every tracked item, as captured at the
// items' last build, add, or refresh. An empty tree returns the empty box.
func (t *Tree) Bounds() geom.AABB {
	if t.IsEmpty() {
		return geom.Empty()
	}
	return t.nodes[t.root].bounds
}

// Height returns the maximum node depth: 0 for an empty or single-leaf
// tree, and the deepest leaf's depth otherwise.
func (t *Tree) Height() int {
	if t.IsEmpty() {
		return 0
	}
	return t.heightBelow(t.root)
}

func (t *Tree) heightBelow(ni int32) int {
	nd := &t.nodes[ni]
	h := int(nd.depth)
	for _, ci := range nd.children() {
		if ch := t.heightBelow(ci); ch > h {
			h = ch
		}
	}
	return h
}
