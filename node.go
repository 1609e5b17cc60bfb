package boxtree

import (
	"github.com/golang/geo/r3"
	"github.com/npillmayer/boxtree/geom"
	"github.com/npillmayer/boxtree/sah"
)

// Item is the capability an object must expose to be tracked by a tree.
//
// Items are compared by identity when used as handles, so the concrete
// type must be comparable; pointer types are the natural choice. The tree
// never mutates items and reads their bounds only at capture points: bulk
// build, Add, Refresh, and the re-evaluation step of overlap queries.
type Item interface {
	// WorldBounds returns the item's current bounds in world space.
	WorldBounds() geom.AABB
	// Position returns the item's world position. It anchors the
	// fixed-size fallback box when WorldBounds is degenerate.
	Position() r3.Vector
}

// noNode marks the absence of a node reference.
const noNode = int32(-1)

// node is one slot of the tree's node arena. Nodes reference each other by
// arena index, never by pointer, so the arena can grow without invalidating
// the tree structure.
//
// A node with a non-nil item is a leaf and has no children; an internal
// node has a nil item and at least two children.
type node struct {
	bounds geom.AABB
	parent int32
	depth  int32
	item   Item
	// n is the logical child count; valid children are childStore[:n].
	n uint8
	// childStore is the fixed backing storage for child references.
	childStore [sah.MaxBranching]int32
}

func (nd *node) isLeaf() bool {
	return nd.item != nil
}

// children is the dynamic-length view over childStore. The view aliases
// arena memory and must not be held across a call that can grow the arena.
func (nd *node) children() []int32 {
	return nd.childStore[:nd.n]
}

func (nd *node) addChild(child int32) {
	assert(int(nd.n) < len(nd.childStore), "addChild exceeds node fanout")
	nd.childStore[nd.n] = child
	nd.n++
}

// removeChild drops child from the node, preserving the order of the
// remaining children.
func (nd *node) removeChild(child int32) {
	for i := 0; i < int(nd.n); i++ {
		if nd.childStore[i] == child {
			copy(nd.childStore[i : nd.n-1], nd.childStore[i+1 : nd.n])
			nd.n--
			return
		}
	}
	assert(false, "removeChild called for a non-child")
}

// replaceChild swaps old for new in place, keeping the child order.
func (nd *node) replaceChild(old, repl int32) {
	for i := 0; i < int(nd.n); i++ {
		if nd.childStore[i] == old {
			nd.childStore[i] = repl
			return
		}
	}
	assert(false, "replaceChild called for a non-child")
}

// alloc hands out a fresh arena slot, reusing freed slots first. The slot
// comes initialized as a detached empty node.
func (t *Tree) alloc() int32 {
	if n := len(t.free); n > 0 {
		ni := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[ni] = node{bounds: geom.Empty(), parent: noNode}
		return ni
	}
	t.nodes = append(t.nodes, node{bounds: geom.Empty(), parent: noNode})
	return int32(len(t.nodes) - 1)
}

// release returns a slot to the free list. The slot is scrubbed so stale
// item or child references cannot leak.
func (t *Tree) release(ni int32) {
	t.nodes[ni] = node{bounds: geom.Empty(), parent: noNode}
	t.free = append(t.free, ni)
}

// newLeaf allocates a leaf for item and registers it in the handle map.
func (t *Tree) newLeaf(item Item, box geom.AABB, depth int32) int32 {
	ni := t.alloc()
	nd := &t.nodes[ni]
	nd.bounds = box
	nd.depth = depth
	nd.item = item
	t.handles[item] = ni
	return ni
}
