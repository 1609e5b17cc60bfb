package boxtree

import (
	"github.com/npillmayer/boxtree/geom"
	"github.com/npillmayer/boxtree/watch"
)

// Add starts tracking item, capturing its bounds as of this call. It
// returns false, without touching the tree, when item is nil or already
// tracked.
//
// The new leaf lands next to the existing leaf whose bounds grow least by
// taking the item in: as a direct sibling while the parent has room for
// another child, otherwise wrapped with that leaf in a fresh binary node.
func (t *Tree) Add(item Item) bool {
	if item == nil {
		return false
	}
	t.ensure()
	if !t.add(item) {
		return false
	}
	t.publish(watch.OpAdd, 1)
	return true
}

func (t *Tree) add(item Item) bool {
	if _, ok := t.handles[item]; ok {
		return false
	}
	box := geom.Sanitize(item.WorldBounds(), item.Position())
	if t.root == noNode {
		t.root = t.newLeaf(item, box, 0)
		return true
	}
	target := t.bestLeaf(t.root, box)
	leaf := t.newLeaf(item, box, 0) // depth is assigned on attachment
	t.attach(target, leaf, box)
	return true
}

// bestLeaf descends to the leaf whose bounds grow least when swallowing
// box. Growth is the surface-area increase of the enlarged child bounds;
// ties stay with the earliest child.
func (t *Tree) bestLeaf(ni int32, box geom.AABB) int32 {
	for !t.nodes[ni].isLeaf() {
		children := t.nodes[ni].children()
		assert(len(children) > 0, "internal node without children")
		best := children[0]
		bestGrowth := growth(t.nodes[best].bounds, box)
		for _, ci := range children[1:] {
			if g := growth(t.nodes[ci].bounds, box); g < bestGrowth {
				best, bestGrowth = ci, g
			}
		}
		ni = best
	}
	return ni
}

func growth(b, extra geom.AABB) float64 {
	return b.Union(extra).SurfaceArea() - b.SurfaceArea()
}

// attach hangs leaf next to target and re-encapsulates ancestor bounds up
// to the root.
func (t *Tree) attach(target, leaf int32, box geom.AABB) {
	parent := t.nodes[target].parent
	if parent != noNode && int(t.nodes[parent].n) < t.cfg.Branching &&
		int(t.nodes[target].depth) <= t.cfg.MaxDepth {
		t.nodes[leaf].depth = t.nodes[target].depth
		t.nodes[leaf].parent = parent
		t.nodes[parent].addChild(leaf)
		t.refitUp(parent)
		return
	}
	// No room next to target: wrap target and the new leaf in a binary
	// node taking target's place.
	w := t.alloc()
	wd := &t.nodes[w]
	wd.depth = t.nodes[target].depth
	wd.parent = parent
	wd.bounds = t.nodes[target].bounds.Union(box)
	wd.addChild(target)
	wd.addChild(leaf)
	t.nodes[target].parent = w
	t.nodes[target].depth++
	t.nodes[leaf].parent = w
	t.nodes[leaf].depth = wd.depth + 1
	if parent == noNode {
		t.root = w
	} else {
		t.nodes[parent].replaceChild(target, w)
		t.refitUp(parent)
	}
}

// refitUp recomputes internal bounds from ni upward to the root.
func (t *Tree) refitUp(ni int32) {
	for ni != noNode {
		nd := &t.nodes[ni]
		if !nd.isLeaf() {
			u := geom.Empty()
			for _, ci := range nd.children() {
				u = u.Union(t.nodes[ci].bounds)
			}
			nd.bounds = u
		}
		ni = nd.parent
	}
}

// Remove stops tracking item and detaches its leaf. It returns false when
// item is nil or not tracked.
//
// A parent left with a single child is collapsed: the child takes the
// parent's place and depth, so internal nodes keep at least two children.
func (t *Tree) Remove(item Item) bool {
	if item == nil || t == nil {
		return false
	}
	if !t.remove(item) {
		return false
	}
	t.publish(watch.OpRemove, 1)
	return true
}

func (t *Tree) remove(item Item) bool {
	ni, ok := t.handles[item]
	if !ok {
		return false
	}
	delete(t.handles, item)
	assert(t.nodes[ni].isLeaf(), "handle map must resolve to a leaf")
	parent := t.nodes[ni].parent
	t.release(ni)
	if parent == noNode {
		t.root = noNode
		return true
	}
	pd := &t.nodes[parent]
	pd.removeChild(ni)
	assert(pd.n > 0, "internal node emptied by a single removal")
	if pd.n >= 2 {
		t.refitUp(parent)
		return true
	}
	// Collapse the parent: its sole remaining child moves up and inherits
	// the parent's depth.
	child := pd.childStore[0]
	grand := pd.parent
	depth := pd.depth
	t.release(parent)
	t.nodes[child].parent = grand
	t.shiftDepth(child, depth)
	if grand == noNode {
		t.root = child
	} else {
		t.nodes[grand].replaceChild(parent, child)
		t.refitUp(grand)
	}
	return true
}

// shiftDepth rebases ni's subtree to start at depth.
func (t *Tree) shiftDepth(ni, depth int32) {
	nd := &t.nodes[ni]
	nd.depth = depth
	for _, ci := range nd.children() {
		t.shiftDepth(ci, depth+1)
	}
}

// Refresh re-captures item's current bounds by removing and re-adding its
// leaf. It returns false when item is nil or not tracked. Refresh is the
// only operation that updates an item's captured bounds; queries against
// items that moved without a Refresh see the stale box.
func (t *Tree) Refresh(item Item) bool {
	if item == nil || t == nil {
		return false
	}
	if !t.remove(item) {
		return false
	}
	ok := t.add(item)
	assert(ok, "re-adding a just-removed item failed")
	t.publish(watch.OpRefresh, 1)
	return true
}
