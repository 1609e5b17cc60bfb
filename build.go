package boxtree

import (
	"github.com/npillmayer/boxtree/geom"
	"github.com/npillmayer/boxtree/sah"
	"github.com/npillmayer/boxtree/watch"
)

// BuildFromItems discards the current tree state and bulk-builds a new tree
// over items. Nil entries are skipped and duplicate items keep their first
// occurrence. The only failure mode is a nil items slice; degenerate item
// geometry never fails a build, it is captured through geom.Sanitize.
//
// Building from an empty (non-nil) slice leaves an empty tree.
func (t *Tree) BuildFromItems(items []Item) error {
	if items == nil {
		return ErrIllegalArguments
	}
	t.ensure()
	t.reset()
	captured := make([]Item, 0, len(items))
	prims := make([]sah.Prim, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		if _, dup := t.handles[it]; dup {
			continue
		}
		t.handles[it] = noNode // claimed; the real leaf index lands during recursion
		box := geom.Sanitize(it.WorldBounds(), it.Position())
		prims = append(prims, sah.Prim{Bounds: box, Centroid: box.Center(), Ref: int32(len(captured))})
		captured = append(captured, it)
	}
	if len(prims) > 0 {
		t.root = t.buildNode(prims, captured, 0)
	}
	T().Debugf("boxtree: built tree over %d items, %d nodes", len(t.handles), len(t.nodes))
	t.publish(watch.OpBuild, len(t.handles))
	return nil
}

func (t *Tree) reset() {
	t.nodes = t.nodes[:0]
	t.free = t.free[:0]
	clear(t.handles)
	t.root = noNode
}

// buildNode builds the subtree over prims and returns its arena index.
//
// The recursion splits with the SAH splitter until the depth or leaf-size
// bounds strike, or the cost model favors a leaf. A leaf always merges its
// whole primitive group into one node owned by the group's first item.
func (t *Tree) buildNode(prims []sah.Prim, captured []Item, depth int32) int32 {
	bounds := geom.Empty()
	for _, p := range prims {
		bounds = bounds.Union(p.Bounds)
	}
	if int(depth) >= t.cfg.MaxDepth || len(prims) <= t.cfg.MaxLeafSize {
		return t.mergeLeaf(prims, captured, bounds, depth)
	}
	groups, ok := t.split.Partition(prims, bounds)
	if !ok {
		return t.mergeLeaf(prims, captured, bounds, depth)
	}
	ni := t.alloc()
	kids := make([]int32, 0, len(groups))
	for _, g := range groups {
		kids = append(kids, t.buildNode(g, captured, depth+1))
	}
	nd := &t.nodes[ni] // re-taken, the recursion grew the arena
	nd.bounds = bounds
	nd.depth = depth
	for _, ci := range kids {
		nd.addChild(ci)
		t.nodes[ci].parent = ni
	}
	return ni
}

// mergeLeaf emits one leaf for a whole primitive group. The group's first
// item owns the leaf; any further items fall out of tracking.
func (t *Tree) mergeLeaf(prims []sah.Prim, captured []Item, bounds geom.AABB, depth int32) int32 {
	assert(len(prims) > 0, "mergeLeaf called with no primitives")
	ni := t.newLeaf(captured[prims[0].Ref], bounds, depth)
	if len(prims) > 1 {
		T().Debugf("boxtree: %d primitives merged into one leaf, keeping the first item", len(prims))
		for _, p := range prims[1:] {
			delete(t.handles, captured[p.Ref])
		}
	}
	return ni
}
