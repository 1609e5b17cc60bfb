package boxtree

import "github.com/npillmayer/boxtree/geom"

// Overlap appends to *results every tracked item whose bounds intersect
// query. results is appended to, never cleared; callers own clearing. The
// only failure mode is a nil results pointer.
func (t *Tree) Overlap(query geom.AABB, results *[]Item) error {
	if results == nil {
		return ErrIllegalArguments
	}
	t.EachOverlapping(query, func(item Item) bool {
		*results = append(*results, item)
		return true
	})
	return nil
}

// EachOverlapping visits every tracked item whose bounds intersect query,
// in tree order, stopping early when visit returns false. visit must not
// mutate the tree.
//
// At a leaf the item's current world bounds are re-evaluated, so an item
// that moved since its last Refresh is tested with its live box when that
// box is well-formed, and with the captured box otherwise. Subtree pruning
// still runs on captured bounds: an item that moved far out of its
// captured region can be missed until it is refreshed.
func (t *Tree) EachOverlapping(query geom.AABB, visit func(item Item) bool) {
	if t == nil || t.handles == nil || t.root == noNode || visit == nil {
		return
	}
	t.overlapNode(t.root, query, visit)
}

func (t *Tree) overlapNode(ni int32, query geom.AABB, visit func(item Item) bool) bool {
	nd := &t.nodes[ni]
	if !nd.bounds.Intersects(query) {
		return true
	}
	if nd.isLeaf() {
		box := nd.item.WorldBounds()
		if !box.Finite() || box.IsEmpty() {
			box = nd.bounds // live bounds unusable, test the captured box
		}
		if box.Intersects(query) {
			return visit(nd.item)
		}
		return true
	}
	for _, ci := range nd.children() {
		if !t.overlapNode(ci, query, visit) {
			return false
		}
	}
	return true
}
