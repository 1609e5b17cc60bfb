package boxtree

import "iter"

// ForEachItem walks tracked items in tree order.
//
// Iteration stops early if callback returns false.
func (t *Tree) ForEachItem(fn func(item Item) bool) {
	if t == nil || t.handles == nil || t.root == noNode || fn == nil {
		return
	}
	t.forEachItemNode(t.root, fn)
}

func (t *Tree) forEachItemNode(ni int32, fn func(item Item) bool) bool {
	nd := &t.nodes[ni]
	if nd.isLeaf() {
		return fn(nd.item)
	}
	for _, ci := range nd.children() {
		if !t.forEachItemNode(ci, fn) {
			return false
		}
	}
	return true
}

// RangeItem returns an iterator over all tracked items in tree order.
func (t *Tree) RangeItem() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		t.ForEachItem(func(item Item) bool {
			return yield(item)
		})
	}
}
