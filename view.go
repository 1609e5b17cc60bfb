package boxtree

import "github.com/npillmayer/boxtree/geom"

// NodeView is a read-only snapshot of one tree node, meant for diagnostics
// and debug rendering. It carries no references into the tree's arena.
type NodeView struct {
	Bounds     geom.AABB
	Depth      int
	Leaf       bool
	Item       Item // nil for internal nodes
	ChildCount int
}

// AllNodes returns snapshots of every node in preorder, root first. The
// returned slice is the caller's; an empty tree yields nil.
func (t *Tree) AllNodes() []NodeView {
	if t == nil || t.handles == nil || t.root == noNode {
		return nil
	}
	views := make([]NodeView, 0, len(t.nodes)-len(t.free))
	t.appendViews(t.root, &views)
	return views
}

func (t *Tree) appendViews(ni int32, views *[]NodeView) {
	nd := &t.nodes[ni]
	*views = append(*views, NodeView{
		Bounds:     nd.bounds,
		Depth:      int(nd.depth),
		Leaf:       nd.isLeaf(),
		Item:       nd.item,
		ChildCount: int(nd.n),
	})
	for _, ci := range nd.children() {
		t.appendViews(ci, views)
	}
}
