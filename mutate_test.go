package boxtree

import (
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/npillmayer/boxtree/geom"
)

func TestAddRejectsNilAndDuplicates(t *testing.T) {
	tree := New(Config{})
	if tree.Add(nil) {
		t.Fatalf("Add(nil) succeeded")
	}
	b := bodyAt(1, 1, 1)
	if !tree.Add(b) {
		t.Fatalf("Add failed")
	}
	if tree.Add(b) {
		t.Fatalf("duplicate Add succeeded")
	}
	if tree.Len() != 1 {
		t.Fatalf("unexpected length: %d", tree.Len())
	}
	assertTreeValid(t, tree)
}

func TestAddSecondItemWrapsRootLeaf(t *testing.T) {
	tree := New(Config{})
	tree.Add(bodyAt(0, 0, 0))
	tree.Add(bodyAt(10, 0, 0))
	views := tree.AllNodes()
	if len(views) != 3 {
		t.Fatalf("expected root + 2 leaves, got %d views", len(views))
	}
	if views[0].Leaf || views[0].ChildCount != 2 || views[0].Depth != 0 {
		t.Fatalf("unexpected root view: %+v", views[0])
	}
	if tree.Height() != 1 {
		t.Fatalf("expected height 1, got %d", tree.Height())
	}
	assertTreeValid(t, tree)
}

func TestAddUsesSiblingSlotWhenParentHasRoom(t *testing.T) {
	tree := New(Config{})
	tree.Add(bodyAt(0, 0, 0))
	tree.Add(bodyAt(10, 0, 0))
	tree.Add(bodyAt(20, 0, 0))
	views := tree.AllNodes()
	if views[0].ChildCount != 3 {
		t.Fatalf("expected the third leaf to join the root, got fanout %d", views[0].ChildCount)
	}
	if tree.Height() != 1 {
		t.Fatalf("expected flat tree, got height %d", tree.Height())
	}
	assertTreeValid(t, tree)
}

func TestAddWrapsWhenParentIsFull(t *testing.T) {
	tree := New(Config{Branching: 2})
	a, b, c := bodyAt(0, 0, 0), bodyAt(10, 0, 0), bodyAt(11, 0, 0)
	tree.Add(a)
	tree.Add(b)
	tree.Add(c)
	if tree.Height() != 2 {
		t.Fatalf("expected wrap to deepen the tree to height 2, got %d", tree.Height())
	}
	views := tree.AllNodes()
	if views[0].ChildCount != 2 {
		t.Fatalf("expected binary root, got fanout %d", views[0].ChildCount)
	}
	leaves := 0
	for _, v := range views {
		if v.Leaf {
			leaves++
		}
	}
	if leaves != 3 {
		t.Fatalf("expected 3 leaves, got %d", leaves)
	}
	assertTreeValid(t, tree)
}

func TestAddDescendsTowardLeastGrowth(t *testing.T) {
	tree := New(Config{})
	items := make([]Item, 0, 16)
	for i := 0; i < 8; i++ {
		items = append(items, bodyAt(float64(i), 0, 0))
		items = append(items, bodyAt(float64(100+i), 0, 0))
	}
	if err := tree.BuildFromItems(items); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	leftProbe := box(-1, -1, -1, 9, 1, 1)
	var leftBefore []geom.AABB
	for _, v := range tree.AllNodes() {
		if v.Depth == 1 && v.Bounds.Intersects(leftProbe) {
			leftBefore = append(leftBefore, v.Bounds)
		}
	}
	if len(leftBefore) == 0 {
		t.Fatalf("no top-level subtree covers the left cluster")
	}

	// An item just beyond the right cluster must not disturb the left one.
	tree.Add(bodyAt(110, 0, 0))
	var leftAfter []geom.AABB
	covered := false
	for _, v := range tree.AllNodes() {
		if v.Depth == 1 && v.Bounds.Intersects(leftProbe) {
			leftAfter = append(leftAfter, v.Bounds)
		}
		if v.Depth >= 1 && v.Bounds.Contains(r3.Vector{X: 110}) {
			covered = true
		}
	}
	if len(leftAfter) != len(leftBefore) {
		t.Fatalf("left subtrees changed count: %d -> %d", len(leftBefore), len(leftAfter))
	}
	for i := range leftBefore {
		if leftAfter[i] != leftBefore[i] {
			t.Fatalf("left subtree bounds changed: %v -> %v", leftBefore[i], leftAfter[i])
		}
	}
	if !covered {
		t.Fatalf("no subtree grew to cover the added item")
	}
	assertTreeValid(t, tree)
}

func TestRemoveCollapsesSingleChildParents(t *testing.T) {
	tree := New(Config{Branching: 2})
	a, b, c := bodyAt(0, 0, 0), bodyAt(10, 0, 0), bodyAt(11, 0, 0)
	tree.Add(a)
	tree.Add(b)
	tree.Add(c)
	if tree.Height() != 2 {
		t.Fatalf("setup: expected height 2, got %d", tree.Height())
	}

	if !tree.Remove(a) {
		t.Fatalf("Remove(a) failed")
	}
	assertTreeValid(t, tree)
	if tree.Height() != 1 {
		t.Fatalf("expected collapse to height 1, got %d", tree.Height())
	}

	if !tree.Remove(b) {
		t.Fatalf("Remove(b) failed")
	}
	assertTreeValid(t, tree)
	if tree.Height() != 0 || tree.Len() != 1 {
		t.Fatalf("expected a single root leaf, height=%d len=%d", tree.Height(), tree.Len())
	}

	if !tree.Remove(c) {
		t.Fatalf("Remove(c) failed")
	}
	if !tree.IsEmpty() {
		t.Fatalf("expected empty tree")
	}
	assertTreeValid(t, tree)
}

func TestRemoveUntrackedReturnsFalse(t *testing.T) {
	tree := New(Config{})
	if tree.Remove(nil) {
		t.Fatalf("Remove(nil) succeeded")
	}
	if tree.Remove(bodyAt(0, 0, 0)) {
		t.Fatalf("Remove succeeded for an untracked item")
	}
	tree.Add(bodyAt(1, 1, 1))
	if tree.Remove(bodyAt(1, 1, 1)) {
		t.Fatalf("Remove matched a distinct item with equal geometry")
	}
}

func TestRemoveManyKeepsInvariants(t *testing.T) {
	r := rand.New(rand.NewSource(23))
	tree := New(Config{})
	items := make([]*body, 0, 40)
	for i := 0; i < 40; i++ {
		c := r3.Vector{X: r.Float64() * 200, Y: r.Float64() * 200, Z: r.Float64() * 200}
		it := &body{box: geom.AroundPoint(c, 0.5+r.Float64())}
		items = append(items, it)
		if !tree.Add(it) {
			t.Fatalf("Add %d failed", i)
		}
		assertTreeValid(t, tree)
	}
	r.Shuffle(len(items), func(i, j int) { items[i], items[j] = items[j], items[i] })
	for i, it := range items {
		if !tree.Remove(it) {
			t.Fatalf("Remove %d failed", i)
		}
		if tree.Len() != len(items)-i-1 {
			t.Fatalf("unexpected length after remove %d: %d", i, tree.Len())
		}
		assertTreeValid(t, tree)
	}
	if !tree.IsEmpty() {
		t.Fatalf("expected empty tree after removing everything")
	}
}

func TestRefreshTracksMovedItem(t *testing.T) {
	tree := New(Config{})
	items := make([]*body, 0, 5)
	for i := 0; i < 5; i++ {
		it := bodyAt(float64(i), 0, 0)
		items = append(items, it)
		tree.Add(it)
	}
	mover := items[2]
	mover.box = geom.AroundPoint(r3.Vector{X: 50}, 0.5)

	// Stale bounds: the subtree gate still reflects the old location.
	var results []Item
	if err := tree.Overlap(geom.AroundPoint(r3.Vector{X: 50}, 1), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("moved item was found before Refresh: %v", results)
	}

	if !tree.Refresh(mover) {
		t.Fatalf("Refresh failed for tracked item")
	}
	assertTreeValid(t, tree)
	if tree.Len() != 5 {
		t.Fatalf("Refresh changed the tracked count: %d", tree.Len())
	}
	results = results[:0]
	if err := tree.Overlap(geom.AroundPoint(r3.Vector{X: 50}, 1), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 1 || results[0] != Item(mover) {
		t.Fatalf("expected the refreshed item at its new location, got %v", results)
	}
	results = results[:0]
	if err := tree.Overlap(geom.AroundPoint(r3.Vector{X: 2}, 0.4), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	for _, it := range results {
		if it == Item(mover) {
			t.Fatalf("refreshed item still reported at its old location")
		}
	}
}

func TestRefreshUntrackedReturnsFalse(t *testing.T) {
	tree := New(Config{})
	if tree.Refresh(nil) {
		t.Fatalf("Refresh(nil) succeeded")
	}
	if tree.Refresh(bodyAt(3, 3, 3)) {
		t.Fatalf("Refresh succeeded for an untracked item")
	}
}
