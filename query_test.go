package boxtree

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/npillmayer/boxtree/geom"
)

func TestOverlapRejectsNilResults(t *testing.T) {
	tree := New(Config{})
	tree.Add(bodyAt(0, 0, 0))
	if err := tree.Overlap(box(-1, -1, -1, 1, 1, 1), nil); !errors.Is(err, ErrIllegalArguments) {
		t.Fatalf("expected ErrIllegalArguments for nil results, got %v", err)
	}
}

func TestOverlapOnEmptyTreeAppendsNothing(t *testing.T) {
	tree := New(Config{})
	results := []Item{bodyAt(9, 9, 9)} // pre-seeded, must stay untouched
	if err := tree.Overlap(box(-100, -100, -100, 100, 100, 100), &results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("empty tree changed the results slice: %v", results)
	}
}

func TestOverlapDisjointCubes(t *testing.T) {
	i1 := &body{box: box(0, 0, 0, 1, 1, 1)}
	i2 := &body{box: box(10, 10, 10, 11, 11, 11)}
	i3 := &body{box: box(20, 20, 20, 21, 21, 21)}
	tree := New(Config{})
	if err := tree.BuildFromItems([]Item{i1, i2, i3}); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if tree.Len() != 3 {
		t.Fatalf("expected 3 tracked items, got %d", tree.Len())
	}
	var results []Item
	if err := tree.Overlap(box(9.5, 9.5, 9.5, 11.5, 11.5, 11.5), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 1 || results[0] != Item(i2) {
		t.Fatalf("expected exactly the middle cube, got %v", results)
	}
	results = results[:0]
	if err := tree.Overlap(box(-5, -5, -5, 25, 25, 25), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected all cubes for an enclosing query, got %d", len(results))
	}
	results = results[:0]
	if err := tree.Overlap(box(50, 50, 50, 60, 60, 60), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no hits far away, got %v", results)
	}
}

func TestOverlapTreatsFacesAsClosed(t *testing.T) {
	b := &body{box: box(0, 0, 0, 1, 1, 1)}
	tree := New(Config{})
	tree.Add(b)
	var results []Item
	if err := tree.Overlap(box(1, 0, 0, 2, 1, 1), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected a shared face to count as overlap, got %v", results)
	}
	results = results[:0]
	if err := tree.Overlap(box(1.0001, 0, 0, 2, 1, 1), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no overlap past the face, got %v", results)
	}
}

func TestEachOverlappingStopsEarly(t *testing.T) {
	tree := New(Config{})
	for i := 0; i < 10; i++ {
		tree.Add(bodyAt(float64(i*3), 0, 0))
	}
	visited := 0
	tree.EachOverlapping(box(-100, -100, -100, 100, 100, 100), func(Item) bool {
		visited++
		return visited < 3
	})
	if visited != 3 {
		t.Fatalf("expected the walk to stop after 3 visits, got %d", visited)
	}
	// A nil visitor must be a no-op.
	tree.EachOverlapping(box(-1, -1, -1, 1, 1, 1), nil)
}

func TestQueryReevaluatesLiveBounds(t *testing.T) {
	b := &body{box: box(0, 0, 0, 1, 1, 1)}
	far := bodyAt(100, 0, 0)
	tree := New(Config{})
	tree.Add(b)
	tree.Add(far)

	// Shrink without Refresh: the leaf gate still holds the old box, but the
	// live bounds decide membership.
	b.box = box(0, 0, 0, 0.25, 0.25, 0.25)
	var results []Item
	if err := tree.Overlap(box(0.5, 0.5, 0.5, 0.9, 0.9, 0.9), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("shrunken item reported from vacated space: %v", results)
	}
	results = results[:0]
	if err := tree.Overlap(box(0, 0, 0, 0.2, 0.2, 0.2), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 1 || results[0] != Item(b) {
		t.Fatalf("shrunken item not found inside its live bounds: %v", results)
	}

	// Growth past the captured box is invisible until Refresh: subtree
	// pruning still runs on the captured bounds.
	b.box = box(0, 0, 0, 3, 3, 3)
	results = results[:0]
	if err := tree.Overlap(box(2, 2, 2, 2.5, 2.5, 2.5), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("outgrown item visible before Refresh: %v", results)
	}
	if !tree.Refresh(b) {
		t.Fatalf("Refresh failed")
	}
	results = results[:0]
	if err := tree.Overlap(box(2, 2, 2, 2.5, 2.5, 2.5), &results); err != nil {
		t.Fatalf("overlap failed: %v", err)
	}
	if len(results) != 1 || results[0] != Item(b) {
		t.Fatalf("outgrown item not found after Refresh: %v", results)
	}
	assertTreeValid(t, tree)
}

func TestOverlapMatchesLinearScan(t *testing.T) {
	r := rand.New(rand.NewSource(37))
	tree := New(Config{})
	items := make([]*body, 0, 150)
	for i := 0; i < 150; i++ {
		c := r3.Vector{X: r.Float64() * 100, Y: r.Float64() * 100, Z: r.Float64() * 100}
		it := &body{box: geom.AroundPoint(c, 0.1+r.Float64()*2)}
		items = append(items, it)
	}
	asItems := make([]Item, len(items))
	for i, it := range items {
		asItems[i] = it
	}
	if err := tree.BuildFromItems(asItems); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	assertTreeValid(t, tree)

	for q := 0; q < 80; q++ {
		c := r3.Vector{X: r.Float64() * 100, Y: r.Float64() * 100, Z: r.Float64() * 100}
		query := geom.AroundPoint(c, 0.5+r.Float64()*12)

		want := make(map[Item]bool)
		tree.ForEachItem(func(item Item) bool {
			if item.WorldBounds().Intersects(query) {
				want[item] = true
			}
			return true
		})

		var results []Item
		if err := tree.Overlap(query, &results); err != nil {
			t.Fatalf("overlap failed: %v", err)
		}
		if len(results) != len(want) {
			t.Fatalf("query %d: got %d hits, want %d", q, len(results), len(want))
		}
		for _, item := range results {
			if !want[item] {
				t.Fatalf("query %d: unexpected hit %v", q, item)
			}
		}
	}
}
