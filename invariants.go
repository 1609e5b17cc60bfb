package boxtree

import (
	"fmt"

	"github.com/npillmayer/boxtree/geom"
)

// Check validates structural tree invariants.
//
// This checker is intentionally strict and should be used in tests while
// the implementation is evolving. It verifies bounds containment and
// tightness, leaf/handle consistency, fanout and depth bookkeeping, and
// arena accounting.
func (t *Tree) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvariantViolation)
	}
	if t.handles == nil || t.root == noNode {
		if len(t.handles) != 0 {
			return fmt.Errorf("%w: empty tree tracks %d items", ErrInvariantViolation, len(t.handles))
		}
		return nil
	}
	if p := t.nodes[t.root].parent; p != noNode {
		return fmt.Errorf("%w: root has parent %d", ErrInvariantViolation, p)
	}
	if d := t.nodes[t.root].depth; d != 0 {
		return fmt.Errorf("%w: root depth is %d", ErrInvariantViolation, d)
	}
	seen := make(map[Item]int32)
	reached := 0
	if err := t.checkNode(t.root, seen, &reached); err != nil {
		return err
	}
	if len(seen) != len(t.handles) {
		return fmt.Errorf("%w: %d leaves but %d tracked items",
			ErrInvariantViolation, len(seen), len(t.handles))
	}
	if reached+len(t.free) != len(t.nodes) {
		return fmt.Errorf("%w: %d reachable + %d free nodes != %d arena slots",
			ErrInvariantViolation, reached, len(t.free), len(t.nodes))
	}
	return nil
}

func (t *Tree) checkNode(ni int32, seen map[Item]int32, reached *int) error {
	if ni < 0 || int(ni) >= len(t.nodes) {
		return fmt.Errorf("%w: node reference %d outside arena", ErrInvariantViolation, ni)
	}
	*reached++
	if *reached > len(t.nodes) {
		return fmt.Errorf("%w: node graph has a cycle", ErrInvariantViolation)
	}
	nd := &t.nodes[ni]
	if nd.isLeaf() {
		if nd.n != 0 {
			return fmt.Errorf("%w: leaf %d has %d children", ErrInvariantViolation, ni, nd.n)
		}
		if prev, dup := seen[nd.item]; dup {
			return fmt.Errorf("%w: item of leaf %d already held by leaf %d",
				ErrInvariantViolation, ni, prev)
		}
		seen[nd.item] = ni
		if h, ok := t.handles[nd.item]; !ok || h != ni {
			return fmt.Errorf("%w: handle of leaf %d resolves to %d", ErrInvariantViolation, ni, h)
		}
		if !nd.bounds.Finite() || nd.bounds.IsEmpty() {
			return fmt.Errorf("%w: leaf %d has degenerate bounds", ErrInvariantViolation, ni)
		}
		return nil
	}
	if int(nd.n) < 2 || int(nd.n) > t.cfg.Branching {
		return fmt.Errorf("%w: node %d has fanout %d outside [2,%d]",
			ErrInvariantViolation, ni, nd.n, t.cfg.Branching)
	}
	recomputed := geom.Empty()
	for _, ci := range nd.children() {
		if ci < 0 || int(ci) >= len(t.nodes) {
			return fmt.Errorf("%w: child reference %d outside arena", ErrInvariantViolation, ci)
		}
		child := &t.nodes[ci]
		if child.parent != ni {
			return fmt.Errorf("%w: child %d of node %d back-references %d",
				ErrInvariantViolation, ci, ni, child.parent)
		}
		if child.depth != nd.depth+1 {
			return fmt.Errorf("%w: child %d at depth %d under node %d at depth %d",
				ErrInvariantViolation, ci, child.depth, ni, nd.depth)
		}
		if !nd.bounds.Encloses(child.bounds) {
			return fmt.Errorf("%w: bounds of node %d do not enclose child %d",
				ErrInvariantViolation, ni, ci)
		}
		recomputed = recomputed.Union(child.bounds)
		if err := t.checkNode(ci, seen, reached); err != nil {
			return err
		}
	}
	if recomputed != nd.bounds {
		return fmt.Errorf("%w: bounds of node %d are not the tight union of its children",
			ErrInvariantViolation, ni)
	}
	return nil
}
