// Package geom provides the axis-aligned bounding boxes the tree is built
// from. Boxes live in world space, with r3.Vector corners.
package geom

import (
	"math"

	"github.com/golang/geo/r3"
)

// FallbackHalfExtent is the half-extent of the substitute box used whenever
// an item cannot provide finite, well-formed bounds.
const FallbackHalfExtent = 0.5

// AABB is an axis-aligned bounding box in world space.
//
// The box is closed on all faces: a point on a face is contained, and two
// boxes sharing a face intersect. A box with Min == Max is a valid
// (degenerate) point box; a box with any Min component greater than the
// corresponding Max component is empty.
//
// Tree-level code aggregates boxes with Union, with Empty as the neutral
// element:
//
//	Empty().Union(b) == b == b.Union(Empty())
type AABB struct {
	Min r3.Vector
	Max r3.Vector
}

// Empty returns the union-neutral box: every union with it yields the other
// operand unchanged.
func Empty() AABB {
	return AABB{
		Min: r3.Vector{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: r3.Vector{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// FromPoint returns the degenerate point box at p.
func FromPoint(p r3.Vector) AABB {
	return AABB{Min: p, Max: p}
}

// AroundPoint returns the cube with the given half-extent centered at p.
func AroundPoint(p r3.Vector, halfExtent float64) AABB {
	h := r3.Vector{X: halfExtent, Y: halfExtent, Z: halfExtent}
	return AABB{Min: p.Sub(h), Max: p.Add(h)}
}

// FallbackBox returns the fixed-size substitute box for an item at p.
//
// A non-finite p falls back to the origin, so the result is always finite.
func FallbackBox(p r3.Vector) AABB {
	if !finiteVector(p) {
		p = r3.Vector{}
	}
	return AroundPoint(p, FallbackHalfExtent)
}

// Sanitize returns box unchanged when it is finite and non-empty, and the
// fallback box centered at p otherwise.
//
// Builder and mutator both route captured item bounds through Sanitize, so
// degenerate input can never break tree invariants.
func Sanitize(box AABB, p r3.Vector) AABB {
	if box.Finite() && !box.IsEmpty() {
		return box
	}
	return FallbackBox(p)
}

// Union returns the smallest box enclosing both operands.
func (b AABB) Union(other AABB) AABB {
	return AABB{
		Min: r3.Vector{
			X: math.Min(b.Min.X, other.Min.X),
			Y: math.Min(b.Min.Y, other.Min.Y),
			Z: math.Min(b.Min.Z, other.Min.Z),
		},
		Max: r3.Vector{
			X: math.Max(b.Max.X, other.Max.X),
			Y: math.Max(b.Max.Y, other.Max.Y),
			Z: math.Max(b.Max.Z, other.Max.Z),
		},
	}
}

// Intersects reports whether the boxes overlap, faces included.
func (b AABB) Intersects(other AABB) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Contains reports whether p lies inside the box, faces included.
func (b AABB) Contains(p r3.Vector) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Encloses reports whether other lies fully inside b, faces included.
// The empty box is enclosed by every box.
func (b AABB) Encloses(other AABB) bool {
	if other.IsEmpty() {
		return true
	}
	return b.Contains(other.Min) && b.Contains(other.Max)
}

// Center returns the box centroid.
func (b AABB) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extent returns the per-axis box size.
func (b AABB) Extent() r3.Vector {
	return b.Max.Sub(b.Min)
}

// SurfaceArea returns the total area of the six box faces, or 0 for an
// empty box.
func (b AABB) SurfaceArea() float64 {
	if b.IsEmpty() {
		return 0
	}
	e := b.Extent()
	return 2 * (e.X*e.Y + e.X*e.Z + e.Y*e.Z)
}

// IsEmpty reports whether the box encloses no point. A point box with
// Min == Max is not empty.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Finite reports whether all box components are finite numbers.
func (b AABB) Finite() bool {
	return finiteVector(b.Min) && finiteVector(b.Max)
}

// LargestAxis returns the axis with the largest extent and that extent.
// Ties resolve to the later axis.
func (b AABB) LargestAxis() (r3.Axis, float64) {
	e := b.Extent()
	axis := e.LargestComponent()
	return axis, Component(e, axis)
}

// Component returns the vector component selected by axis.
func Component(v r3.Vector, axis r3.Axis) float64 {
	switch axis {
	case r3.XAxis:
		return v.X
	case r3.YAxis:
		return v.Y
	default:
		return v.Z
	}
}

func finiteVector(v r3.Vector) bool {
	return finite(v.X) && finite(v.Y) && finite(v.Z)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
