package sah

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/npillmayer/boxtree/geom"
)

const (
	// MinBranching and MaxBranching bound the fanout a split may produce.
	MinBranching = 2
	MaxBranching = 8
	// MinBinCount and MaxBinCount bound the centroid quantization resolution.
	MinBinCount = 8
	MaxBinCount = 64

	// DefaultBranching is the fanout used when Config.Branching is unset.
	DefaultBranching = MaxBranching
	// DefaultBinCount is the resolution used when Config.BinCount is unset.
	DefaultBinCount = 32
	// DefaultTraversalCost is the per-level cost used when Config.TraversalCost is unset.
	DefaultTraversalCost = 1.0
	// DefaultIntersectionCost is the per-primitive cost used when Config.IntersectionCost is unset.
	DefaultIntersectionCost = 1.0
)

const (
	// Centroid spreads below this extent count as flat and take the
	// equal-count path.
	epsExtent = 1e-9
	// Parent boxes below this surface area cannot be split by a
	// surface-area ratio.
	epsSurface = 1e-12
)

// Config configures the splitter cost model.
//
// A zero Config is usable; Normalized substitutes the defaults. Out-of-range
// values are clamped, never rejected.
type Config struct {
	// Branching is the maximum number of groups a split may produce.
	Branching int
	// BinCount is the number of centroid bins per split evaluation.
	BinCount int
	// TraversalCost is the cost charged for descending one tree level.
	TraversalCost float64
	// IntersectionCost is the cost charged per primitive in a leaf.
	IntersectionCost float64
}

// Normalized returns a copy of cfg with zero fields defaulted and
// out-of-range fields clamped.
func (cfg Config) Normalized() Config {
	if cfg.Branching == 0 {
		cfg.Branching = DefaultBranching
	}
	cfg.Branching = clamp(cfg.Branching, MinBranching, MaxBranching)
	if cfg.BinCount == 0 {
		cfg.BinCount = DefaultBinCount
	}
	cfg.BinCount = clamp(cfg.BinCount, MinBinCount, MaxBinCount)
	if cfg.TraversalCost <= 0 {
		cfg.TraversalCost = DefaultTraversalCost
	}
	if cfg.IntersectionCost <= 0 {
		cfg.IntersectionCost = DefaultIntersectionCost
	}
	return cfg
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Prim is one primitive under partitioning: captured bounds plus the
// centroid used for binning. Ref is an opaque caller tag carried through
// partitioning untouched.
type Prim struct {
	Bounds   geom.AABB
	Centroid r3.Vector
	Ref      int32
}

type bin struct {
	bounds geom.AABB
	count  int
}

// Splitter partitions primitive sets along SAH-optimal bin cuts.
//
// A Splitter reuses scratch tables sized by its configuration across calls
// and must not be shared between goroutines.
type Splitter struct {
	cfg  Config
	bins []bin
	// Flattened (BinCount+1)^2 tables over half-open bin ranges [j,i):
	// segArea[j*stride+i] is the surface area of the range's bounds union,
	// segCount[j*stride+i] the number of primitives binned into the range.
	segArea  []float64
	segCount []int
	// Flattened (Branching+1)x(BinCount+1) DP tables: dp[k*stride+i] is the
	// cheapest cost of cutting the first i bins into k contiguous segments,
	// cut[k*stride+i] the last segment boundary achieving it.
	dp  []float64
	cut []int
}

// New creates a splitter for the normalized configuration.
func New(cfg Config) *Splitter {
	cfg = cfg.Normalized()
	stride := cfg.BinCount + 1
	return &Splitter{
		cfg:      cfg,
		bins:     make([]bin, cfg.BinCount),
		segArea:  make([]float64, stride*stride),
		segCount: make([]int, stride*stride),
		dp:       make([]float64, (cfg.Branching+1)*stride),
		cut:      make([]int, (cfg.Branching+1)*stride),
	}
}

// Config returns the effective splitter configuration.
func (s *Splitter) Config() Config {
	return s.cfg
}

// Partition cuts prims into 2 to Branching groups and reports true, or
// reports false when the cost model favors keeping the set together as one
// leaf. bounds must enclose every primitive; it is the box the surface-area
// ratios are taken against.
//
// Degenerate centroid spreads do not fail: a flat spread along the widest
// axis and cut recoveries that collapse to a single group both fall back to
// an equal-count cut in input order. Groups returned are never empty and
// together contain every primitive exactly once.
func (s *Splitter) Partition(prims []Prim, bounds geom.AABB) ([][]Prim, bool) {
	if len(prims) < 2 {
		return nil, false
	}
	parentArea := bounds.SurfaceArea()
	if parentArea <= epsSurface {
		return nil, false
	}
	cbounds := geom.Empty()
	for _, p := range prims {
		cbounds = cbounds.Union(geom.FromPoint(p.Centroid))
	}
	axis, extent := cbounds.LargestAxis()
	if extent <= epsExtent {
		tracer().Debugf("flat centroid spread over %d prims, cutting equal-count", len(prims))
		return equalCut(prims, s.fallbackFanout(len(prims))), true
	}

	// Quantize centroids into BinCount uniform bins along the widest axis,
	// accumulating per-bin count and bounds union.
	nbins := s.cfg.BinCount
	lo := geom.Component(cbounds.Min, axis)
	scale := float64(nbins) / extent
	for b := range s.bins {
		s.bins[b] = bin{bounds: geom.Empty()}
	}
	occupied := 0
	for _, p := range prims {
		b := binFor(geom.Component(p.Centroid, axis), lo, scale, nbins)
		if s.bins[b].count == 0 {
			occupied++
		}
		s.bins[b].count++
		s.bins[b].bounds = s.bins[b].bounds.Union(p.Bounds)
	}
	kmax := min(s.cfg.Branching, occupied)
	if kmax < 2 {
		return nil, false
	}

	bestK, bestCost := s.solve(kmax, parentArea)
	assert(bestK >= 2, "solve returned no multi-way cut")
	leafCost := s.cfg.IntersectionCost * float64(len(prims))
	if leafCost <= bestCost {
		return nil, false
	}

	groups := s.recoverGroups(prims, bestK, axis, lo, scale)
	if len(groups) < 2 {
		tracer().Debugf("cut of %d prims collapsed to one group, cutting equal-count", len(prims))
		return equalCut(prims, s.fallbackFanout(len(prims))), true
	}
	return groups, true
}

// solve fills the DP tables and returns the cheapest segment count in
// [2,kmax] together with its total cost, traversal included.
//
// dp[k][i] is the cheapest cost of cutting bins [0,i) into k contiguous
// segments of at least one bin each:
//
//	dp[0][0] = 0
//	dp[k][i] = min over j in [k-1,i) of dp[k-1][j] + segmentCost(j, i)
//
// where segmentCost(j,i) scales the range's primitive count by its
// surface-area ratio against the parent. Strict comparisons everywhere, so
// ties resolve to the earliest j and the smallest k.
func (s *Splitter) solve(kmax int, parentArea float64) (int, float64) {
	nbins := s.cfg.BinCount
	stride := nbins + 1
	for j := 0; j < nbins; j++ {
		u := geom.Empty()
		n := 0
		for i := j + 1; i <= nbins; i++ {
			u = u.Union(s.bins[i-1].bounds)
			n += s.bins[i-1].count
			s.segArea[j*stride+i] = u.SurfaceArea()
			s.segCount[j*stride+i] = n
		}
	}
	invArea := s.cfg.IntersectionCost / parentArea
	for i := 0; i < (kmax+1)*stride; i++ {
		s.dp[i] = math.Inf(1)
		s.cut[i] = -1
	}
	s.dp[0] = 0
	for k := 1; k <= kmax; k++ {
		for i := k; i <= nbins; i++ {
			for j := k - 1; j < i; j++ {
				cost := s.dp[(k-1)*stride+j] +
					s.segArea[j*stride+i]*invArea*float64(s.segCount[j*stride+i])
				if cost < s.dp[k*stride+i] {
					s.dp[k*stride+i] = cost
					s.cut[k*stride+i] = j
				}
			}
		}
	}
	bestK, bestCost := 0, math.Inf(1)
	for k := 2; k <= kmax; k++ {
		if cost := s.cfg.TraversalCost + s.dp[k*stride+nbins]; cost < bestCost {
			bestK, bestCost = k, cost
		}
	}
	return bestK, bestCost
}

// recoverGroups backtracks the cut table into bestK bin-range segments and
// buckets every primitive into the segment holding its bin. Segments left
// without a primitive are dropped.
func (s *Splitter) recoverGroups(prims []Prim, bestK int, axis r3.Axis, lo, scale float64) [][]Prim {
	nbins := s.cfg.BinCount
	stride := nbins + 1
	boundaries := make([]int, bestK+1)
	boundaries[bestK] = nbins
	for k := bestK; k > 0; k-- {
		boundaries[k-1] = s.cut[k*stride+boundaries[k]]
	}
	assert(boundaries[0] == 0, "cut backtracking did not reach bin 0")

	buckets := make([][]Prim, bestK)
	for _, p := range prims {
		b := binFor(geom.Component(p.Centroid, axis), lo, scale, nbins)
		seg := bestK - 1
		for g := 0; g < bestK; g++ {
			if b < boundaries[g+1] {
				seg = g
				break
			}
		}
		buckets[seg] = append(buckets[seg], p)
	}
	groups := buckets[:0]
	for _, g := range buckets {
		if len(g) > 0 {
			groups = append(groups, g)
		}
	}
	return groups
}

func (s *Splitter) fallbackFanout(n int) int {
	return min(s.cfg.Branching, max(2, n))
}

// equalCut splits prims into k contiguous groups in input order, sizes
// differing by at most one. Requires 2 <= k <= len(prims).
func equalCut(prims []Prim, k int) [][]Prim {
	assert(k >= 2 && k <= len(prims), "equalCut fanout out of range")
	groups := make([][]Prim, k)
	n := len(prims)
	for g := 0; g < k; g++ {
		groups[g] = prims[g*n/k : (g+1)*n/k]
	}
	return groups
}

func binFor(c, lo, scale float64, nbins int) int {
	b := int((c - lo) * scale)
	if b < 0 {
		return 0
	}
	if b >= nbins {
		return nbins - 1
	}
	return b
}
