package boxtree

import "github.com/npillmayer/boxtree/sah"

const (
	// DefaultMaxDepth bounds the build recursion when Config.MaxDepth is unset.
	DefaultMaxDepth = 32
	// DefaultMaxLeafSize is the largest primitive count the builder turns
	// into a leaf without trying a split, when Config.MaxLeafSize is unset.
	DefaultMaxLeafSize = 1
)

// Config configures a bounding-box tree.
//
// The zero Config selects all defaults. Out-of-range fields are clamped
// during normalization, never rejected, so construction cannot fail.
type Config struct {
	// MaxDepth is the deepest level the bulk builder creates; at this
	// depth remaining primitives merge into a leaf. At least 1.
	MaxDepth int
	// MaxLeafSize is the primitive count at or below which the builder
	// emits a leaf without evaluating a split. At least 1. A leaf holds a
	// single item reference, so with MaxLeafSize > 1 the extra primitives
	// of a merged leaf are not tracked.
	MaxLeafSize int
	// Branching is the maximum child count per node, between 2 and
	// sah.MaxBranching.
	Branching int
	// BinCount is the centroid quantization resolution of the builder,
	// between sah.MinBinCount and sah.MaxBinCount.
	BinCount int
	// TraversalCost weighs descending one level against intersecting
	// primitives in the SAH cost model.
	TraversalCost float64
	// IntersectionCost weighs one primitive intersection in the SAH cost
	// model.
	IntersectionCost float64
}

func (cfg Config) normalized() Config {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = 1
	}
	if cfg.MaxLeafSize == 0 {
		cfg.MaxLeafSize = DefaultMaxLeafSize
	}
	if cfg.MaxLeafSize < 1 {
		cfg.MaxLeafSize = 1
	}
	s := cfg.splitterConfig().Normalized()
	cfg.Branching = s.Branching
	cfg.BinCount = s.BinCount
	cfg.TraversalCost = s.TraversalCost
	cfg.IntersectionCost = s.IntersectionCost
	return cfg
}

func (cfg Config) splitterConfig() sah.Config {
	return sah.Config{
		Branching:        cfg.Branching,
		BinCount:         cfg.BinCount,
		TraversalCost:    cfg.TraversalCost,
		IntersectionCost: cfg.IntersectionCost,
	}
}
