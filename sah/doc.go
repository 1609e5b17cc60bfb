/*
Package sah implements binned surface-area-heuristic partitioning for
bounding-box trees.

The splitter quantizes primitive centroids into a fixed number of bins
along the widest centroid axis and searches, by dynamic programming over
contiguous bin ranges, for the cheapest way to cut the set into up to K
groups. Costs follow the classic SAH model: the expected cost of visiting
a group is proportional to its bounds' surface area relative to the parent
bounds, weighted by the number of primitives in the group.

Partitioning is deterministic. All cost comparisons are strict, so ties
resolve to the earliest candidate, and degenerate inputs (flat centroid
spreads, partitions that collapse to a single group) take an equal-count
cut instead of failing.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package sah

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'boxtree'
func tracer() tracing.Trace {
	return tracing.Select("boxtree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
