package stats

import (
	"github.com/npillmayer/boxtree"
)

// Report summarizes the shape of one tree at the time of analysis.
type Report struct {
	Nodes    int
	Leaves   int
	Internal int
	// Items is the number of tracked items. It matches Leaves on every
	// intact tree; both can fall short of the bulk-build input count when
	// leaves were merged.
	Items  int
	Height int
	// AvgLeafDepth is the mean depth over all leaves, 0 for empty trees.
	AvgLeafDepth float64
	// AvgFanout is the mean child count over internal nodes.
	AvgFanout float64
	// IdealDepth is the depth of a perfectly filled tree holding the same
	// leaves at the tree's branching factor.
	IdealDepth int
}

// Analyze collects a Report over t. A nil or empty tree yields a zero
// Report.
func Analyze(t *boxtree.Tree) Report {
	r := Report{Items: t.Len(), Height: t.Height()}
	views := t.AllNodes()
	if len(views) == 0 {
		return r
	}
	leafDepths := 0
	fanouts := 0
	for _, v := range views {
		r.Nodes++
		if v.Leaf {
			r.Leaves++
			leafDepths += v.Depth
		} else {
			r.Internal++
			fanouts += v.ChildCount
		}
	}
	if r.Leaves > 0 {
		r.AvgLeafDepth = float64(leafDepths) / float64(r.Leaves)
	}
	if r.Internal > 0 {
		r.AvgFanout = float64(fanouts) / float64(r.Internal)
	}
	r.IdealDepth = idealDepth(r.Leaves, t.Config().Branching)
	return r
}

// idealDepth is the depth of a perfectly filled k-ary tree with n leaves.
func idealDepth(n, k int) int {
	if n <= 1 || k < 2 {
		return 0
	}
	depth, capacity := 0, 1
	for capacity < n {
		capacity *= k
		depth++
	}
	return depth
}

// Rebuild advisory: leaves should on average not sit much deeper than in
// a perfectly filled tree.
const (
	depthStretch = 1.5
	depthSlack   = 2
)

// NeedsRebuild reports whether incremental mutations have degraded the
// tree shape enough that a bulk rebuild would pay off. The advisory
// triggers when the average leaf depth exceeds 1.5 times the ideal depth
// plus a fixed slack; trees with fewer than two leaves never trigger.
func NeedsRebuild(r Report) bool {
	if r.Leaves < 2 {
		return false
	}
	limit := depthStretch*float64(r.IdealDepth) + depthSlack
	if r.AvgLeafDepth <= limit {
		return false
	}
	tracer().Debugf("stats: avg leaf depth %.2f over limit %.2f, rebuild advised", r.AvgLeafDepth, limit)
	return true
}
