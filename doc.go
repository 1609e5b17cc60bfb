/*
Package boxtree maintains a spatial index over a dynamic set of world-space
bounding boxes.

Bounding-box trees

Applications that track moving objects, rendering engines and simulations
among them, constantly need to answer the question "which objects' boxes
overlap this region?" without scanning every object. Boxtree organizes the
axis-aligned bounding boxes of tracked items in a wide tree, up to 8
children per node, where every node's box encloses the boxes of all items
below it. Overlap queries then descend the tree and prune every subtree
whose box misses the query region.

Two construction paths feed the same tree shape. A bulk build partitions
the full item set top-down with a binned surface-area heuristic, searching
the cheapest multi-way cut by dynamic programming. Single items are added,
removed, or refreshed afterwards without rebuilding: an insertion descends
toward the leaf whose box grows least, a removal collapses nodes left with
a single child.

The surface-area heuristic goes back to MacDonald and Booth (1990):
assuming uniformly distributed rays, the conditional probability that a
ray hitting a parent volume also hits a child volume is proportional to
the ratio of their surface areas. Scaling each candidate partition's
surface-area ratios by its primitive counts yields an expected traversal
cost, and the partition minimizing that cost makes the best split. Wald
(2007) made the search practical by quantizing primitive centroids into a
small number of bins before evaluating cuts; package sah extends the
binned search from binary splits to multi-way cuts.

Trees hand out no locks and run no background work. A host application
must serialize mutations and queries, typically one update phase per
frame. Items are captured as read-only snapshots: the tree never mutates
the objects it tracks, and an item that moves is reflected only after a
Refresh.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package boxtree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// TreeError is an error type for the boxtree module
type TreeError string

func (e TreeError) Error() string {
	return string(e)
}

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = TreeError("illegal arguments")

// ErrInvariantViolation is flagged by Check whenever a structural tree
// invariant does not hold.
const ErrInvariantViolation = TreeError("tree invariant violated")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
