/*
Package stats computes shape statistics on bounding-box trees.

Incremental mutation slowly degrades a tree that started out SAH-optimal;
the statistics here put a number on that degradation, and NeedsRebuild
turns the number into a rebuild advisory a host application can act on
once per frame or on a timer.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package stats

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'boxtree'
func tracer() tracing.Trace {
	return tracing.Select("boxtree")
}
