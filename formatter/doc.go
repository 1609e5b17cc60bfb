/*
Package formatter outputs the structure of a bounding-box tree on
devices with fixed-width fonts. It is intended for interactive debugging
sessions, where a developer wants to see how a tree has arranged a set of
items without leaving the terminal.
Think of this package in terms of `fmt.Println` for trees.

A tree dump differs in some aspects from simple string output. Trees are
nested, colors help telling levels apart, and terminal lines are of
limited width. This package helps performing the following tasks:

▪︎ Select a formatter for a given (monospaced) output device

▪︎ Create a suitable output configuration

▪︎ Dump a tree as an indented outline, one node per line

Leaves show the dynamic type of the item they track, inner nodes show
their fan-out, and every line carries the node's box. An optional
trailing summary reports shape metrics and a rebuild advisory, computed
by package stats.

This package does not constitute a visualizer. For a graphical rendering
of a tree, use the DOT export of the boxtree package and feed it to
GraphViz.

API

Clients select an instance of type formatter.Format and possibly configure
it to their needs. Dumping a tree then is a one-liner:

	console := formatter.NewConsoleTree(nil)
	console.Print(tree, nil)

formatter.Format is an interface type and this package offers a console
implementation. Clients may provide their own drivers, e.g., for log
sinks or HTML output.

Status

Output format is not stable; clients should not parse it.

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
package formatter

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}
