package formatter

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/boxtree"
	"github.com/npillmayer/boxtree/geom"
	"github.com/npillmayer/boxtree/stats"
)

// Config represents a set of configuration parameters for tree output.
type Config struct {
	LineWidth int  // clip output lines to this many columns
	Indent    int  // columns of indentation per tree level
	Summary   bool // append shape metrics and a rebuild advisory
}

const defaultLineWidth = 80
const defaultIndent = 2

// Format is an interface for output drivers, given an io.Writer
type Format interface {
	Preamble(io.Writer)
	Postamble(io.Writer)
	Node(string, int, bool, io.Writer)
	Summary(string, io.Writer)
	Newline(io.Writer)
}

// Output dumps the structure of a tree using a given formatter.
//
// Nodes are written in depth-first order, one line per node, indented by
// tree level. Neither of the arguments may be nil.
func Output(t *boxtree.Tree, out io.Writer, config *Config, format Format) error {
	//
	if t == nil || config == nil || format == nil {
		return errors.New("illegal argument: nil")
	}
	width := config.LineWidth
	if width <= 0 {
		width = defaultLineWidth
	}
	indent := config.Indent
	if indent <= 0 {
		indent = defaultIndent
	}
	format.Preamble(out)
	for _, v := range t.AllNodes() {
		line := strings.Repeat(" ", v.Depth*indent) + nodeLabel(v)
		format.Node(clip(line, width), v.Depth, v.Leaf, out)
		format.Newline(out)
	}
	if config.Summary {
		report := stats.Analyze(t)
		line := fmt.Sprintf("%d items in %d nodes, height %d, mean leaf depth %.2f",
			report.Items, report.Nodes, report.Height, report.AvgLeafDepth)
		format.Summary(clip(line, width), out)
		format.Newline(out)
		if stats.NeedsRebuild(report) {
			format.Summary(clip("leaf depth degraded, re-build advised", width), out)
			format.Newline(out)
		}
	}
	format.Postamble(out)
	return nil
}

// Print dumps the structure of tree t to stdout.
//
// If parameter config is nil, a heuristic will create a config from the
// current terminal's properties (if stdout is interactive).
func Print(t *boxtree.Tree, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	console := NewConsoleTree(nil)
	return Output(t, os.Stdout, config, console)
}

// nodeLabel produces the text for one node of the outline. Leaves show the
// dynamic type of their item, inner nodes show their fan-out.
func nodeLabel(v boxtree.NodeView) string {
	if v.Leaf {
		return fmt.Sprintf("%T %s", v.Item, boundsLabel(v.Bounds))
	}
	return fmt.Sprintf("[%d] %s", v.ChildCount, boundsLabel(v.Bounds))
}

func boundsLabel(box geom.AABB) string {
	return fmt.Sprintf("(%.3g %.3g %.3g)…(%.3g %.3g %.3g)",
		box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
}

// clip cuts line down to width columns, marking the cut with an ellipsis.
func clip(line string, width int) string {
	r := []rune(line)
	if len(r) <= width {
		return line
	}
	if width <= 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
