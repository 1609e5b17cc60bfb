package formatter

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

Please refer to the License file in the repository root.

*/

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/npillmayer/boxtree"
	"golang.org/x/term"
)

// ConsoleTree is a type for outputting a tree outline to a console with
// a fixed width font. It uses colors to tell tree levels apart: inner
// nodes cycle through a palette by tree level, leaves and summary lines
// have fixed colors.
type ConsoleTree struct {
	palette []*color.Color
	leaf    *color.Color
	summary *color.Color
}

// Print dumps the structure of tree t to stdout.
//
// If parameter config is nil, a heuristic will create a config from the
// current terminal's properties (if stdout is interactive).
func (fw *ConsoleTree) Print(t *boxtree.Tree, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
	}
	return Output(t, os.Stdout, config, fw)
}

// NewConsoleTree creates a new formatter. It is to be used for consoles
// with a fixed width font.
//
// palette is a list of colors which inner nodes cycle through by tree
// level. If palette is nil, a default palette is used.
func NewConsoleTree(palette []*color.Color) *ConsoleTree {
	fw := &ConsoleTree{
		leaf:    color.New(color.FgGreen),
		summary: color.New(color.FgYellow),
	}
	if palette == nil {
		fw.palette = makeDefaultPalette()
	} else {
		fw.palette = palette
	}
	return fw
}

func makeDefaultPalette() []*color.Color {
	palette := []*color.Color{
		color.New(color.FgCyan),
		color.New(color.FgBlue),
		color.New(color.FgMagenta),
		color.New(color.FgRed),
	}
	return palette
}

// Node is called by the output driver for every node of the outline, in
// depth-first order. It uses colors to visualize tree levels.
// (Part of interface Format)
func (fw *ConsoleTree) Node(label string, depth int, leaf bool, w io.Writer) {
	if leaf {
		fw.leaf.Fprint(w, label)
		return
	}
	if len(fw.palette) > 0 {
		fw.palette[depth%len(fw.palette)].Fprint(w, label)
		return
	}
	w.Write([]byte(label))
}

// Summary is called by the output driver for trailing summary lines.
// (Part of interface Format)
func (fw *ConsoleTree) Summary(line string, w io.Writer) {
	fw.summary.Fprint(w, line)
}

// Preamble is called by the output driver before a tree will be dumped.
// (Part of interface Format)
func (fw *ConsoleTree) Preamble(w io.Writer) {
}

// Postamble will be called after a tree has been dumped.
// (Part of interface Format)
func (fw *ConsoleTree) Postamble(w io.Writer) {
}

// Newline will be called at the end of every line of output.
// (Part of interface Format)
func (fw *ConsoleTree) Newline(w io.Writer) {
	w.Write([]byte{'\n'})
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating an output Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if term.IsTerminal(0) {
		w, _, err := term.GetSize(0)
		if err != nil {
			config.LineWidth = defaultLineWidth
		} else {
			if w > defaultLineWidth {
				config.LineWidth = defaultLineWidth
			} else if w > 30 {
				config.LineWidth = w - 5
			} else if w > 10 {
				config.LineWidth = w
			} else {
				config.LineWidth = 10
			}
		}
	} else {
		config.LineWidth = defaultLineWidth
	}
	T().P("format", "console").Infof("setting line length to %d columns", config.LineWidth)
	return config
}
