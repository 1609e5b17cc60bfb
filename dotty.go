package boxtree

import (
	"fmt"
	"io"

	"github.com/npillmayer/boxtree/geom"
)

// Tree2Dot outputs the internal structure of a Tree in Graphviz DOT format
// (for debugging purposes).
//
// Leaves render as boxes labeled with their item's type and captured
// bounds; internal nodes render as circles tinted by depth.
func Tree2Dot(t *Tree, w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	var walk func(ni int32)
	walk = func(ni int32) {
		nd := &t.nodes[ni]
		styles := nodeDotStyles(nd.isLeaf(), int(nd.depth))
		if nd.isLeaf() {
			label := fmt.Sprintf("%T\\n%s", nd.item, boxLabel(nd.bounds))
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", ni, label, styles)
			return
		}
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", ni, boxLabel(nd.bounds), styles)
		for _, ci := range nd.children() {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ni, ci)
			walk(ci)
		}
	}
	if !t.IsEmpty() {
		walk(t.root)
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func boxLabel(b geom.AABB) string {
	return fmt.Sprintf("(%.3g %.3g %.3g)..(%.3g %.3g %.3g)",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

func nodeDotStyles(isleaf bool, depth int) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box,fillcolor=\"#a3d7e4\""
	} else {
		s += fmt.Sprintf(",color=black,shape=circle,fillcolor=\"%s\"",
			hexcolors[depth%len(hexcolors)])
	}
	return s
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
