// # internal/report/dot.go
package report

import (
	"fmt"
	"strings"

	"strata/internal/graph"
	"strata/internal/util"
)

// DOT renders a graphviz digraph with one rank cluster per level so the
// rendered image reads bottom-up like the text report.
func (g *Generator) DOT() string {
	var buf strings.Builder

	buf.WriteString("digraph levels {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  edge [fontname=\"Helvetica\", fontsize=8];\n\n")

	grouped := graph.GroupByLevel(g.levels)
	for _, level := range util.SortedIntKeys(grouped) {
		buf.WriteString(fmt.Sprintf("  subgraph cluster_level_%d {\n", level))
		buf.WriteString(fmt.Sprintf("    label=\"Level %d\";\n", level))
		buf.WriteString("    style=filled;\n")
		buf.WriteString("    color=\"whitesmoke\";\n")
		buf.WriteString("    rank=same;\n")

		for _, name := range grouped[level] {
			fn, ok := g.table.Lookup(name)
			if !ok {
				continue
			}
			label := fmt.Sprintf("%s\\n%s", name, fn.Path)
			if level == 0 {
				buf.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", fillcolor=\"honeydew\", style=\"rounded,filled\"];\n", name, label))
			} else {
				buf.WriteString(fmt.Sprintf("    \"%s\" [label=\"%s\", fillcolor=\"white\", style=\"rounded,filled\"];\n", name, label))
			}
		}
		buf.WriteString("  }\n\n")
	}

	for _, level := range util.SortedIntKeys(grouped) {
		for _, name := range grouped[level] {
			fn, ok := g.table.Lookup(name)
			if !ok {
				continue
			}
			for _, dep := range fn.Deps {
				buf.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\";\n", name, dep))
			}
		}
	}

	buf.WriteString("}\n")

	return buf.String()
}
