// # internal/report/report.go
package report

import (
	"fmt"
	"strconv"
	"strings"

	"strata/internal/graph"
	"strata/internal/util"
)

// Generator renders one scan's level assignment in several formats. Levels
// print in ascending order; functions within a level sort by name.
// Dependency lists keep the scanner's discovery order.
type Generator struct {
	table  *graph.Table
	levels map[string]int
}

func New(table *graph.Table, levels map[string]int) *Generator {
	return &Generator{table: table, levels: levels}
}

// Text renders the plain level report:
//
//	0
//	bar ( src/a.ts )
//
//	1
//	foo ( src/b.ts )
//	 - bar
func (g *Generator) Text() string {
	var buf strings.Builder

	grouped := graph.GroupByLevel(g.levels)
	for _, level := range util.SortedIntKeys(grouped) {
		buf.WriteString(strconv.Itoa(level))
		buf.WriteByte('\n')

		for _, name := range grouped[level] {
			fn, ok := g.table.Lookup(name)
			if !ok {
				continue
			}
			fmt.Fprintf(&buf, "%s ( %s )\n", fn.Name, fn.Path)
			if len(fn.Deps) > 0 {
				fmt.Fprintf(&buf, " - %s\n", strings.Join(fn.Deps, ", "))
			}
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}
