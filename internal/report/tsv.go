// # internal/report/tsv.go
package report

import (
	"fmt"
	"sort"
	"strings"
)

// TSV renders one row per dependency edge; leaf functions get a single row
// with an empty DependsOn column so every function appears.
func (g *Generator) TSV() string {
	var buf strings.Builder

	buf.WriteString("Function\tPath\tLevel\tDependsOn\n")

	fns := g.table.Functions()
	sort.Slice(fns, func(i, j int) bool { return fns[i].Name < fns[j].Name })

	for _, fn := range fns {
		level := g.levels[fn.Name]
		if len(fn.Deps) == 0 {
			buf.WriteString(fmt.Sprintf("%s\t%s\t%d\t\n", fn.Name, fn.Path, level))
			continue
		}
		for _, dep := range fn.Deps {
			buf.WriteString(fmt.Sprintf("%s\t%s\t%d\t%s\n", fn.Name, fn.Path, level, dep))
		}
	}

	return buf.String()
}
