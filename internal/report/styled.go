// # internal/report/styled.go
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"strata/internal/graph"
	"strata/internal/util"
)

var (
	levelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	leafStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))

	depStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))
)

// Styled renders the same report as Text with terminal colors for
// interactive use.
func (g *Generator) Styled() string {
	var buf strings.Builder

	grouped := graph.GroupByLevel(g.levels)
	for _, level := range util.SortedIntKeys(grouped) {
		label := fmt.Sprintf("Level %d", level)
		if level == 0 {
			label += " (leaves)"
		}
		buf.WriteString(levelStyle.Render(label))
		buf.WriteByte('\n')

		for _, name := range grouped[level] {
			fn, ok := g.table.Lookup(name)
			if !ok {
				continue
			}
			rendered := name
			if level == 0 {
				rendered = leafStyle.Render(name)
			}
			fmt.Fprintf(&buf, "  %s %s\n", rendered, pathStyle.Render("( "+fn.Path+" )"))
			if len(fn.Deps) > 0 {
				fmt.Fprintf(&buf, "    %s\n", depStyle.Render("- "+strings.Join(fn.Deps, ", ")))
			}
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}
