// # internal/report/mermaid.go
package report

import (
	"fmt"
	"strings"
	"unicode"

	"strata/internal/graph"
	"strata/internal/util"
)

// Mermaid renders a flowchart with one subgraph per level. Leaves get their
// own class so renderers shade them like the DOT output does.
func (g *Generator) Mermaid() string {
	var b strings.Builder

	b.WriteString("%%{init: {'flowchart': {'nodeSpacing': 60, 'rankSpacing': 90, 'curve': 'basis'}}}%%\n")
	b.WriteString("flowchart BT\n")

	grouped := graph.GroupByLevel(g.levels)

	var allNames []string
	for _, level := range util.SortedIntKeys(grouped) {
		allNames = append(allNames, grouped[level]...)
	}
	ids := makeMermaidIDs(allNames)

	var leafIDs []string
	for _, level := range util.SortedIntKeys(grouped) {
		b.WriteString(fmt.Sprintf("  subgraph level_%d[\"Level %d\"]\n", level, level))
		for _, name := range grouped[level] {
			fn, ok := g.table.Lookup(name)
			if !ok {
				continue
			}
			b.WriteString(fmt.Sprintf("    %s[\"%s\\n%s\"]\n", ids[name], escapeMermaidLabel(name), escapeMermaidLabel(fn.Path)))
			if level == 0 {
				leafIDs = append(leafIDs, ids[name])
			}
		}
		b.WriteString("  end\n")
	}

	if len(leafIDs) > 0 {
		b.WriteString("\n  classDef leafNode fill:#f0fff0,stroke:#4d8060,stroke-width:1px;\n")
		b.WriteString("  class ")
		b.WriteString(strings.Join(leafIDs, ","))
		b.WriteString(" leafNode;\n")
	}

	b.WriteString("\n")
	for _, level := range util.SortedIntKeys(grouped) {
		for _, name := range grouped[level] {
			fn, ok := g.table.Lookup(name)
			if !ok {
				continue
			}
			for _, dep := range fn.Deps {
				b.WriteString(fmt.Sprintf("  %s --> %s\n", ids[name], ids[dep]))
			}
		}
	}

	return b.String()
}

func sanitizeMermaidID(name string) string {
	if name == "" {
		return "n"
	}
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteRune('_')
	}
	out := b.String()
	if unicode.IsDigit(rune(out[0])) {
		return "n_" + out
	}
	return out
}

func makeMermaidIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]int, len(names))
	for _, name := range names {
		base := sanitizeMermaidID(name)
		idx := used[base]
		used[base] = idx + 1
		if idx == 0 {
			ids[name] = base
			continue
		}
		ids[name] = fmt.Sprintf("%s_%d", base, idx+1)
	}
	return ids
}

func escapeMermaidLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
