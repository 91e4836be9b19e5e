// # internal/graph/detect.go
package graph

import "strata/internal/util"

// DetectCycles enumerates every dependency cycle without aborting. Watch and
// UI modes use this so a cyclic tree is displayed instead of killing the
// session; single-scan mode relies on ComputeLevels failing fast.
func (t *Table) DetectCycles() [][]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var cycles [][]string
	seen := make(map[string]bool, len(t.funcs))
	onStack := make(map[string]bool, len(t.funcs))

	var walk func(curr string, path []string)
	walk = func(curr string, path []string) {
		seen[curr] = true
		onStack[curr] = true
		path = append(path, curr)

		for _, next := range t.funcs[curr].Deps {
			if _, known := t.funcs[next]; !known {
				continue
			}
			if onStack[next] {
				start := -1
				for i, name := range path {
					if name == next {
						start = i
						break
					}
				}
				if start != -1 {
					cycle := make([]string, len(path)-start)
					copy(cycle, path[start:])
					cycles = append(cycles, cycle)
				}
			} else if !seen[next] {
				walk(next, path)
			}
		}

		onStack[curr] = false
	}

	for _, name := range util.SortedStringKeys(t.funcs) {
		if !seen[name] {
			walk(name, nil)
		}
	}

	return cycles
}
