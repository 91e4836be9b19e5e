// # internal/graph/levels.go
package graph

import (
	"fmt"
	"sort"
	"strings"

	"strata/internal/util"
)

// CycleError reports a dependency cycle discovered while computing levels.
type CycleError struct {
	Entry string
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency entering '%s': %s", e.Entry, strings.Join(e.Cycle, " -> "))
}

type mark int

const (
	unvisited mark = iota
	inProgress
	visited
)

// ComputeLevels assigns every function the length of the longest dependency
// chain beneath it: 0 for leaves, otherwise 1 + max over its dependencies.
// Results are memoized across the traversal. Three-coloring detects cycles
// (including self loops) instead of recursing unboundedly; the first cycle
// found aborts the computation.
func (t *Table) ComputeLevels() (map[string]int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	levels := make(map[string]int, len(t.funcs))
	marks := make(map[string]mark, len(t.funcs))
	var stack []string

	var visit func(name string) (int, error)
	visit = func(name string) (int, error) {
		switch marks[name] {
		case visited:
			return levels[name], nil
		case inProgress:
			// Revisiting an in-progress node: slice the traversal stack at
			// the first occurrence to report the cycle.
			start := 0
			for start < len(stack) && stack[start] != name {
				start++
			}
			cycle := append(append([]string(nil), stack[start:]...), name)
			return 0, &CycleError{Entry: name, Cycle: cycle}
		}

		marks[name] = inProgress
		stack = append(stack, name)

		level := 0
		for _, dep := range t.funcs[name].Deps {
			// Before FilterDependencies runs, Deps may still hold raw
			// identifiers naming nothing in the table; those carry no level.
			if _, known := t.funcs[dep]; !known {
				continue
			}
			depLevel, err := visit(dep)
			if err != nil {
				return 0, err
			}
			if depLevel+1 > level {
				level = depLevel + 1
			}
		}

		stack = stack[:len(stack)-1]
		marks[name] = visited
		levels[name] = level
		return level, nil
	}

	for _, name := range util.SortedStringKeys(t.funcs) {
		if _, err := visit(name); err != nil {
			return nil, err
		}
	}

	return levels, nil
}

// GroupByLevel buckets function names by level, each bucket sorted by name so
// report output stays deterministic.
func GroupByLevel(levels map[string]int) map[int][]string {
	grouped := make(map[int][]string)
	for name, level := range levels {
		grouped[level] = append(grouped[level], name)
	}
	for _, names := range grouped {
		sort.Strings(names)
	}
	return grouped
}

// MaxLevel returns the highest assigned level, or -1 for an empty map.
func MaxLevel(levels map[string]int) int {
	max := -1
	for _, level := range levels {
		if level > max {
			max = level
		}
	}
	return max
}
