// # internal/graph/table.go
package graph

import (
	"log/slog"
	"sync"

	"strata/internal/scanner"
)

// Function is one entry in the global function table. Deps starts as the raw
// identifier list collected by the scanner and is narrowed to real dependency
// edges by FilterDependencies.
type Function struct {
	Name   string
	Path   string
	Line   int
	Column int
	Deps   []string
}

// Table merges every scanned file's discoveries into one global
// name -> function mapping. Names are assumed unique across the tree; a
// collision keeps the later record (last write wins) and logs the overwrite.
type Table struct {
	mu       sync.RWMutex
	funcs    map[string]*Function
	order    []string // discovery order; a name keeps its first slot
	filtered bool
}

func NewTable() *Table {
	return &Table{
		funcs: make(map[string]*Function),
	}
}

// AddFile merges one file's scan result into the table.
func (t *Table) AddFile(res *scanner.FileResult) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i := range res.Funcs {
		fn := &res.Funcs[i]
		if prev, ok := t.funcs[fn.Name]; ok {
			slog.Warn("duplicate function name, keeping later definition",
				"name", fn.Name, "previous", prev.Path, "path", fn.Path)
		} else {
			t.order = append(t.order, fn.Name)
		}
		t.funcs[fn.Name] = &Function{
			Name:   fn.Name,
			Path:   fn.Path,
			Line:   fn.Line,
			Column: fn.Column,
			Deps:   append([]string(nil), fn.Idents...),
		}
	}
}

// FilterDependencies replaces each function's raw identifier list with the
// subset naming functions present in the table. This is the step that turns
// "identifiers mentioned in source" into dependency edges. Self references
// survive here; the level calculator reports them as cycles.
func (t *Table) FilterDependencies() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, fn := range t.funcs {
		deps := make([]string, 0, len(fn.Deps))
		for _, d := range fn.Deps {
			if _, ok := t.funcs[d]; ok {
				deps = append(deps, d)
			}
		}
		fn.Deps = deps
	}
	t.filtered = true
}

// Filtered reports whether FilterDependencies has run.
func (t *Table) Filtered() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.filtered
}

// Lookup returns a copy of the named function's record.
func (t *Table) Lookup(name string) (*Function, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.funcs[name]
	if !ok {
		return nil, false
	}
	return cloneFunction(fn), true
}

// Functions returns copies of every record in discovery order.
func (t *Table) Functions() []*Function {
	t.mu.RLock()
	defer t.mu.RUnlock()

	res := make([]*Function, 0, len(t.order))
	for _, name := range t.order {
		res = append(res, cloneFunction(t.funcs[name]))
	}
	return res
}

// Len returns the number of recorded functions.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.funcs)
}

// EdgeCount returns the total number of dependency entries across all
// functions. Only meaningful after FilterDependencies.
func (t *Table) EdgeCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, fn := range t.funcs {
		n += len(fn.Deps)
	}
	return n
}

func cloneFunction(fn *Function) *Function {
	if fn == nil {
		return nil
	}
	c := *fn
	c.Deps = append([]string(nil), fn.Deps...)
	return &c
}
