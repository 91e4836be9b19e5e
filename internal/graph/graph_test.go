// # internal/graph/graph_test.go
package graph

import (
	"errors"
	"testing"

	"strata/internal/scanner"
)

func addFuncs(t *Table, path string, funcs ...scanner.Function) {
	res := &scanner.FileResult{Path: path, Funcs: funcs}
	t.AddFile(res)
}

func TestTable_AddFileAndFilter(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "bar", Path: "a.ts"},
	)
	addFuncs(table, "b.ts",
		scanner.Function{Name: "foo", Path: "b.ts", Idents: []string{"bar", "console", "window"}},
	)

	table.FilterDependencies()

	foo, ok := table.Lookup("foo")
	if !ok {
		t.Fatal("foo not found")
	}
	if len(foo.Deps) != 1 || foo.Deps[0] != "bar" {
		t.Errorf("expected deps [bar], got %v", foo.Deps)
	}

	bar, _ := table.Lookup("bar")
	if len(bar.Deps) != 0 {
		t.Errorf("expected bar to be a leaf, got %v", bar.Deps)
	}
}

func TestTable_FilteredSubsetOfKnownNames(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "a", Path: "a.ts", Idents: []string{"b", "ghost", "x"}},
		scanner.Function{Name: "b", Path: "a.ts", Idents: []string{"phantom"}},
	)

	table.FilterDependencies()

	for _, fn := range table.Functions() {
		for _, d := range fn.Deps {
			if _, ok := table.Lookup(d); !ok {
				t.Errorf("%s has dangling edge %q", fn.Name, d)
			}
		}
	}
}

func TestTable_LastWriteWins(t *testing.T) {
	table := NewTable()
	addFuncs(table, "first.ts", scanner.Function{Name: "dup", Path: "first.ts"})
	addFuncs(table, "second.ts", scanner.Function{Name: "dup", Path: "second.ts", Idents: []string{"x"}})

	if table.Len() != 1 {
		t.Fatalf("expected exactly one record, got %d", table.Len())
	}
	dup, _ := table.Lookup("dup")
	if dup.Path != "second.ts" {
		t.Errorf("expected later path second.ts, got %q", dup.Path)
	}
}

func TestComputeLevels_Chain(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "low", Path: "a.ts"},
		scanner.Function{Name: "mid", Path: "a.ts", Idents: []string{"low"}},
		scanner.Function{Name: "high", Path: "a.ts", Idents: []string{"mid", "low"}},
	)
	table.FilterDependencies()

	levels, err := table.ComputeLevels()
	if err != nil {
		t.Fatalf("ComputeLevels failed: %v", err)
	}

	want := map[string]int{"low": 0, "mid": 1, "high": 2}
	for name, level := range want {
		if levels[name] != level {
			t.Errorf("%s: expected level %d, got %d", name, level, levels[name])
		}
	}
}

func TestComputeLevels_Monotonic(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "a", Path: "a.ts", Idents: []string{"b", "c"}},
		scanner.Function{Name: "b", Path: "a.ts", Idents: []string{"c"}},
		scanner.Function{Name: "c", Path: "a.ts"},
		scanner.Function{Name: "d", Path: "a.ts", Idents: []string{"a"}},
	)
	table.FilterDependencies()

	levels, err := table.ComputeLevels()
	if err != nil {
		t.Fatalf("ComputeLevels failed: %v", err)
	}

	for _, fn := range table.Functions() {
		if len(fn.Deps) == 0 {
			if levels[fn.Name] != 0 {
				t.Errorf("leaf %s should be level 0, got %d", fn.Name, levels[fn.Name])
			}
			continue
		}
		for _, dep := range fn.Deps {
			if levels[fn.Name] <= levels[dep] {
				t.Errorf("level(%s)=%d not greater than level(%s)=%d",
					fn.Name, levels[fn.Name], dep, levels[dep])
			}
		}
	}
}

func TestComputeLevels_MutualRecursion(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "a", Path: "a.ts", Idents: []string{"b"}},
		scanner.Function{Name: "b", Path: "a.ts", Idents: []string{"a"}},
	)
	table.FilterDependencies()

	_, err := table.ComputeLevels()
	if err == nil {
		t.Fatal("expected a cycle error")
	}
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError, got %T: %v", err, err)
	}
	if len(cycleErr.Cycle) < 2 {
		t.Errorf("expected cycle path, got %v", cycleErr.Cycle)
	}
}

func TestComputeLevels_SelfLoop(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "rec", Path: "a.ts", Idents: []string{"rec"}},
	)
	table.FilterDependencies()

	_, err := table.ComputeLevels()
	var cycleErr *CycleError
	if !errors.As(err, &cycleErr) {
		t.Fatalf("expected *CycleError for self loop, got %v", err)
	}
	if cycleErr.Entry != "rec" {
		t.Errorf("expected entry rec, got %q", cycleErr.Entry)
	}
}

func TestComputeLevels_Idempotent(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "p", Path: "a.ts", Idents: []string{"q", "r"}},
		scanner.Function{Name: "q", Path: "a.ts", Idents: []string{"r"}},
		scanner.Function{Name: "r", Path: "a.ts"},
	)
	table.FilterDependencies()

	first, err := table.ComputeLevels()
	if err != nil {
		t.Fatal(err)
	}
	second, err := table.ComputeLevels()
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != len(second) {
		t.Fatalf("level maps differ in size: %d vs %d", len(first), len(second))
	}
	for name, level := range first {
		if second[name] != level {
			t.Errorf("%s: %d vs %d across runs", name, level, second[name])
		}
	}
}

func TestComputeLevels_UnknownIdentsSkipped(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "f", Path: "a.ts", Idents: []string{"console", "g"}},
		scanner.Function{Name: "g", Path: "a.ts", Idents: []string{"window"}},
	)

	// No FilterDependencies: raw identifier lists still hold unknown names,
	// which must be skipped rather than chased.
	levels, err := table.ComputeLevels()
	if err != nil {
		t.Fatalf("ComputeLevels failed: %v", err)
	}
	if levels["g"] != 0 || levels["f"] != 1 {
		t.Errorf("expected g=0 f=1, got %v", levels)
	}
}

func TestDetectCycles_UnknownIdentsSkipped(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "f", Path: "a.ts", Idents: []string{"ghost"}},
	)

	if cycles := table.DetectCycles(); len(cycles) != 0 {
		t.Errorf("expected no cycles on an unfiltered table, got %v", cycles)
	}
}

func TestGroupByLevel(t *testing.T) {
	grouped := GroupByLevel(map[string]int{"z": 0, "a": 0, "m": 1})

	if len(grouped[0]) != 2 || grouped[0][0] != "a" || grouped[0][1] != "z" {
		t.Errorf("expected sorted level 0 [a z], got %v", grouped[0])
	}
	if len(grouped[1]) != 1 || grouped[1][0] != "m" {
		t.Errorf("expected level 1 [m], got %v", grouped[1])
	}
}

func TestMaxLevel(t *testing.T) {
	if got := MaxLevel(map[string]int{"a": 0, "b": 3}); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := MaxLevel(nil); got != -1 {
		t.Errorf("expected -1 for empty map, got %d", got)
	}
}

func TestDetectCycles(t *testing.T) {
	table := NewTable()
	addFuncs(table, "a.ts",
		scanner.Function{Name: "a", Path: "a.ts", Idents: []string{"b"}},
		scanner.Function{Name: "b", Path: "a.ts", Idents: []string{"c"}},
		scanner.Function{Name: "c", Path: "a.ts", Idents: []string{"a"}},
		scanner.Function{Name: "leaf", Path: "a.ts"},
	)
	table.FilterDependencies()

	cycles := table.DetectCycles()
	if len(cycles) != 1 {
		t.Fatalf("expected 1 cycle, got %d: %v", len(cycles), cycles)
	}
	if len(cycles[0]) != 3 {
		t.Errorf("expected cycle of length 3, got %v", cycles[0])
	}
}
