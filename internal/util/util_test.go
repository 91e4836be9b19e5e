package util

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSortedStringKeys(t *testing.T) {
	m := map[string]int{"b": 1, "a": 2, "c": 3}
	keys := SortedStringKeys(m)

	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("expected %v, got %v", want, keys)
			break
		}
	}
}

func TestSortedIntKeys(t *testing.T) {
	m := map[int]string{3: "c", 0: "a", 1: "b"}
	keys := SortedIntKeys(m)

	want := []int{0, 1, 3}
	for i, k := range want {
		if keys[i] != k {
			t.Errorf("expected %v, got %v", want, keys)
			break
		}
	}
}

func TestCompileGlobs(t *testing.T) {
	globs, err := CompileGlobs([]string{"*.log", "node_modules"})
	if err != nil {
		t.Fatalf("CompileGlobs failed: %v", err)
	}

	if !MatchAny(globs, "debug.log") {
		t.Error("expected debug.log to match *.log")
	}
	if !MatchAny(globs, "node_modules") {
		t.Error("expected node_modules to match")
	}
	if MatchAny(globs, "main.ts") {
		t.Error("main.ts should not match")
	}

	if _, err := CompileGlobs([]string{"[bad"}); err == nil {
		t.Error("expected an error for a malformed pattern")
	}
}

func TestWriteStringWithDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out", "report.txt")

	if err := WriteStringWithDirs(path, "content", 0o644); err != nil {
		t.Fatalf("WriteStringWithDirs failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "content" {
		t.Errorf("expected 'content', got %q", data)
	}
}

func TestLimiter(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow() {
		t.Error("first scan should pass")
	}
	if l.Allow() {
		t.Error("second immediate scan should be throttled")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err == nil {
		t.Error("expected Wait to fail while the bucket refills slower than the deadline")
	}
}
