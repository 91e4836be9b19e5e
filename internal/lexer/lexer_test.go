// # internal/lexer/lexer_test.go
package lexer

import "testing"

func collect(t *testing.T, src string) []Token {
	t.Helper()
	lex := New(src)
	var toks []Token
	for {
		tok, ok := lex.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestLexer_FunctionHead(t *testing.T) {
	toks := collect(t, "function foo(a, b) {")

	if len(toks) != 1 {
		t.Fatalf("expected 1 token, got %d: %v", len(toks), toks)
	}
	if toks[0].Kind != KindFuncHead {
		t.Errorf("expected funchead, got %s", toks[0].Kind)
	}
	if toks[0].Name != "foo" {
		t.Errorf("expected captured name foo, got %q", toks[0].Name)
	}
}

func TestLexer_HeadVariants(t *testing.T) {
	cases := []struct {
		src  string
		name string
	}{
		{"function plain() {", "plain"},
		{"export function exported() {", "exported"},
		{"async function lazy() {", "lazy"},
		{"export async function both() {", "both"},
		{"public render(): void {", "render"},
		{"private async load(url: string) {", "load"},
		{"public static create(opts) {", "create"},
		{"private async static boot() {", "boot"},
	}

	for _, tc := range cases {
		toks := collect(t, tc.src)
		if len(toks) == 0 || toks[0].Kind != KindFuncHead {
			t.Errorf("%q: expected a funchead token, got %v", tc.src, toks)
			continue
		}
		if toks[0].Name != tc.name {
			t.Errorf("%q: expected name %q, got %q", tc.src, tc.name, toks[0].Name)
		}
	}
}

func TestLexer_HeadNotMatchedForCalls(t *testing.T) {
	// A call site must tokenize as a plain identifier, not a head.
	toks := collect(t, "foo(bar)")

	if len(toks) != 2 {
		t.Fatalf("expected 2 tokens, got %d: %v", len(toks), toks)
	}
	for _, tok := range toks {
		if tok.Kind != KindIdentifier {
			t.Errorf("expected identifier, got %s for %q", tok.Kind, tok.Text)
		}
	}
}

func TestLexer_LineColumnTracking(t *testing.T) {
	toks := collect(t, "abc\n  def\n}")

	want := []struct {
		kind   TokenKind
		line   int
		column int
	}{
		{KindIdentifier, 1, 0},
		{KindNewline, 1, 3},
		{KindIdentifier, 2, 2},
		{KindNewline, 2, 5},
		{KindCloseBrace, 3, 0},
	}

	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Line != w.line || toks[i].Column != w.column {
			t.Errorf("token %d: expected %s at %d:%d, got %s at %d:%d",
				i, w.kind, w.line, w.column, toks[i].Kind, toks[i].Line, toks[i].Column)
		}
	}
}

func TestLexer_CommentIgnored(t *testing.T) {
	toks := collect(t, "// helper comment\nfoo")

	if toks[0].Kind != KindIgnore {
		t.Errorf("expected ignore token first, got %s", toks[0].Kind)
	}
	last := toks[len(toks)-1]
	if last.Kind != KindIdentifier || last.Text != "foo" {
		t.Errorf("expected trailing identifier foo, got %s %q", last.Kind, last.Text)
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	if toks := collect(t, ""); len(toks) != 0 {
		t.Errorf("expected no tokens for empty input, got %v", toks)
	}
}

func TestLexer_BracesAndDepthMaterial(t *testing.T) {
	toks := collect(t, "{ nested }")

	kinds := []TokenKind{KindOpenBrace, KindIdentifier, KindCloseBrace}
	if len(toks) != len(kinds) {
		t.Fatalf("expected %d tokens, got %v", len(kinds), toks)
	}
	for i, k := range kinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: expected %s, got %s", i, k, toks[i].Kind)
		}
	}
}
