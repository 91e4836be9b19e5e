// # internal/scanner/scanner.go
package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"strata/internal/lexer"
)

// Function is one committed declaration: its name, where it lives, and every
// identifier seen inside its body, in discovery order without duplicates.
// Idents is raw at this stage; the graph layer narrows it to real edges.
type Function struct {
	Name   string
	Path   string
	Line   int
	Column int
	Idents []string
}

// Notice reports a declaration found nested inside another function's body.
// The nested function gets no record of its own; its body identifiers are
// attributed to the enclosing function.
type Notice struct {
	Name string
	Path string
	Line int
}

func (n Notice) String() string {
	return fmt.Sprintf("Found nested function '%s' in '%s'. Determine dependencies manually", n.Name, n.Path)
}

// FileResult holds everything one file scan produced.
type FileResult struct {
	Path    string
	Funcs   []Function
	Notices []Notice
}

type state int

const (
	stateTopLevel state = iota
	stateFuncHead
	stateFuncBody
	stateCommit
	stateDone
)

// machine is the per-file scan context: the current token, brace depth, and
// the function accumulator. One transition method per step, driven to
// stateDone or the first error.
type machine struct {
	path   string
	lex    *lexer.Lexer
	state  state
	tok    lexer.Token
	depth  int
	fn     Function
	seen   map[string]struct{}
	result *FileResult
}

// ScanFile reads path and scans its full text.
func ScanFile(path string) (*FileResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return ScanText(path, string(data))
}

// ScanText runs the state machine over src. Any failure is returned as a
// *ScanError carrying the offending token's location.
func ScanText(path, src string) (*FileResult, error) {
	m := &machine{
		path:   path,
		lex:    lexer.New(src),
		result: &FileResult{Path: path},
	}

	for m.state != stateDone {
		if err := m.step(); err != nil {
			return nil, &ScanError{
				Path:      m.path,
				Line:      m.tok.Line,
				Column:    m.tok.Column,
				TokenText: m.tok.Text,
				Err:       err,
			}
		}
	}

	return m.result, nil
}

func (m *machine) step() error {
	switch m.state {
	case stateTopLevel:
		tok, ok := m.lex.Next()
		if !ok {
			m.state = stateDone
			return nil
		}
		m.tok = tok
		if tok.Kind == lexer.KindFuncHead {
			m.state = stateFuncHead
		}
		// Everything else is discarded at top level.

	case stateFuncHead:
		if m.tok.Name == "" {
			return ErrMalformedHead
		}
		m.fn = Function{
			Name:   m.tok.Name,
			Path:   m.path,
			Line:   m.tok.Line,
			Column: m.tok.Column,
		}
		m.seen = make(map[string]struct{})
		m.depth = 0
		if strings.Contains(m.tok.Text, "{") {
			m.depth = 1
		}
		m.state = stateFuncBody

	case stateFuncBody:
		tok, ok := m.lex.Next()
		if !ok {
			return ErrUnbalancedBraces
		}
		m.tok = tok

		switch tok.Kind {
		case lexer.KindFuncHead:
			if tok.Name == "" {
				return ErrMalformedHead
			}
			// No separate record for nested declarations; their body
			// identifiers land in the enclosing function's set.
			m.result.Notices = append(m.result.Notices, Notice{
				Name: tok.Name,
				Path: m.path,
				Line: tok.Line,
			})
			slog.Debug("nested function declaration",
				"name", tok.Name, "path", m.path, "line", tok.Line)
		case lexer.KindIdentifier:
			if _, dup := m.seen[tok.Text]; !dup {
				m.seen[tok.Text] = struct{}{}
				m.fn.Idents = append(m.fn.Idents, tok.Text)
			}
		case lexer.KindOpenBrace:
			m.depth++
		case lexer.KindCloseBrace:
			m.depth--
			if m.depth == 0 {
				m.state = stateCommit
			}
		}

	case stateCommit:
		m.result.Funcs = append(m.result.Funcs, m.fn)
		m.state = stateTopLevel
	}

	return nil
}
