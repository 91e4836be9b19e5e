// # internal/lexer/types.go
package lexer

type TokenKind int

const (
	KindIgnore TokenKind = iota
	KindFuncHead
	KindIdentifier
	KindOpenBrace
	KindCloseBrace
	KindNewline
)

func (k TokenKind) String() string {
	switch k {
	case KindIgnore:
		return "ignore"
	case KindFuncHead:
		return "funchead"
	case KindIdentifier:
		return "identifier"
	case KindOpenBrace:
		return "openbrace"
	case KindCloseBrace:
		return "closebrace"
	case KindNewline:
		return "newline"
	default:
		return "unknown"
	}
}

type Token struct {
	Kind   TokenKind
	Text   string
	Name   string // declaration name, only set for KindFuncHead
	Line   int
	Column int
}
