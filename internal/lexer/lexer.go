// # internal/lexer/lexer.go
package lexer

import "regexp"

const identPattern = `[_a-zA-Z][_\w]*`

// One composed pattern; alternatives are tried in order, so a function head
// wins over a bare identifier starting at the same offset. The head
// alternative covers `export`/`async` function declarations and
// `public`/`private` (optionally `async`, optionally `static`) method heads,
// up to the first `{`. The declaration name is captured here so downstream
// code never has to re-match the token text.
var tokenPattern = regexp.MustCompile(
	`(?P<ignore>//[^\n]*)` +
		`|(?P<head>(?:(?:export )?(?:async )?function|(?:public|private)(?: async)?(?: static)?) (?P<name>` + identPattern + `)[^);]*\)[^{;]*\{)` +
		`|(?P<ident>` + identPattern + `)` +
		`|(?P<open>\{)` +
		`|(?P<close>\})` +
		`|(?P<newline>\n)`,
)

var (
	groupIgnore  = tokenPattern.SubexpIndex("ignore")
	groupHead    = tokenPattern.SubexpIndex("head")
	groupName    = tokenPattern.SubexpIndex("name")
	groupIdent   = tokenPattern.SubexpIndex("ident")
	groupOpen    = tokenPattern.SubexpIndex("open")
	groupClose   = tokenPattern.SubexpIndex("close")
	groupNewline = tokenPattern.SubexpIndex("newline")
)

// Lexer walks one file's text and hands out classified tokens lazily.
// Anything between matches (whitespace, punctuation) is skipped.
type Lexer struct {
	src       string
	pos       int
	line      int
	lineStart int
}

func New(src string) *Lexer {
	return &Lexer{src: src, line: 1}
}

// Next returns the next token, or ok=false once the text is exhausted.
// Line and column are derived from a running line counter and line-start
// offset that reset on every newline token.
func (l *Lexer) Next() (Token, bool) {
	if l.pos > len(l.src) {
		return Token{}, false
	}

	m := tokenPattern.FindStringSubmatchIndex(l.src[l.pos:])
	if m == nil {
		l.pos = len(l.src) + 1
		return Token{}, false
	}

	base := l.pos
	start, end := base+m[0], base+m[1]
	l.pos = end

	tok := Token{
		Text:   l.src[start:end],
		Line:   l.line,
		Column: start - l.lineStart,
	}

	switch {
	case m[2*groupIgnore] >= 0:
		tok.Kind = KindIgnore
	case m[2*groupHead] >= 0:
		tok.Kind = KindFuncHead
		if ns := m[2*groupName]; ns >= 0 {
			tok.Name = l.src[base+ns : base+m[2*groupName+1]]
		}
	case m[2*groupIdent] >= 0:
		tok.Kind = KindIdentifier
	case m[2*groupOpen] >= 0:
		tok.Kind = KindOpenBrace
	case m[2*groupClose] >= 0:
		tok.Kind = KindCloseBrace
	case m[2*groupNewline] >= 0:
		tok.Kind = KindNewline
		l.line++
		l.lineStart = end
	}

	return tok, true
}
