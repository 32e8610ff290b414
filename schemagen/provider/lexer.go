package provider

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenKind classifies lexer tokens.
type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokTemplate
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokIdent:
		return "identifier"
	case tokString:
		return "string"
	case tokNumber:
		return "number"
	case tokTemplate:
		return "template"
	case tokPunct:
		return "punctuation"
	default:
		return "token"
	}
}

// token is a lexical token. For strings Text holds the unquoted value; for
// templates it holds the raw body between the backticks.
type token struct {
	kind tokenKind
	text string
	line int
	col  int

	// newline is true when a line break separates this token from the previous one.
	newline bool

	// comment holds the last block comment immediately preceding the token.
	comment string
}

func (t token) is(kind tokenKind, text string) bool {
	return t.kind == kind && t.text == text
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return "end of file"
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	case tokTemplate:
		return "template literal"
	default:
		return fmt.Sprintf("%q", t.text)
	}
}

// comment is a line comment captured for directive scanning.
type lineComment struct {
	text string
	line int
	col  int
}

// lexer splits TypeScript source into tokens. It understands enough of the
// language to skip over code it does not model: comments, string and
// template literals (including nested ${} expressions) and punctuation.
type lexer struct {
	src  string
	pos  int
	line int
	col  int

	tokens   []token
	comments []lineComment
}

// multiPunct lists punctuation sequences lexed as a single token.
var multiPunct = []string{"...", "=>", "?.", "??"}

func lex(src string) ([]token, []lineComment, error) {
	l := &lexer{src: src, line: 1, col: 1}
	if err := l.run(); err != nil {
		return nil, nil, err
	}
	return l.tokens, l.comments, nil
}

func (l *lexer) run() error {
	newline := false
	blockComment := ""
	for {
		// Skip whitespace and comments.
	skip:
		for l.pos < len(l.src) {
			c := l.src[l.pos]
			switch {
			case c == '\n':
				newline = true
				l.advance(1)
			case c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v':
				l.advance(1)
			case strings.HasPrefix(l.src[l.pos:], "//"):
				line, col := l.line, l.col
				end := strings.IndexByte(l.src[l.pos:], '\n')
				if end < 0 {
					end = len(l.src) - l.pos
				}
				l.comments = append(l.comments, lineComment{
					text: l.src[l.pos+2 : l.pos+end],
					line: line,
					col:  col,
				})
				l.advance(end)
			case strings.HasPrefix(l.src[l.pos:], "/*"):
				end := strings.Index(l.src[l.pos+2:], "*/")
				if end < 0 {
					return l.errorf("unterminated block comment")
				}
				body := l.src[l.pos+2 : l.pos+2+end]
				if strings.Contains(body, "\n") {
					newline = true
				}
				blockComment = strings.TrimSpace(body)
				l.advance(end + 4)
			case c >= utf8.RuneSelf:
				r, size := utf8.DecodeRuneInString(l.src[l.pos:])
				if !unicode.IsSpace(r) {
					break skip
				}
				l.advance(size)
			default:
				break skip
			}
		}
		tok := token{line: l.line, col: l.col, newline: newline, comment: blockComment}
		newline = false
		blockComment = ""

		if l.pos >= len(l.src) {
			tok.kind = tokEOF
			l.tokens = append(l.tokens, tok)
			return nil
		}

		c := l.src[l.pos]
		switch {
		case isIdentStart(l.src[l.pos:]):
			tok.kind = tokIdent
			tok.text = l.scanIdent()
		case c >= '0' && c <= '9', c == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]):
			tok.kind = tokNumber
			tok.text = l.scanNumber()
		case c == '"' || c == '\'':
			s, err := l.scanString(c)
			if err != nil {
				return err
			}
			tok.kind = tokString
			tok.text = s
		case c == '`':
			s, err := l.scanTemplate()
			if err != nil {
				return err
			}
			tok.kind = tokTemplate
			tok.text = s
		default:
			tok.kind = tokPunct
			tok.text = l.scanPunct()
		}
		l.tokens = append(l.tokens, tok)
	}
}

func (l *lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else if l.src[l.pos] < utf8.RuneSelf || utf8.RuneStart(l.src[l.pos]) {
			l.col++
		}
		l.pos++
	}
}

func (l *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{Line: l.line, Column: l.col, Msg: fmt.Sprintf(format, args...)}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *lexer) scanIdent() string {
	start := l.pos
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !isIdentPart(r) {
			break
		}
		l.advance(size)
	}
	return l.src[start:l.pos]
}

func (l *lexer) scanNumber() string {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case isDigit(c), c == '.', c == '_', c == 'x', c == 'X', c == 'n',
			c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
			l.advance(1)
		case (c == '+' || c == '-') && (l.src[l.pos-1] == 'e' || l.src[l.pos-1] == 'E'):
			l.advance(1)
		default:
			return l.src[start:l.pos]
		}
	}
	return l.src[start:l.pos]
}

func (l *lexer) scanString(quote byte) (string, error) {
	line, col := l.line, l.col
	l.advance(1)
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case quote:
			l.advance(1)
			return b.String(), nil
		case '\\':
			if l.pos+1 >= len(l.src) {
				l.advance(1)
				continue
			}
			next := l.src[l.pos+1]
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case '\n':
				// line continuation
			default:
				b.WriteByte(next)
			}
			l.advance(2)
		case '\n':
			return "", &SyntaxError{Line: line, Column: col, Msg: "unterminated string literal"}
		default:
			b.WriteByte(c)
			l.advance(1)
		}
	}
	return "", &SyntaxError{Line: line, Column: col, Msg: "unterminated string literal"}
}

// scanTemplate returns the raw body of a template literal. Substitutions are
// kept verbatim; nested templates and strings inside them are skipped.
func (l *lexer) scanTemplate() (string, error) {
	line, col := l.line, l.col
	l.advance(1)
	start := l.pos
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '\\':
			l.advance(2)
		case c == '`':
			body := l.src[start:l.pos]
			l.advance(1)
			return body, nil
		case c == '$' && l.pos+1 < len(l.src) && l.src[l.pos+1] == '{':
			l.advance(2)
			if err := l.skipSubstitution(); err != nil {
				return "", err
			}
		default:
			l.advance(1)
		}
	}
	return "", &SyntaxError{Line: line, Column: col, Msg: "unterminated template literal"}
}

func (l *lexer) skipSubstitution() error {
	depth := 1
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch c {
		case '{':
			depth++
			l.advance(1)
		case '}':
			depth--
			l.advance(1)
			if depth == 0 {
				return nil
			}
		case '"', '\'':
			if _, err := l.scanString(c); err != nil {
				return err
			}
		case '`':
			if _, err := l.scanTemplate(); err != nil {
				return err
			}
		default:
			l.advance(1)
		}
	}
	return l.errorf("unterminated template substitution")
}

func (l *lexer) scanPunct() string {
	rest := l.src[l.pos:]
	for _, p := range multiPunct {
		if strings.HasPrefix(rest, p) {
			l.advance(len(p))
			return p
		}
	}
	_, size := utf8.DecodeRuneInString(rest)
	l.advance(size)
	return rest[:size]
}

// SyntaxError reports source the provider could not tokenize or parse.
type SyntaxError struct {
	File   string
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}
