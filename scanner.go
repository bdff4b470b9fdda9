package stlc

import (
	"fmt"

	"github.com/cznic/mathutil"
)

type TokenKind int

const (
	EOF TokenKind = iota
	NEWLINE
	IDENTIFIER
	LEFTPAREN
	RIGHTPAREN
	COLON
	ARROW

	// keywords
	TRUE
	FALSE
	FUN
	IF
	THEN
	ELSE
)

func (t TokenKind) String() string {
	switch t {
	case EOF:
		return "EOF"
	case NEWLINE:
		return "NEWLINE"
	case IDENTIFIER:
		return "IDENTIFIER"
	case LEFTPAREN:
		return "("
	case RIGHTPAREN:
		return ")"
	case COLON:
		return ":"
	case ARROW:
		return "->"
	case TRUE:
		return "true"
	case FALSE:
		return "false"
	case FUN:
		return "fun"
	case IF:
		return "if"
	case THEN:
		return "then"
	case ELSE:
		return "else"
	}
	panic("unreachable")
}

var keywords = map[string]TokenKind{
	"true":  TRUE,
	"false": FALSE,
	"fun":   FUN,
	"if":    IF,
	"then":  THEN,
	"else":  ELSE,
}

type Pos struct {
	Filename string `yaml:"file,omitempty"`
	Line     uint   `yaml:"line"`
	Column   uint   `yaml:"column"`
}

func (p Pos) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

type Token struct {
	Pos
	Kind    TokenKind
	Content []byte
	Offset  int
}

func ScanTokens(filename string, source []byte) ([]Token, error) {
	sc := NewScanner(filename, source)
	tokens := []Token{}
	for {
		tok, err := sc.Scan()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			break
		}
	}
	return tokens, nil
}

type Scanner struct {
	pos       Pos
	source    []byte
	start     int
	end       int
	lineStart int
}

func NewScanner(filename string, source []byte) Scanner {
	const DEFAULT_LINE uint = 1
	return Scanner{
		pos: Pos{
			Filename: filename,
			Line:     DEFAULT_LINE,
		},
		source: source,
	}
}

func (s *Scanner) Scan() (Token, error) {
	s.skipWhitespace()
	s.start = s.end
	if s.atEnd() {
		return s.token(EOF), nil
	}
	var t Token
	switch c := s.next(); c {
	case '\n':
		s.advance()
		t = s.token(NEWLINE)
		s.pos.Line++
		s.lineStart = s.end
	case '(':
		s.advance()
		t = s.token(LEFTPAREN)
	case ')':
		s.advance()
		t = s.token(RIGHTPAREN)
	case ':':
		s.advance()
		t = s.token(COLON)
	case '-':
		s.advance()
		if s.atEnd() {
			return s.token(EOF), NewParseError(s.position(), UnexpectedEOF, "expected ->, but got EOF")
		}
		if s.next() != '>' {
			return s.token(EOF), NewParseError(s.position(), UnexpectedCharacter, "unexpected character: %q", c)
		}
		s.advance()
		t = s.token(ARROW)
	default:
		if isIdStart(c) {
			return s.id(), nil
		}
		return s.token(EOF), NewParseError(s.position(), UnexpectedCharacter, "unexpected character: %q", c)
	}
	return t, nil
}

func isIdStart(c byte) bool {
	return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') || c == '_'
}

func isId(c byte) bool {
	return isIdStart(c) || ('0' <= c && c <= '9') || c == '\''
}

func (s *Scanner) id() Token {
	for isId(s.next()) {
		s.advance()
	}
	t := s.token(IDENTIFIER)
	if kind, ok := keywords[string(t.Content)]; ok {
		t.Kind = kind
	}
	return t
}

func (s *Scanner) skipWhitespace() {
	for {
		switch s.next() {
		case ' ', '\t', '\r':
			s.advance()
		case '#':
			for !s.atEnd() && s.next() != '\n' {
				s.advance()
			}
		default:
			return
		}
	}
}

func (s *Scanner) atEnd() bool {
	return s.end >= len(s.source)
}

// next returns 0 at the end of input; use atEnd to tell it from a NUL byte.
func (s *Scanner) next() byte {
	if s.end >= len(s.source) {
		return 0
	}
	return s.source[s.end]
}

func (s *Scanner) advance() byte {
	c := s.next()
	s.end++
	return c
}

func (s *Scanner) position() Pos {
	return Pos{
		Filename: s.pos.Filename,
		Line:     s.pos.Line,
		Column:   uint(s.start-s.lineStart) + 1,
	}
}

func (s *Scanner) token(t TokenKind) Token {
	end := mathutil.Clamp(s.end, 0, len(s.source))
	start := mathutil.Min(s.start, end)
	tok := Token{
		Pos:     s.position(),
		Kind:    t,
		Content: s.source[start:end],
		Offset:  start,
	}
	s.start = end
	return tok
}
