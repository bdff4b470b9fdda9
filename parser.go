package stlc

import (
	"strings"

	"github.com/samber/lo"
)

// ParseSyntax scans and parses a single statement. Newlines count as
// whitespace, so a statement may span several lines.
func ParseSyntax(filename string, source []byte) (*SyntaxNode, error) {
	tokens, err := ScanTokens(filename, source)
	if err != nil {
		return nil, err
	}
	tokens = lo.Filter(tokens, func(t Token, _ int) bool {
		return t.Kind != NEWLINE
	})
	psr := NewParser(tokens)
	psr.source = source
	return psr.ParseStatementAndEof()
}

// NeedsMoreInput reports whether source stops in the middle of a statement
// that another line could still complete. A blank last line ends the
// statement.
func NeedsMoreInput(source []byte) bool {
	lines := strings.Split(string(source), "\n")
	if strings.TrimSpace(lines[len(lines)-1]) == "" {
		return false
	}
	_, err := ParseSyntax("", source)
	return IsIncomplete(err)
}

// ParseSyntaxFile parses newline separated statements.
func ParseSyntaxFile(filename string, source []byte) ([]*SyntaxNode, error) {
	tokens, err := ScanTokens(filename, source)
	if err != nil {
		return nil, err
	}
	psr := NewParser(tokens)
	psr.source = source
	return psr.ParseFile()
}

type Parser struct {
	tokens []Token
	index  int
	source []byte
}

func NewParser(tokens []Token) Parser {
	if len(tokens) == 0 {
		tokens = append(tokens, Token{})
	}
	if tokens[len(tokens)-1].Kind != EOF {
		tokens = append(tokens, Token{Kind: EOF})
	}
	return Parser{
		tokens: tokens,
		index:  0,
	}
}

func (p *Parser) ParseFile() ([]*SyntaxNode, error) {
	stmts := make([]*SyntaxNode, 0)
	for p.next().Kind != EOF {
		if p.next().Kind == NEWLINE {
			p.advance()
			continue
		}
		stmt, err := p.ParseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
		if p.next().Kind == EOF {
			break
		}
		_, err = p.match(NEWLINE)
		if err != nil {
			return nil, err
		}
	}
	return stmts, nil
}

func (p *Parser) ParseStatement() (*SyntaxNode, error) {
	start := p.index
	var inner *SyntaxNode
	var err error
	if p.next().Kind == IDENTIFIER && p.peek(1).Kind == COLON {
		inner, err = p.parseDeclaration()
	} else {
		inner, err = p.ParseTerm()
	}
	if err != nil {
		return nil, err
	}
	return p.node(RuleStatement, start, inner), nil
}

func (p *Parser) ParseStatementAndEof() (*SyntaxNode, error) {
	for p.next().Kind == NEWLINE {
		p.advance()
	}
	stmt, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	for p.next().Kind == NEWLINE {
		p.advance()
	}
	_, err = p.match(EOF)
	if err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseDeclaration() (*SyntaxNode, error) {
	start := p.index
	name, err := p.parseVariableName()
	if err != nil {
		return nil, err
	}
	_, err = p.match(COLON)
	if err != nil {
		return nil, err
	}
	typ, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	return p.node(RuleDeclaration, start, name, typ), nil
}

func (p *Parser) ParseTerm() (*SyntaxNode, error) {
	start := p.index
	var inner *SyntaxNode
	var err error
	switch p.next().Kind {
	case FUN:
		inner, err = p.parseLambda()
	case IF:
		inner, err = p.parseConditional()
	default:
		return p.parseApplication()
	}
	if err != nil {
		return nil, err
	}
	return p.node(RuleTerm, start, inner), nil
}

func (p *Parser) parseLambda() (*SyntaxNode, error) {
	start := p.index
	_, err := p.match(FUN)
	if err != nil {
		return nil, err
	}
	name, err := p.parseVariableName()
	if err != nil {
		return nil, err
	}
	children := []*SyntaxNode{name}
	if p.next().Kind == COLON {
		p.advance()
		typ, err := p.parseBaseType()
		if err != nil {
			return nil, err
		}
		children = append(children, typ)
	}
	_, err = p.match(ARROW)
	if err != nil {
		return nil, err
	}
	body, err := p.ParseTerm()
	if err != nil {
		return nil, err
	}
	children = append(children, body)
	return p.node(RuleLambda, start, children...), nil
}

func (p *Parser) parseConditional() (*SyntaxNode, error) {
	start := p.index
	children := make([]*SyntaxNode, 0, 3)
	for _, kw := range []TokenKind{IF, THEN, ELSE} {
		_, err := p.match(kw)
		if err != nil {
			return nil, err
		}
		t, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		children = append(children, t)
	}
	return p.node(RuleConditional, start, children...), nil
}

// parseApplication parses one or more atoms. Juxtaposition associates to the
// left, so "f a b" is application[application[f a] b].
func (p *Parser) parseApplication() (*SyntaxNode, error) {
	start := p.index
	lhs, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for startsAtom(p.next().Kind) {
		rhs, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		app := p.node(RuleApplication, start, lhs, rhs)
		lhs = p.node(RuleTerm, start, app)
	}
	return lhs, nil
}

func startsAtom(k TokenKind) bool {
	switch k {
	case TRUE, FALSE, IDENTIFIER, LEFTPAREN:
		return true
	}
	return false
}

// parseAtom always returns a term node.
func (p *Parser) parseAtom() (*SyntaxNode, error) {
	start := p.index
	switch t := p.next(); t.Kind {
	case TRUE, FALSE:
		p.advance()
		return p.node(RuleTerm, start, p.node(RuleBool, start)), nil
	case IDENTIFIER:
		p.advance()
		return p.node(RuleTerm, start, p.node(RuleVariable, start)), nil
	case LEFTPAREN:
		p.advance()
		inner, err := p.ParseTerm()
		if err != nil {
			return nil, err
		}
		_, err = p.match(RIGHTPAREN)
		if err != nil {
			return nil, err
		}
		return inner, nil
	}
	return nil, p.unexpected("term")
}

func (p *Parser) parseVariableName() (*SyntaxNode, error) {
	start := p.index
	_, err := p.match(IDENTIFIER)
	if err != nil {
		return nil, err
	}
	return p.node(RuleVariableName, start), nil
}

// ParseType parses a type; arrows associate to the right.
func (p *Parser) ParseType() (*SyntaxNode, error) {
	start := p.index
	from, err := p.parseBaseType()
	if err != nil {
		return nil, err
	}
	if p.next().Kind != ARROW {
		return from, nil
	}
	p.advance()
	to, err := p.ParseType()
	if err != nil {
		return nil, err
	}
	return p.node(RuleArrowType, start, from, to), nil
}

func (p *Parser) parseBaseType() (*SyntaxNode, error) {
	start := p.index
	switch p.next().Kind {
	case IDENTIFIER:
		p.advance()
		return p.node(RuleTypename, start), nil
	case LEFTPAREN:
		p.advance()
		typ, err := p.ParseType()
		if err != nil {
			return nil, err
		}
		_, err = p.match(RIGHTPAREN)
		if err != nil {
			return nil, err
		}
		return typ, nil
	}
	return nil, p.unexpected("type")
}

// node builds a node covering the tokens from start up to the current one.
func (p *Parser) node(rule Rule, start int, children ...*SyntaxNode) *SyntaxNode {
	first := p.tokens[start]
	return &SyntaxNode{
		Rule:     rule,
		Pos:      first.Pos,
		Text:     p.text(start, p.index),
		Children: children,
	}
}

func (p *Parser) text(from, to int) string {
	if from >= to {
		return ""
	}
	first, last := p.tokens[from], p.tokens[to-1]
	if p.source != nil {
		return string(p.source[first.Offset : last.Offset+len(last.Content)])
	}
	parts := make([]string, 0, to-from)
	for _, t := range p.tokens[from:to] {
		parts = append(parts, string(t.Content))
	}
	return strings.Join(parts, " ")
}

func (p *Parser) next() Token {
	return p.peek(0)
}

func (p *Parser) peek(n int) Token {
	if p.index+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.index+n]
}

func (p *Parser) advance() Token {
	t := p.next()
	p.index++
	return t
}

func (p *Parser) match(k TokenKind) (Token, error) {
	t := p.next()
	if t.Kind != k {
		if t.Kind == EOF {
			return Token{Kind: k}, NewParseError(t.Pos, UnexpectedEOF, "expected %s, but got %s", k, t.Kind)
		}
		return Token{Kind: k}, NewParseError(t.Pos, UnexpectedToken, "expected %s, but got %s", k, t.Kind)
	}
	p.index++
	return t, nil
}

func (p *Parser) unexpected(what string) error {
	t := p.next()
	if t.Kind == EOF {
		return NewParseError(t.Pos, UnexpectedEOF, "expected %s, but got %s", what, t.Kind)
	}
	return NewParseError(t.Pos, UnexpectedToken, "expected %s, but got %s", what, t.Kind)
}
