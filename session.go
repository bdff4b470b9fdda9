package stlc

import (
	"errors"
	"fmt"
	"log/slog"
)

// Parse parses a single statement into a fresh Context.
func Parse(source string) (Term, *Context, error) {
	ctx := NewContext()
	t, err := ParseInto(ctx, "<input>", []byte(source))
	if err != nil {
		return nil, ctx, err
	}
	return t, ctx, nil
}

// ParseInto parses a single statement, registering its bindings in ctx.
func ParseInto(ctx *Context, filename string, source []byte) (Term, error) {
	node, err := ParseSyntax(filename, source)
	if err != nil {
		return nil, err
	}
	stmt, err := NewLowerer(ctx).LowerStatement(node)
	if err != nil {
		return nil, err
	}
	return stmt.Term, nil
}

func Check(t Term, ctx *Context) (Type, error) {
	return CheckType(t, ctx)
}

type Result struct {
	Statement Statement
	Type      Type
}

func (r Result) String(ctx *Context) string {
	if r.Statement.IsDeclaration() {
		return fmt.Sprintf("%s : %s", r.Statement.Declared, r.Type)
	}
	return fmt.Sprintf("%s : %s", r.Statement.Term.ContextString(ctx), r.Type)
}

// Session keeps one Context across many inputs, so declarations made by one
// input are visible to the next.
type Session struct {
	Context *Context
	log     *slog.Logger
}

func NewSession(cfg Config, log *slog.Logger) *Session {
	if log == nil {
		log = discardLogger()
	}
	return &Session{
		Context: cfg.NewContext(),
		log:     log,
	}
}

func (s *Session) Reset() {
	s.Context = &Context{Policy: s.Context.Policy}
}

// Eval parses, lowers and checks one statement.
func (s *Session) Eval(filename string, source []byte) (Result, error) {
	node, err := ParseSyntax(filename, source)
	if err != nil {
		return Result{}, err
	}
	return s.EvalSyntax(node)
}

func (s *Session) EvalSyntax(node *SyntaxNode) (Result, error) {
	stmt, err := NewLowerer(s.Context, WithLowererLogger(s.log)).LowerStatement(node)
	if err != nil {
		return Result{}, err
	}
	typ, err := NewChecker(s.Context, WithCheckerLogger(s.log)).Check(stmt.Term)
	if err != nil {
		return Result{Statement: stmt}, err
	}
	return Result{Statement: stmt, Type: typ}, nil
}

// EvalFile evaluates newline separated statements, stopping at the first
// failure.
func (s *Session) EvalFile(filename string, source []byte) ([]Result, error) {
	nodes, err := ParseSyntaxFile(filename, source)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(nodes))
	for _, node := range nodes {
		res, err := s.EvalSyntax(node)
		var te *TypeError
		if errors.As(err, &te) {
			return results, fmt.Errorf("%s: %w", node.Pos, err)
		}
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}
