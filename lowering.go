package stlc

import (
	"log/slog"

	"github.com/hashicorp/go-set/v3"
)

var (
	termRules = set.From([]Rule{
		RuleTerm, RuleBool, RuleVariable, RuleConditional,
		RuleApplication, RuleLambda, RuleDeclaration,
	})
	typeRules = set.From([]Rule{RuleTypename, RuleArrowType})
)

// Statement is a lowered top-level statement. Declared is the declared name
// when the statement is a declaration.
type Statement struct {
	Node     *SyntaxNode
	Term     Term
	Declared string
}

func (s Statement) IsDeclaration() bool {
	return s.Declared != ""
}

type LowererOption func(*Lowerer)

func WithLowererLogger(l *slog.Logger) LowererOption {
	return func(lw *Lowerer) {
		lw.log = l
	}
}

// Lowerer turns rule-tagged syntax trees into terms. Declarations and lambda
// parameters are registered in the Context as they are met.
type Lowerer struct {
	ctx *Context
	log *slog.Logger
}

func NewLowerer(ctx *Context, opts ...LowererOption) *Lowerer {
	l := &Lowerer{
		ctx: ctx,
		log: discardLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Lowerer) LowerStatement(n *SyntaxNode) (Statement, error) {
	if n.Rule != RuleStatement {
		return l.lowerBareStatement(n)
	}
	if err := expectArity(n, 1); err != nil {
		return Statement{}, err
	}
	return l.lowerBareStatement(n.Children[0])
}

func (l *Lowerer) lowerBareStatement(n *SyntaxNode) (Statement, error) {
	if n.Rule == RuleDeclaration {
		name, t, err := l.lowerDeclaration(n)
		if err != nil {
			return Statement{}, err
		}
		return Statement{Node: n, Term: t, Declared: name}, nil
	}
	t, err := l.LowerTerm(n)
	if err != nil {
		return Statement{}, err
	}
	return Statement{Node: n, Term: t}, nil
}

func (l *Lowerer) LowerTerm(n *SyntaxNode) (Term, error) {
	l.log.Debug("lower", "rule", n.Rule.String(), "text", n.Text, "pos", n.Pos.String())
	if err := expectRule(n, termRules, "term"); err != nil {
		return nil, err
	}
	switch n.Rule {
	case RuleTerm:
		if err := expectArity(n, 1); err != nil {
			return nil, err
		}
		return l.LowerTerm(n.Children[0])
	case RuleBool:
		return lowerBool(n)
	case RuleVariable:
		if err := expectArity(n, 0); err != nil {
			return nil, err
		}
		idx, ok := l.ctx.IndexOf(n.Text)
		if !ok {
			return nil, NewParseError(n.Pos, UnboundName, "unbound name: %s", n.Text)
		}
		return Variable{Index: idx}, nil
	case RuleConditional:
		return l.lowerConditional(n)
	case RuleApplication:
		return l.lowerApplication(n)
	case RuleLambda:
		return l.lowerLambda(n)
	case RuleDeclaration:
		_, t, err := l.lowerDeclaration(n)
		return t, err
	}
	panic("unreachable")
}

func lowerBool(n *SyntaxNode) (Term, error) {
	if err := expectArity(n, 0); err != nil {
		return nil, err
	}
	switch n.Text {
	case "true":
		return True{}, nil
	case "false":
		return False{}, nil
	}
	return nil, NewParseError(n.Pos, UnexpectedRule, "invalid bool literal: %q", n.Text)
}

func (l *Lowerer) lowerConditional(n *SyntaxNode) (Term, error) {
	if err := expectArity(n, 3); err != nil {
		return nil, err
	}
	parts := make([]Term, 0, 3)
	for _, c := range n.Children {
		t, err := l.LowerTerm(c)
		if err != nil {
			return nil, err
		}
		parts = append(parts, t)
	}
	return Conditional{Cond: parts[0], Then: parts[1], Else: parts[2]}, nil
}

func (l *Lowerer) lowerApplication(n *SyntaxNode) (Term, error) {
	if err := expectArity(n, 2); err != nil {
		return nil, err
	}
	fn, err := l.LowerTerm(n.Children[0])
	if err != nil {
		return nil, err
	}
	arg, err := l.LowerTerm(n.Children[1])
	if err != nil {
		return nil, err
	}
	return Application{Func: fn, Arg: arg}, nil
}

// lowerLambda expects [variable_name, type?, term].
func (l *Lowerer) lowerLambda(n *SyntaxNode) (Term, error) {
	if len(n.Children) != 2 && len(n.Children) != 3 {
		return nil, NewParseError(n.Pos, ArityMismatch, "%s expects 2 or 3 children, got %d", n.Rule, len(n.Children))
	}
	name, err := variableName(n.Children[0])
	if err != nil {
		return nil, err
	}
	var paramType Type
	if len(n.Children) == 3 {
		paramType, err = l.LowerType(n.Children[1])
		if err != nil {
			return nil, err
		}
	}
	bodyNode := n.Children[len(n.Children)-1]
	if l.ctx.Policy == FlatScoping {
		body, err := l.LowerTerm(bodyNode)
		if err != nil {
			return nil, err
		}
		return Abstraction{Param: name, ParamType: paramType, Binder: NoBinder, Body: body}, nil
	}
	scope := l.ctx.EnterScope()
	defer l.ctx.LeaveScope(scope)
	binder := l.ctx.AddBinding(name, NameBinding{})
	body, err := l.LowerTerm(bodyNode)
	if err != nil {
		return nil, err
	}
	return Abstraction{Param: name, ParamType: paramType, Binder: binder, Body: body}, nil
}

// lowerDeclaration expects [variable_name, type] and registers the binding.
func (l *Lowerer) lowerDeclaration(n *SyntaxNode) (string, Term, error) {
	if err := expectArity(n, 2); err != nil {
		return "", nil, err
	}
	name, err := variableName(n.Children[0])
	if err != nil {
		return "", nil, err
	}
	typ, err := l.LowerType(n.Children[1])
	if err != nil {
		return "", nil, err
	}
	idx := l.ctx.AddBinding(name, VariableBinding{Type: typ})
	l.log.Debug("declare", "name", name, "type", typ.String(), "index", idx)
	return name, Variable{Index: idx}, nil
}

func (l *Lowerer) LowerType(n *SyntaxNode) (Type, error) {
	if err := expectRule(n, typeRules, "type"); err != nil {
		return nil, err
	}
	switch n.Rule {
	case RuleTypename:
		if err := expectArity(n, 0); err != nil {
			return nil, err
		}
		if n.Text != Bool.String() {
			return nil, NewParseError(n.Pos, UnsupportedType, "unsupported type: %s", n.Text)
		}
		return Bool, nil
	case RuleArrowType:
		if err := expectArity(n, 2); err != nil {
			return nil, err
		}
		from, err := l.LowerType(n.Children[0])
		if err != nil {
			return nil, err
		}
		to, err := l.LowerType(n.Children[1])
		if err != nil {
			return nil, err
		}
		return Function(from, to), nil
	}
	panic("unreachable")
}

func variableName(n *SyntaxNode) (string, error) {
	if n.Rule != RuleVariableName {
		return "", NewParseError(n.Pos, UnexpectedRule, "expected %s, but got %s", RuleVariableName, n.Rule)
	}
	if n.Text == "" {
		return "", NewParseError(n.Pos, UnexpectedRule, "empty %s", RuleVariableName)
	}
	return n.Text, nil
}

func expectArity(n *SyntaxNode, want int) error {
	if len(n.Children) != want {
		return NewParseError(n.Pos, ArityMismatch, "%s expects %d children, got %d", n.Rule, want, len(n.Children))
	}
	return nil
}

func expectRule(n *SyntaxNode, allowed *set.Set[Rule], what string) error {
	if !allowed.Contains(n.Rule) {
		return NewParseError(n.Pos, UnexpectedRule, "expected %s, but got %s", what, n.Rule)
	}
	return nil
}
