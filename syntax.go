package stlc

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule tags a syntax node with the grammar rule that produced it.
type Rule int

const (
	RuleStatement Rule = iota
	RuleDeclaration
	RuleTerm
	RuleLambda
	RuleConditional
	RuleApplication
	RuleBool
	RuleVariable
	RuleVariableName
	RuleTypename
	RuleArrowType
)

func (r Rule) String() string {
	switch r {
	case RuleStatement:
		return "statement"
	case RuleDeclaration:
		return "declaration"
	case RuleTerm:
		return "term"
	case RuleLambda:
		return "lambda"
	case RuleConditional:
		return "conditional"
	case RuleApplication:
		return "application"
	case RuleBool:
		return "bool"
	case RuleVariable:
		return "variable"
	case RuleVariableName:
		return "variable_name"
	case RuleTypename:
		return "typename"
	case RuleArrowType:
		return "arrow_type"
	}
	panic("unreachable")
}

func (r Rule) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// SyntaxNode is one match of a grammar rule: the source text it covers and
// its sub-matches in source order.
type SyntaxNode struct {
	Rule     Rule          `yaml:"rule"`
	Pos      Pos           `yaml:"pos"`
	Text     string        `yaml:"text"`
	Children []*SyntaxNode `yaml:"children,omitempty"`
}

func (n *SyntaxNode) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *SyntaxNode) write(b *strings.Builder) {
	b.WriteString(n.Rule.String())
	if len(n.Children) == 0 {
		b.WriteString("(")
		b.WriteString(n.Text)
		b.WriteString(")")
		return
	}
	b.WriteString("[")
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(" ")
		}
		c.write(b)
	}
	b.WriteString("]")
}

func DumpSyntaxTree(n *SyntaxNode) ([]byte, error) {
	return yaml.Marshal(n)
}
