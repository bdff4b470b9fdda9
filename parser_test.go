package stlc_test

import (
	"stlc"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type parseSyntaxTest struct {
	source   string
	expected string
}

var parseSyntaxTests = []parseSyntaxTest{
	{"true", "statement[term[bool(true)]]"},
	{"(false)", "statement[term[bool(false)]]"},
	{"x : Bool", "statement[declaration[variable_name(x) typename(Bool)]]"},
	{"f : (Bool -> Bool) -> Bool",
		"statement[declaration[variable_name(f) arrow_type[arrow_type[typename(Bool) typename(Bool)] typename(Bool)]]]"},
	{"g : Bool -> Bool -> Bool",
		"statement[declaration[variable_name(g) arrow_type[typename(Bool) arrow_type[typename(Bool) typename(Bool)]]]]"},
	{"fun x -> x", "statement[term[lambda[variable_name(x) term[variable(x)]]]]"},
	{"fun x: (Bool -> Bool) -> x",
		"statement[term[lambda[variable_name(x) arrow_type[typename(Bool) typename(Bool)] term[variable(x)]]]]"},
	{"if false then true else false",
		"statement[term[conditional[term[bool(false)] term[bool(true)] term[bool(false)]]]]"},
	{"f a", "statement[term[application[term[variable(f)] term[variable(a)]]]]"},
	{"f a b",
		"statement[term[application[term[application[term[variable(f)] term[variable(a)]]] term[variable(b)]]]]"},
	{"f (a b)",
		"statement[term[application[term[variable(f)] term[application[term[variable(a)] term[variable(b)]]]]]]"},
	{"\n true \n", "statement[term[bool(true)]]"},
}

func TestParseSyntax(t *testing.T) {
	for _, test := range parseSyntaxTests {
		t.Logf("running test '%s'", test.source)
		node, err := stlc.ParseSyntax("<test>", []byte(test.source))
		if assert.NoError(t, err) {
			assert.Equal(t, test.expected, node.String())
		}
	}
}

func TestParseSyntaxText(t *testing.T) {
	node, err := stlc.ParseSyntax("<test>", []byte("fun x -> if x then (f x) else false"))
	require.NoError(t, err)
	assert.Equal(t, "fun x -> if x then (f x) else false", node.Text)
	lambda := node.Children[0].Children[0]
	assert.Equal(t, stlc.RuleLambda, lambda.Rule)
	assert.Equal(t, "x", lambda.Children[0].Text)
	body := lambda.Children[1]
	assert.Equal(t, "if x then (f x) else false", body.Text)
	cond := body.Children[0]
	assert.Equal(t, "f x", cond.Children[1].Text)
	assert.Equal(t, uint(10), body.Pos.Column)
}

func TestParseFromTokens(t *testing.T) {
	p := stlc.NewParser([]stlc.Token{
		{Kind: stlc.FUN, Content: []byte("fun")},
		{Kind: stlc.IDENTIFIER, Content: []byte("y")},
		{Kind: stlc.ARROW, Content: []byte("->")},
		{Kind: stlc.TRUE, Content: []byte("true")},
	})
	node, err := p.ParseStatementAndEof()
	require.NoError(t, err)
	assert.Equal(t, "statement[term[lambda[variable_name(y) term[bool(true)]]]]", node.String())
	assert.Equal(t, "fun y -> true", node.Text)
}

type parseErrorTest struct {
	source string
	kind   stlc.ParseErrorKind
}

var parseErrorTests = []parseErrorTest{
	{"", stlc.UnexpectedEOF},
	{"fun x", stlc.UnexpectedEOF},
	{"fun x ->", stlc.UnexpectedEOF},
	{"if true then false", stlc.UnexpectedEOF},
	{"x :", stlc.UnexpectedEOF},
	{"(true", stlc.UnexpectedEOF},
	{"true )", stlc.UnexpectedToken},
	{")", stlc.UnexpectedToken},
	{"fun -> x", stlc.UnexpectedToken},
	{"if then", stlc.UnexpectedToken},
	{"x : ->", stlc.UnexpectedToken},
	{"fun x: Bool -> Bool -> x", stlc.UnexpectedToken},
	{"x => y", stlc.UnexpectedCharacter},
	{"true\x00garbage ) ( if", stlc.UnexpectedCharacter},
	{"fun x: Bool -", stlc.UnexpectedEOF},
}

func TestParseSyntaxErrors(t *testing.T) {
	for _, test := range parseErrorTests {
		t.Logf("running test '%s'", test.source)
		_, err := stlc.ParseSyntax("<test>", []byte(test.source))
		assert.True(t, stlc.IsParseError(err, test.kind), "expected %s, got %v", test.kind, err)
	}
}

func TestIsIncomplete(t *testing.T) {
	_, err := stlc.ParseSyntax("<test>", []byte("if true then"))
	assert.True(t, stlc.IsIncomplete(err))
	_, err = stlc.ParseSyntax("<test>", []byte("if true )"))
	assert.False(t, stlc.IsIncomplete(err))
}

func TestParseSyntaxAcrossLines(t *testing.T) {
	node, err := stlc.ParseSyntax("<test>", []byte("if true\nthen true else false"))
	require.NoError(t, err)
	assert.Equal(t, "if true\nthen true else false", node.Text)
	node, err = stlc.ParseSyntax("<test>", []byte("fun x: Bool\n  -> x"))
	require.NoError(t, err)
	assert.Equal(t, stlc.RuleLambda, node.Children[0].Children[0].Rule)
	assert.Equal(t, uint(2), node.Children[0].Children[0].Children[2].Pos.Line)
}

type needsMoreInputTest struct {
	source   string
	expected bool
}

var needsMoreInputTests = []needsMoreInputTest{
	{"if true", true},
	{"if true\nthen true", true},
	{"fun x ->", true},
	{"fun x: Bool -", true},
	{"(fun x -> x", true},
	{"if true\nthen true else false", false},
	{"true", false},
	{"if true )", false},
	{"true\x00", false},
	{"", false},
	// a blank line gives up on the statement
	{"if true\n", false},
	{"if true\n  ", false},
}

func TestNeedsMoreInput(t *testing.T) {
	for _, test := range needsMoreInputTests {
		t.Logf("running test '%s'", test.source)
		assert.Equal(t, test.expected, stlc.NeedsMoreInput([]byte(test.source)))
	}
}

func TestParseSyntaxFile(t *testing.T) {
	source := "# declarations\nx : Bool\n\nfun x -> x # identity\nif x then x else false"
	nodes, err := stlc.ParseSyntaxFile("a.stlc", []byte(source))
	require.NoError(t, err)
	require.Len(t, nodes, 3)
	assert.Equal(t, stlc.RuleDeclaration, nodes[0].Children[0].Rule)
	assert.Equal(t, uint(2), nodes[0].Pos.Line)
	assert.Equal(t, uint(4), nodes[1].Pos.Line)
	assert.Equal(t, "fun x -> x", nodes[1].Text)
}

func TestDumpSyntaxTree(t *testing.T) {
	node, err := stlc.ParseSyntax("<test>", []byte("x : Bool"))
	require.NoError(t, err)
	out, err := stlc.DumpSyntaxTree(node)
	require.NoError(t, err)
	assert.Contains(t, string(out), "rule: declaration")
	assert.Contains(t, string(out), "rule: typename")
	assert.Contains(t, string(out), "text: Bool")
}
