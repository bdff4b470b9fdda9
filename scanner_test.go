package stlc_test

import (
	"stlc"
	"testing"

	"github.com/stretchr/testify/assert"
)

type scanTokensTest struct {
	source   []byte
	expected []stlc.TokenKind
}

var scanTokensTests = []scanTokensTest{
	{[]byte(""), []stlc.TokenKind{stlc.EOF}},
	{[]byte("\t"), []stlc.TokenKind{stlc.EOF}},
	{[]byte("\r"), []stlc.TokenKind{stlc.EOF}},
	{[]byte("\r\n"), []stlc.TokenKind{stlc.NEWLINE, stlc.EOF}},
	{[]byte("\n"), []stlc.TokenKind{stlc.NEWLINE, stlc.EOF}},
	{[]byte("abc"), []stlc.TokenKind{stlc.IDENTIFIER, stlc.EOF}},
	{[]byte("x'"), []stlc.TokenKind{stlc.IDENTIFIER, stlc.EOF}},
	{[]byte("true"), []stlc.TokenKind{stlc.TRUE, stlc.EOF}},
	{[]byte("false"), []stlc.TokenKind{stlc.FALSE, stlc.EOF}},
	{[]byte("truest"), []stlc.TokenKind{stlc.IDENTIFIER, stlc.EOF}},
	{[]byte("fun"), []stlc.TokenKind{stlc.FUN, stlc.EOF}},
	{[]byte("if"), []stlc.TokenKind{stlc.IF, stlc.EOF}},
	{[]byte("then"), []stlc.TokenKind{stlc.THEN, stlc.EOF}},
	{[]byte("else"), []stlc.TokenKind{stlc.ELSE, stlc.EOF}},
	{[]byte("()"), []stlc.TokenKind{stlc.LEFTPAREN, stlc.RIGHTPAREN, stlc.EOF}},
	{[]byte(":"), []stlc.TokenKind{stlc.COLON, stlc.EOF}},
	{[]byte("->"), []stlc.TokenKind{stlc.ARROW, stlc.EOF}},
	{[]byte("x # comment"), []stlc.TokenKind{stlc.IDENTIFIER, stlc.EOF}},
	{[]byte("x : Bool"), []stlc.TokenKind{stlc.IDENTIFIER, stlc.COLON, stlc.IDENTIFIER, stlc.EOF}},
	{[]byte("fun x -> x"), []stlc.TokenKind{stlc.FUN, stlc.IDENTIFIER, stlc.ARROW, stlc.IDENTIFIER, stlc.EOF}},
}

func TestScanTokens(t *testing.T) {
	for _, test := range scanTokensTests {
		t.Logf("running test '%s'", test.source)
		tokens, err := stlc.ScanTokens("<test>", test.source)
		assert.NoError(t, err)
		kinds := []stlc.TokenKind{}
		for _, tok := range tokens {
			kinds = append(kinds, tok.Kind)
		}
		assert.Equal(t, test.expected, kinds)
	}
}

type scannerScanTest struct {
	source  []byte
	kind    stlc.TokenKind
	content []byte
}

var scannerScanTests = []scannerScanTest{
	{[]byte("abc def"), stlc.IDENTIFIER, []byte("abc")},
	{[]byte("  Bool"), stlc.IDENTIFIER, []byte("Bool")},
	{[]byte("->x"), stlc.ARROW, []byte("->")},
	{[]byte("false)"), stlc.FALSE, []byte("false")},
}

func TestScanner_Scan(t *testing.T) {
	for _, test := range scannerScanTests {
		t.Logf("running test '%s'", test.source)
		sc := stlc.NewScanner("<test>", test.source)
		tok, err := sc.Scan()
		assert.NoError(t, err)
		assert.Equal(t, test.kind, tok.Kind)
		assert.Equal(t, test.content, tok.Content)
	}
}

func TestScanTokensPositions(t *testing.T) {
	tokens, err := stlc.ScanTokens("a.stlc", []byte("x : Bool\n  true"))
	assert.NoError(t, err)
	if assert.Len(t, tokens, 6) {
		assert.Equal(t, stlc.Pos{Filename: "a.stlc", Line: 1, Column: 5}, tokens[2].Pos)
		assert.Equal(t, stlc.Pos{Filename: "a.stlc", Line: 2, Column: 3}, tokens[4].Pos)
	}
}

var badSources = []string{"x - y", "@", "fun x => x", "true\x00", "true\x00garbage ) ( if", "\x00"}

func TestScanTokensUnexpectedCharacter(t *testing.T) {
	for _, source := range badSources {
		t.Logf("running test '%s'", source)
		_, err := stlc.ScanTokens("<test>", []byte(source))
		assert.True(t, stlc.IsParseError(err, stlc.UnexpectedCharacter), "got %v", err)
	}
}

func TestScanTokensNulIsNotEOF(t *testing.T) {
	tokens, err := stlc.ScanTokens("<test>", []byte("x\x00y"))
	assert.True(t, stlc.IsParseError(err, stlc.UnexpectedCharacter), "got %v", err)
	if assert.NotEmpty(t, tokens) {
		assert.Equal(t, stlc.IDENTIFIER, tokens[0].Kind)
	}
	// a comment runs to the end of the line, NUL bytes included
	tokens, err = stlc.ScanTokens("<test>", []byte("x # a\x00b\ny"))
	assert.NoError(t, err)
	assert.Len(t, tokens, 4)
}

func TestScanTokensTrailingDash(t *testing.T) {
	for _, source := range []string{"-", "fun x: Bool -"} {
		t.Logf("running test '%s'", source)
		_, err := stlc.ScanTokens("<test>", []byte(source))
		assert.True(t, stlc.IsParseError(err, stlc.UnexpectedEOF), "got %v", err)
	}
}
