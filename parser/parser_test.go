/*
File    : go-trash/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

// mustParse parses source that the test requires to be valid.
func mustParse(t *testing.T, src string) *RootNode {
	t.Helper()
	root, err := Parse(src)
	if err != nil {
		t.Fatalf("parse of %q failed: %v", src, err)
	}
	return root
}

// canonical parses source and returns the canonical rendering.
func canonical(t *testing.T, src string) string {
	t.Helper()
	return mustParse(t, src).Literal()
}

// TestParse_Precedence verifies the operator precedence ladder through
// the fully parenthesized canonical form
func TestParse_Precedence(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3));"},
		{"1 * 2 + 3;", "((1 * 2) + 3);"},
		{"1 + 2 < 3 + 4;", "((1 + 2) < (3 + 4));"},
		{"a < b == c < d;", "((a < b) == (c < d));"},
		{"a == b ^ c == d;", "((a == b) ^ (c == d));"},
		{"a ^ b && c ^ d;", "((a ^ b) && (c ^ d));"},
		{"a && b || c && d;", "((a && b) || (c && d));"},
		{"1 + 2 % 3;", "(1 + (2 % 3));"},
		{"(1 + 2) * 3;", "((1 + 2) * 3);"},
		{"!a && b;", "(!a && b);"},
		{"-x * y;", "(-x * y);"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, canonical(t, tt.input), "input: %q", tt.input)
	}
}

// TestParse_LeftAssociativity: a OP b OP c parses as (a OP b) OP c for
// every left-associative operator
func TestParse_LeftAssociativity(t *testing.T) {
	ops := []string{"||", "&&", "^", "==", "!=", "<", "<=", ">", ">=", "+", "-", "*", "/", "%"}
	for _, op := range ops {
		src := "a " + op + " b " + op + " c;"
		expected := "((a " + op + " b) " + op + " c);"
		assert.Equal(t, expected, canonical(t, src), "operator: %s", op)
	}
}

// TestParse_UnaryIsRightAssociative verifies chained unary operators
func TestParse_UnaryIsRightAssociative(t *testing.T) {
	assert.Equal(t, "!!a;", canonical(t, "!!a;"))
	assert.Equal(t, "-+a;", canonical(t, "- + a;"))
}

// TestParse_Postfix verifies call, dot and bracket chains
func TestParse_Postfix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"f();", "f();"},
		{"f(1, 2);", "f(1, 2);"},
		{"o.x;", "o.x;"},
		{`o["y"];`, `o["y"];`},
		{"o.a.b[0](1)(2);", "o.a.b[0](1)(2);"},
		{"f()(g());", "f()(g());"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, canonical(t, tt.input), "input: %q", tt.input)
	}
}

// TestParse_ObjectLiterals verifies object construction syntax
func TestParse_ObjectLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var o = {};", "var o = {};"},
		{"var o = { x: 1 };", "var o = {x: 1};"},
		{`var o = { x: 1, ["y"]: 2 };`, `var o = {x: 1, ["y"]: 2};`},
		{"var o = { a: { b: 2 } };", "var o = {a: {b: 2}};"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, canonical(t, tt.input), "input: %q", tt.input)
	}

	root := mustParse(t, `var o = { x: 1, ["y"]: 2 };`)
	decl := root.Statements[0].(*DeclarativeStatementNode)
	obj := decl.Expr.(*ObjectExpressionNode)
	if assert.Len(t, obj.Pairs, 2) {
		assert.NotNil(t, obj.Pairs[0].KeyIdent)
		assert.Equal(t, "x", obj.Pairs[0].KeyIdent.Literal)
		assert.Nil(t, obj.Pairs[1].KeyIdent)
		assert.NotNil(t, obj.Pairs[1].KeyExpr)
	}
}

// TestParse_FunctionLiterals verifies function literal syntax
func TestParse_FunctionLiterals(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var f = function() {};", "var f = function() {};"},
		{"var f = function(a) { return a; };", "var f = function(a) { return a; };"},
		{
			"var f = function(a, b) { return a + b; };",
			"var f = function(a, b) { return (a + b); };",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, canonical(t, tt.input), "input: %q", tt.input)
	}
}

// TestParse_Statements verifies the statement forms
func TestParse_Statements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{";", ";"},
		{"x;", "x;"},
		{"x = 1;", "x = 1;"},
		{"x += 1;", "x += 1;"},
		{"o.x -= 2;", "o.x -= 2;"},
		{`o["k"] = 3;`, `o["k"] = 3;`},
		{"var x = 1;", "var x = 1;"},
		{"{ var x = 1; x = 2; }", "{ var x = 1; x = 2; }"},
		{"if (a) b = 1;", "if (a) b = 1;"},
		{"if (a) { b = 1; } else { b = 2; }", "if (a) { b = 1; } else { b = 2; }"},
		{"if (a) b = 1; else if (c) b = 2;", "if (a) b = 1; else if (c) b = 2;"},
		{"while (a) { a -= 1; }", "while (a) { a -= 1; }"},
		{"for (var i = 0; i < 4; i += 1) { print(i); }", "for (var i = 0; (i < 4); i += 1) { print(i); }"},
		{"for (i = 0; i < 4; i += 1) ;", "for (i = 0; (i < 4); i += 1) ;"},
		{"for (;;) break;", "for (; ; ) break;"},
		{"while (1) { break; continue; }", "while (1) { break; continue; }"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, canonical(t, tt.input), "input: %q", tt.input)
	}
}

// TestParse_BraceAtStatementPositionIsBlock: `{}` as a statement is an
// empty block, not an object literal
func TestParse_BraceAtStatementPositionIsBlock(t *testing.T) {
	root := mustParse(t, "{}")
	if assert.Len(t, root.Statements, 1) {
		_, ok := root.Statements[0].(*BlockStatementNode)
		assert.True(t, ok)
	}

	// In expression position the same braces are an object.
	root = mustParse(t, "var o = {};")
	decl := root.Statements[0].(*DeclarativeStatementNode)
	_, ok := decl.Expr.(*ObjectExpressionNode)
	assert.True(t, ok)
}

// TestParse_Deterministic: parsing the same input twice produces a
// structurally equal AST
func TestParse_Deterministic(t *testing.T) {
	src := `
		var mk = function() {
			var i = 0;
			return function() { i += 1; return i; };
		};
		var c = mk();
		for (var n = 0; n < 3; n += 1) { print(c()); }
	`
	first := mustParse(t, src)
	second := mustParse(t, src)
	assert.Empty(t, cmp.Diff(first, second))
}

// TestParse_RoundTrip: printing an AST back to canonical source and
// re-parsing yields the same canonical form
func TestParse_RoundTrip(t *testing.T) {
	sources := []string{
		"var a = 1; a = a + 2; print(a);",
		`var o = { x: 1, ["y"]: 2 }; o.x += 10; print(o["y"]);`,
		"var mk = function() { var i = 0; return function() { i += 1; return i; }; };",
		"for (var i = 0; i < 4; i += 1) { if (i == 2) continue; if (i == 3) break; print(i); }",
		`print("a" + "b"); print(1 + 2); print(true ^ false); print(nil == nil);`,
		"if (a && !b) { c = -d * 2; } else { c = c % 3; }",
		`var s = "he said \"hi\" \\ bye";`,
		"while (i < 10) i += 1;",
	}

	for _, src := range sources {
		gen1 := canonical(t, src)
		gen2 := canonical(t, gen1)
		assert.Equal(t, gen1, gen2, "source: %q", src)
	}
}

// TestParse_Errors verifies error positions, expectations and contexts
func TestParse_Errors(t *testing.T) {
	// The initializer is missing: the error points at the semicolon and
	// asks for an expression.
	_, err := Parse("var x = ;")
	if assert.NotNil(t, err) {
		assert.Equal(t, 0, err.Line)
		assert.Equal(t, 8, err.Column)
		assert.Contains(t, err.Expected, "expression")
	}

	// return requires an expression.
	_, err = Parse("var f = function() { return; };")
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Expected, "expression")
	}

	// Missing statement terminator.
	_, err = Parse("var x = 1")
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Expected, "';'")
	}

	// Unclosed block.
	_, err = Parse("{ var x = 1;")
	assert.NotNil(t, err)

	// A lexical error surfaces as a parse error at the offending
	// position.
	_, err = Parse("var 9abc = 1;")
	if assert.NotNil(t, err) {
		assert.Equal(t, 0, err.Line)
		assert.Equal(t, 5, err.Column)
	}

	// Trailing garbage after a statement.
	_, err = Parse("x = 1; )")
	if assert.NotNil(t, err) {
		assert.Contains(t, err.Expected, "end of input")
	}

	// No partial AST on failure.
	root, err := Parse("var x = ;")
	assert.NotNil(t, err)
	assert.Nil(t, root)
}

// TestParse_ErrorRendering verifies the canonical message format
func TestParse_ErrorRendering(t *testing.T) {
	_, err := Parse("var x = ;")
	if assert.NotNil(t, err) {
		assert.Equal(t,
			"error on line 0:8: unexpected token, expected expression while parsing statement",
			err.Error())
	}
}
