/*
File    : go-trash/lexer/lexer.go
*/

// Package lexer performs lexical analysis of Trash source code. The
// tokenizer is built from the generic combinator runtime over a
// character view: between lexemes it skips whitespace, one-line ("//")
// and block ("/* */") comments, and it emits tokens tagged with the
// 0-based position of their first character. A final EOF token is
// appended with the position one past the last character.
package lexer

import (
	"strconv"

	cb "github.com/themartin/go-trash/combinator"
)

// Character classes of the language.
func isDigit(c byte) bool        { return c >= '0' && c <= '9' }
func isNonZeroDigit(c byte) bool { return c >= '1' && c <= '9' }
func isIdentStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
func isIdentChar(c byte) bool { return isIdentStart(c) || isDigit(c) }

// void discards a parser's output.
func void[O any](p cb.Parser[cb.Chars, O]) cb.Parser[cb.Chars, struct{}] {
	return cb.Map(p, func(O) struct{} { return struct{}{} })
}

// skipAll applies p zero or more times for effect only.
func skipAll(p cb.Parser[cb.Chars, struct{}]) cb.Parser[cb.Chars, struct{}] {
	return cb.Many(p,
		func() struct{} { return struct{}{} },
		func(a struct{}, _ struct{}) struct{} { return a })
}

// chars folds parsed bytes into a string.
func chars(p cb.Parser[cb.Chars, byte]) cb.Parser[cb.Chars, string] {
	return cb.Many(p,
		func() string { return "" },
		func(acc string, c byte) string { return acc + string(c) })
}

// chars1 is chars requiring at least one byte.
func chars1(p cb.Parser[cb.Chars, byte]) cb.Parser[cb.Chars, string] {
	return cb.Many1(p,
		func() string { return "" },
		func(acc string, c byte) string { return acc + string(c) })
}

// cat concatenates the outputs of two string parsers.
func cat(p, q cb.Parser[cb.Chars, string]) cb.Parser[cb.Chars, string] {
	return cb.Seq(p, q, func(a, b string) string { return a + b })
}

// junk consumes zero or more of: whitespace, one-line comment, block
// comment, in any mix. A one-line comment runs to (but not including)
// the next CR or LF; a block comment runs to the first "*/" and does
// not nest. An unterminated block comment is a committed failure.
var junk = skipAll(cb.Either(
	void(cb.OneOf(" \t\r\n")),
	void(cb.Then(cb.Literal("//"), chars(cb.NoneOf("\n\r")))),
	void(cb.Enclosed(cb.Literal("/*"), chars(cb.NegLiteral("*/")), cb.Literal("*/"))),
))

// stringToken lexes a double-quoted string literal. The only escapes
// are `\\` and `\"`; every other character is taken verbatim.
var stringToken = cb.Map(
	cb.Enclosed(
		cb.Char('"'),
		chars(cb.Either(
			cb.Map(cb.Literal(`\\`), func(string) byte { return '\\' }),
			cb.Map(cb.Literal(`\"`), func(string) byte { return '"' }),
			cb.NoneOf(`"`),
		)),
		cb.Char('"'),
	),
	func(s string) Token {
		return Token{Type: STRING_LIT, Literal: s, Str: s}
	},
)

// numberLiteral lexes the textual form of a decimal number: an optional
// leading minus, then either "0" or a run starting with a nonzero
// digit, an optional fraction, and an optional exponent. The minus
// branch is try-wrapped so that a minus not followed by a number falls
// through to the operator rules.
var numberLiteral = func() cb.Parser[cb.Chars, string] {
	digit := cb.Satisfy(isDigit, "digit")
	integer := cb.Either(
		cb.Map(cb.Char('0'), func(byte) string { return "0" }),
		cb.Seq(cb.Satisfy(isNonZeroDigit, "digit"), chars(digit),
			func(first byte, rest string) string { return string(first) + rest }),
	)
	fraction := cb.Seq(cb.Char('.'), chars1(digit),
		func(_ byte, digits string) string { return "." + digits })
	exponent := cb.Seq(
		cb.OneOf("eE"),
		cat(
			cb.Optional("", cb.Map(cb.OneOf("+-"), func(c byte) string { return string(c) })),
			chars1(digit),
		),
		func(e byte, rest string) string { return string(e) + rest },
	)
	unsigned := cat(integer, cat(cb.Optional("", fraction), cb.Optional("", exponent)))
	return cb.Either(
		cb.Try(cb.Seq(cb.Char('-'), unsigned,
			func(_ byte, u string) string { return "-" + u })),
		unsigned,
	)
}()

// numberToken decodes a number literal to an IEEE-754 double. A number
// must not run directly into an identifier character, so "9abc" is a
// lexical error at the 'a'.
var numberToken = cb.Map(
	cb.Skip(numberLiteral, cb.Reject(isIdentChar, "malformed number literal")),
	func(lit string) Token {
		v, _ := strconv.ParseFloat(lit, 64)
		return Token{Type: NUMBER_LIT, Literal: lit, Num: v}
	},
)

// identToken lexes an identifier or keyword: a non-digit identifier
// character followed by any run of identifier characters.
var identToken = cb.Map(
	cb.Seq(cb.Satisfy(isIdentStart, "identifier"), chars(cb.Satisfy(isIdentChar, "identifier")),
		func(first byte, rest string) string { return string(first) + rest }),
	func(name string) Token {
		return Token{Type: lookupIdent(name), Literal: name}
	},
)

// operatorTable lists every operator and punctuation lexeme, with
// multi-character operators strictly before their prefixes.
var operatorTable = []TokenType{
	EQ_OP, NE_OP, LE_OP, GE_OP,
	PLUS_ASSIGN, MINUS_ASSIGN, MUL_ASSIGN, DIV_ASSIGN, MOD_ASSIGN,
	AND_OP, OR_OP,
	ASSIGN_OP, LT_OP, GT_OP,
	PLUS_OP, MINUS_OP, MUL_OP, DIV_OP, MOD_OP, NOT_OP, XOR_OP,
	LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE, LEFT_BRACKET, RIGHT_BRACKET,
	COMMA_DELIM, SEMICOLON_DELIM, COLON_DELIM, DOT_OP,
}

// operatorToken matches the longest operator or punctuation lexeme.
var operatorToken = func() cb.Parser[cb.Chars, Token] {
	alts := make([]cb.Parser[cb.Chars, Token], 0, len(operatorTable))
	for _, typ := range operatorTable {
		t := typ
		alts = append(alts, cb.Map(cb.Literal(string(t)), func(lit string) Token {
			return Token{Type: t, Literal: lit}
		}))
	}
	return cb.Either(alts...)
}()

// token matches one lexeme of any kind. The number rule is tried ahead
// of the operators so that a minus glued to digits lexes as a negative
// literal; its sign test backtracks, so a free-standing minus still
// reaches the operator rule.
var token = cb.Either(stringToken, numberToken, identToken, operatorToken)

// tokenStream is the whole-input tokenizer: leading junk, then lexemes
// each followed by junk, then end of input.
var tokenStream = func() cb.Parser[cb.Chars, []Token] {
	positioned := cb.Map(cb.Positional(token), func(pt cb.Positioned[Token]) Token {
		t := pt.Value
		t.Pos = pt.Pos
		return t
	})
	seed, fold := cb.Collect[Token]()
	return cb.Then(junk, cb.Skip(cb.Many(cb.Skip(positioned, junk), seed, fold), cb.Eof[cb.Chars]()))
}()

// Tokenize converts source text into the full token sequence, with an
// EOF token appended at the position one past the last character. A
// lexical error is reported as a combinator Failure at the offending
// position.
func Tokenize(src string) ([]Token, *cb.Failure) {
	r := tokenStream(cb.NewChars(src))
	if r.Failed() {
		return nil, r.Err
	}
	return append(r.Output, Token{Type: EOF_TYPE, Literal: "EOF", Pos: r.Rest.Pos()}), nil
}
