/*
File    : go-trash/lexer/token.go
*/
package lexer

import (
	"fmt"

	"github.com/themartin/go-trash/combinator"
)

// TokenType represents the type of a lexical token in the Trash
// language. It is defined as a string to allow for easy comparison and
// debugging; each constant corresponds to a specific syntactic element.
type TokenType string

// TokenType constants, organized into logical groups.
const (
	// Special Types
	// EOF_TYPE marks the end of the input stream
	EOF_TYPE TokenType = "EOF"

	// Arithmetic Operators
	PLUS_OP  TokenType = "+" // Addition operator
	MINUS_OP TokenType = "-" // Subtraction operator
	MUL_OP   TokenType = "*" // Multiplication operator
	DIV_OP   TokenType = "/" // Division operator
	MOD_OP   TokenType = "%" // Modulo operator

	// Compound assignment operators
	PLUS_ASSIGN  TokenType = "+=" // Add and assign (x += y)
	MINUS_ASSIGN TokenType = "-=" // Subtract and assign (x -= y)
	MUL_ASSIGN   TokenType = "*=" // Multiply and assign (x *= y)
	DIV_ASSIGN   TokenType = "/=" // Divide and assign (x /= y)
	MOD_ASSIGN   TokenType = "%=" // Modulo and assign (x %= y)

	// Logical/Comparison Operators
	GT_OP     TokenType = ">"  // Greater than
	LT_OP     TokenType = "<"  // Less than
	GE_OP     TokenType = ">=" // Greater than or equal to
	LE_OP     TokenType = "<=" // Less than or equal to
	EQ_OP     TokenType = "==" // Equality comparison
	NE_OP     TokenType = "!=" // Not equal comparison
	ASSIGN_OP TokenType = "="  // Assignment operator
	NOT_OP    TokenType = "!"  // Logical NOT operator

	// Boolean Operators
	AND_OP TokenType = "&&" // Logical AND
	OR_OP  TokenType = "||" // Logical OR
	XOR_OP TokenType = "^"  // Logical XOR

	// Keywords
	IF_KEY       TokenType = "if"       // Conditional if keyword
	ELSE_KEY     TokenType = "else"     // Conditional else keyword
	WHILE_KEY    TokenType = "while"    // While loop keyword
	FOR_KEY      TokenType = "for"      // For loop keyword
	BREAK_KEY    TokenType = "break"    // Loop break keyword
	CONTINUE_KEY TokenType = "continue" // Loop continue keyword
	RETURN_KEY   TokenType = "return"   // Return statement keyword
	VAR_KEY      TokenType = "var"      // Variable declaration keyword
	FUNCTION_KEY TokenType = "function" // Function literal keyword
	NIL_KEY      TokenType = "nil"      // Nil literal keyword
	TRUE_KEY     TokenType = "true"     // Boolean true literal
	FALSE_KEY    TokenType = "false"    // Boolean false literal

	// Identifiers and Literals
	IDENTIFIER_ID TokenType = "Identifier"    // User-defined identifier
	NUMBER_LIT    TokenType = "NumberLiteral" // Numeric literal (IEEE-754 double)
	STRING_LIT    TokenType = "StringLiteral" // String literal

	// Structural Tokens
	LEFT_PAREN    TokenType = "(" // Left parenthesis - calls, grouping
	RIGHT_PAREN   TokenType = ")" // Right parenthesis
	LEFT_BRACE    TokenType = "{" // Left brace - blocks, object literals
	RIGHT_BRACE   TokenType = "}" // Right brace
	LEFT_BRACKET  TokenType = "[" // Left bracket - indexed access
	RIGHT_BRACKET TokenType = "]" // Right bracket

	// Delimiters
	COMMA_DELIM     TokenType = "," // Comma - separates parameters, pairs
	SEMICOLON_DELIM TokenType = ";" // Semicolon - statement terminator
	COLON_DELIM     TokenType = ":" // Colon - key/value separator
	DOT_OP          TokenType = "." // Dot - member access
)

// KEYWORDS_MAP is a lookup table that maps keyword strings to their
// token types. When the lexer finishes an identifier-like lexeme, it
// checks this map to decide whether the lexeme is a reserved word or a
// user-defined identifier.
var KEYWORDS_MAP = map[string]TokenType{
	"if":       IF_KEY,       // Conditional if
	"else":     ELSE_KEY,     // Conditional else
	"while":    WHILE_KEY,    // While loop
	"for":      FOR_KEY,      // For loop
	"break":    BREAK_KEY,    // Break from loop
	"continue": CONTINUE_KEY, // Continue to next iteration
	"return":   RETURN_KEY,   // Return from function
	"var":      VAR_KEY,      // Variable declaration
	"function": FUNCTION_KEY, // Function literal
	"nil":      NIL_KEY,      // Nil value
	"true":     TRUE_KEY,     // Boolean true
	"false":    FALSE_KEY,    // Boolean false
}

// Token represents a single lexical token in Trash source code.
// It contains the token's type, its literal text from the source, the
// 0-based source position of its first character, and the decoded
// payload for number and string literals.
type Token struct {
	Type    TokenType           // The type/category of this token
	Literal string              // The actual text from source code
	Pos     combinator.Position // Position of the first character (0-based)
	Num     float64             // Decoded value for NUMBER_LIT tokens
	Str     string              // Decoded value for STRING_LIT tokens
}

// NewToken creates a new Token with the specified type and literal
// value but no position metadata. Used mostly by tests.
func NewToken(tokenType TokenType, literal string) Token {
	return Token{
		Type:    tokenType,
		Literal: literal,
	}
}

// String returns a "literal:type" rendering of the token, which shows
// both the actual text and its classification.
func (tok Token) String() string {
	return fmt.Sprintf("%s:%v", tok.Literal, tok.Type)
}

// lookupIdent determines the token type for an identifier lexeme: the
// keyword type when the lexeme is reserved, IDENTIFIER_ID otherwise.
func lookupIdent(ident string) TokenType {
	if tok, ok := KEYWORDS_MAP[ident]; ok {
		return tok
	}
	return IDENTIFIER_ID
}
