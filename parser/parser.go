/*
File    : go-trash/parser/parser.go
*/

// Package parser converts Trash source text into a typed Abstract
// Syntax Tree. The grammar is expressed as layered parser-combinator
// stacks over a token view: each binary-operator precedence level is
// one layer, folded left-associatively, and the mutually recursive
// non-terminals (expression, statement, block) are tied together with
// lazily-bound references.
//
// High-level productions are tagged with human names ("expression",
// "statement", ...) so that failures report expectation sets in grammar
// terms rather than token types.
package parser

import (
	"fmt"
	"strings"

	cb "github.com/themartin/go-trash/combinator"
	"github.com/themartin/go-trash/lexer"
)

// tokenView is the parser's input: an immutable cursor over the token
// sequence produced by the lexer. Positions are the source positions of
// the tokens, so failures report the line and column of the offending
// token directly.
type tokenView struct {
	toks []lexer.Token
	off  int
}

// Empty reports whether only the EOF token remains.
func (t tokenView) Empty() bool {
	return t.off >= len(t.toks) || t.toks[t.off].Type == lexer.EOF_TYPE
}

// Pos returns the source position of the next token.
func (t tokenView) Pos() cb.Position {
	if t.off < len(t.toks) {
		return t.toks[t.off].Pos
	}
	if n := len(t.toks); n > 0 {
		return t.toks[n-1].Pos
	}
	return cb.Position{}
}

// advance consumes n tokens.
func (t tokenView) advance(n int) tokenView {
	t.off += n
	return t
}

// tokenName renders a token type the way error messages should spell
// it: literal token kinds by name, everything else quoted.
func tokenName(tt lexer.TokenType) string {
	switch tt {
	case lexer.IDENTIFIER_ID:
		return "identifier"
	case lexer.NUMBER_LIT:
		return "number"
	case lexer.STRING_LIT:
		return "string"
	case lexer.EOF_TYPE:
		return "end of input"
	default:
		return "'" + string(tt) + "'"
	}
}

// tok is the single primitive over the token view: it succeeds on a
// token of the requested type and fails, without consuming, with the
// token's name as the expectation otherwise.
func tok(tt lexer.TokenType) cb.Parser[tokenView, lexer.Token] {
	expected := tokenName(tt)
	return func(s tokenView) cb.Result[tokenView, lexer.Token] {
		if s.off < len(s.toks) && s.toks[s.off].Type == tt {
			return cb.Result[tokenView, lexer.Token]{
				Output:   s.toks[s.off],
				Rest:     s.advance(1),
				Consumed: true,
			}
		}
		return cb.Result[tokenView, lexer.Token]{Err: &cb.Failure{
			Pos:      s.Pos(),
			Message:  "unexpected token",
			Expected: []string{expected},
		}}
	}
}

// tokOneOf matches any one of the given token types, unioning their
// expectations on failure.
func tokOneOf(tts ...lexer.TokenType) cb.Parser[tokenView, lexer.Token] {
	alts := make([]cb.Parser[tokenView, lexer.Token], 0, len(tts))
	for _, tt := range tts {
		alts = append(alts, tok(tt))
	}
	return cb.Either(alts...)
}

// pair is a small helper for threading two parse results through Seq.
type pair[A, B any] struct {
	a A
	b B
}

func mkPair[A, B any](a A, b B) pair[A, B] { return pair[A, B]{a, b} }

// binaryLevel builds one precedence layer: operand (op operand)*,
// folded left-associatively.
func binaryLevel(operand cb.Parser[tokenView, ExpressionNode], ops ...lexer.TokenType) cb.Parser[tokenView, ExpressionNode] {
	tail := cb.Seq(tokOneOf(ops...), operand, mkPair[lexer.Token, ExpressionNode])
	seed, fold := cb.Collect[pair[lexer.Token, ExpressionNode]]()
	tails := cb.Many(tail, seed, fold)
	return cb.Seq(operand, tails, func(left ExpressionNode, rest []pair[lexer.Token, ExpressionNode]) ExpressionNode {
		for _, t := range rest {
			left = &BinaryExpressionNode{Operation: t.a, Left: left, Right: t.b}
		}
		return left
	})
}

// grammar holds the tied-together non-terminals of the language.
type grammar struct {
	expression cb.Parser[tokenView, ExpressionNode]
	unary      cb.Parser[tokenView, ExpressionNode]
	statement  cb.Parser[tokenView, StatementNode]
	block      cb.Parser[tokenView, *BlockStatementNode]
	program    cb.Parser[tokenView, *RootNode]
}

// newGrammar constructs the full grammar. The expression, statement,
// unary and block slots are referenced lazily so the mutually recursive
// productions can be built in one pass.
func newGrammar() *grammar {
	g := &grammar{}
	expr := cb.Lazy(func() cb.Parser[tokenView, ExpressionNode] { return g.expression })
	unary := cb.Lazy(func() cb.Parser[tokenView, ExpressionNode] { return g.unary })
	stmt := cb.Lazy(func() cb.Parser[tokenView, StatementNode] { return g.statement })
	block := cb.Lazy(func() cb.Parser[tokenView, *BlockStatementNode] { return g.block })

	// primary := literal | objectLit | functionLit | ident | '(' expr ')'
	literal := cb.Map(
		tokOneOf(lexer.STRING_LIT, lexer.NUMBER_LIT, lexer.TRUE_KEY, lexer.FALSE_KEY, lexer.NIL_KEY),
		func(t lexer.Token) ExpressionNode { return &LiteralExpressionNode{Token: t} },
	)
	identifier := cb.Map(tok(lexer.IDENTIFIER_ID), func(t lexer.Token) ExpressionNode {
		return &IdentifierExpressionNode{Token: t}
	})
	grouping := cb.Enclosed(tok(lexer.LEFT_PAREN), expr, tok(lexer.RIGHT_PAREN))

	// keyValuePair := (ident | '[' expr ']') ':' expr
	objectKey := cb.Either(
		cb.Map(tok(lexer.IDENTIFIER_ID), func(t lexer.Token) pair[*lexer.Token, ExpressionNode] {
			key := t
			return pair[*lexer.Token, ExpressionNode]{a: &key}
		}),
		cb.Map(cb.Enclosed(tok(lexer.LEFT_BRACKET), expr, tok(lexer.RIGHT_BRACKET)),
			func(e ExpressionNode) pair[*lexer.Token, ExpressionNode] {
				return pair[*lexer.Token, ExpressionNode]{b: e}
			}),
	)
	keyValuePair := cb.Seq(objectKey, cb.Then(tok(lexer.COLON_DELIM), expr),
		func(key pair[*lexer.Token, ExpressionNode], value ExpressionNode) ObjectPair {
			return ObjectPair{KeyIdent: key.a, KeyExpr: key.b, Value: value}
		})
	objectLit := cb.Tagged(cb.Map(
		cb.Enclosed(
			tok(lexer.LEFT_BRACE),
			cb.Optional(nil, cb.Separated(keyValuePair, tok(lexer.COMMA_DELIM))),
			tok(lexer.RIGHT_BRACE),
		),
		func(pairs []ObjectPair) ExpressionNode { return &ObjectExpressionNode{Pairs: pairs} },
	), "object literal")

	// functionLit := 'function' '(' identList ')' block
	identList := cb.Optional(nil, cb.Separated(tok(lexer.IDENTIFIER_ID), tok(lexer.COMMA_DELIM)))
	functionLit := cb.Tagged(cb.Seq(
		cb.Then(tok(lexer.FUNCTION_KEY),
			cb.Enclosed(tok(lexer.LEFT_PAREN), identList, tok(lexer.RIGHT_PAREN))),
		block,
		func(params []lexer.Token, body *BlockStatementNode) ExpressionNode {
			return &FunctionExpressionNode{Params: params, Body: body}
		},
	), "function literal")

	primary := cb.Either(literal, objectLit, functionLit, identifier, grouping)

	// postfix := primary (('[' expr ']') | ('.' ident) | ('(' argList ')'))*
	type postfixFn func(ExpressionNode) ExpressionNode
	index := cb.Map(
		cb.Enclosed(tok(lexer.LEFT_BRACKET), expr, tok(lexer.RIGHT_BRACKET)),
		func(ix ExpressionNode) postfixFn {
			return func(left ExpressionNode) ExpressionNode {
				return &BracketAccessExpressionNode{Left: left, Index: ix}
			}
		})
	member := cb.Map(
		cb.Then(tok(lexer.DOT_OP), tok(lexer.IDENTIFIER_ID)),
		func(name lexer.Token) postfixFn {
			return func(left ExpressionNode) ExpressionNode {
				return &DotAccessExpressionNode{Left: left, Ident: name}
			}
		})
	argList := cb.Optional(nil, cb.Separated(expr, tok(lexer.COMMA_DELIM)))
	call := cb.Map(
		cb.Enclosed(tok(lexer.LEFT_PAREN), argList, tok(lexer.RIGHT_PAREN)),
		func(args []ExpressionNode) postfixFn {
			return func(left ExpressionNode) ExpressionNode {
				return &CallExpressionNode{Callee: left, Arguments: args}
			}
		})
	seedP, foldP := cb.Collect[postfixFn]()
	postfix := cb.Seq(primary, cb.Many(cb.Either(index, member, call), seedP, foldP),
		func(base ExpressionNode, fns []postfixFn) ExpressionNode {
			for _, fn := range fns {
				base = fn(base)
			}
			return base
		})

	// unary := ('+'|'-'|'!') unary | postfix
	g.unary = cb.Either(
		cb.Seq(tokOneOf(lexer.PLUS_OP, lexer.MINUS_OP, lexer.NOT_OP), unary,
			func(op lexer.Token, rhs ExpressionNode) ExpressionNode {
				return &UnaryExpressionNode{Operation: op, Right: rhs}
			}),
		postfix,
	)

	// The binary precedence ladder, low to high.
	multiplication := binaryLevel(unary, lexer.MUL_OP, lexer.DIV_OP, lexer.MOD_OP)
	addition := binaryLevel(multiplication, lexer.PLUS_OP, lexer.MINUS_OP)
	relation := binaryLevel(addition, lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP)
	equality := binaryLevel(relation, lexer.EQ_OP, lexer.NE_OP)
	xor := binaryLevel(equality, lexer.XOR_OP)
	and := binaryLevel(xor, lexer.AND_OP)
	or := binaryLevel(and, lexer.OR_OP)
	g.expression = cb.Tagged(or, "expression")

	semi := tok(lexer.SEMICOLON_DELIM)

	// assignment := postfix assignOp expr
	assignOp := cb.Tagged(
		tokOneOf(lexer.ASSIGN_OP, lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN,
			lexer.MUL_ASSIGN, lexer.DIV_ASSIGN, lexer.MOD_ASSIGN),
		"assignment operator")
	assignment := cb.Seq(postfix, cb.Seq(assignOp, expr, mkPair[lexer.Token, ExpressionNode]),
		func(target ExpressionNode, rhs pair[lexer.Token, ExpressionNode]) *AssignmentStatementNode {
			return &AssignmentStatementNode{Operation: rhs.a, Left: target, Right: rhs.b}
		})

	// varDecl := 'var' ident '=' expr
	varDecl := cb.Seq(
		cb.Then(tok(lexer.VAR_KEY), tok(lexer.IDENTIFIER_ID)),
		cb.Then(tok(lexer.ASSIGN_OP), expr),
		func(name lexer.Token, init ExpressionNode) *DeclarativeStatementNode {
			return &DeclarativeStatementNode{Name: name, Expr: init}
		})

	// if := 'if' '(' expr ')' statement ('else' statement)?
	ifStmt := cb.Tagged(cb.Seq(
		cb.Then(tok(lexer.IF_KEY),
			cb.Enclosed(tok(lexer.LEFT_PAREN), expr, tok(lexer.RIGHT_PAREN))),
		cb.Seq(stmt, cb.Optional[tokenView, StatementNode](nil, cb.Then(tok(lexer.ELSE_KEY), stmt)),
			mkPair[StatementNode, StatementNode]),
		func(cond ExpressionNode, arms pair[StatementNode, StatementNode]) StatementNode {
			return &IfStatementNode{Condition: cond, Then: arms.a, Else: arms.b}
		},
	), "if statement")

	// while := 'while' '(' expr ')' statement
	whileStmt := cb.Tagged(cb.Seq(
		cb.Then(tok(lexer.WHILE_KEY),
			cb.Enclosed(tok(lexer.LEFT_PAREN), expr, tok(lexer.RIGHT_PAREN))),
		stmt,
		func(cond ExpressionNode, body StatementNode) StatementNode {
			return &WhileStatementNode{Condition: cond, Body: body}
		},
	), "while statement")

	// for := 'for' '(' forInit? ';' expr? ';' assignment? ')' statement
	forInit := cb.Optional[tokenView, StatementNode](nil, cb.Either(
		cb.Try(cb.Map(assignment, func(a *AssignmentStatementNode) StatementNode { return a })),
		cb.Map(varDecl, func(d *DeclarativeStatementNode) StatementNode { return d }),
	))
	forCond := cb.Optional[tokenView, ExpressionNode](nil, expr)
	forStep := cb.Optional[tokenView, *AssignmentStatementNode](nil, assignment)
	forHeader := cb.Then(tok(lexer.FOR_KEY), cb.Then(tok(lexer.LEFT_PAREN),
		cb.Seq(cb.Skip(forInit, semi),
			cb.Seq(cb.Skip(forCond, semi), cb.Skip(forStep, tok(lexer.RIGHT_PAREN)),
				mkPair[ExpressionNode, *AssignmentStatementNode]),
			mkPair[StatementNode, pair[ExpressionNode, *AssignmentStatementNode]])))
	forStmt := cb.Tagged(cb.Seq(forHeader, stmt,
		func(header pair[StatementNode, pair[ExpressionNode, *AssignmentStatementNode]], body StatementNode) StatementNode {
			return &ForStatementNode{
				Init:      header.a,
				Condition: header.b.a,
				Update:    header.b.b,
				Body:      body,
			}
		},
	), "for statement")

	// block := '{' statement* '}'
	seedS, foldS := cb.Collect[StatementNode]()
	g.block = cb.Tagged(cb.Map(
		cb.Enclosed(tok(lexer.LEFT_BRACE), cb.Many(stmt, seedS, foldS), tok(lexer.RIGHT_BRACE)),
		func(stmts []StatementNode) *BlockStatementNode {
			return &BlockStatementNode{Statements: stmts}
		},
	), "block")

	// statement: keyword-led forms and blocks are tried first, so a
	// left brace at statement position always opens a block, never an
	// object literal.
	g.statement = cb.Tagged(cb.Either(
		cb.Map(semi, func(lexer.Token) StatementNode { return &EmptyStatementNode{} }),
		cb.Map(cb.Skip(varDecl, semi), func(d *DeclarativeStatementNode) StatementNode { return d }),
		cb.Map(cb.Skip(tok(lexer.BREAK_KEY), semi), func(lexer.Token) StatementNode { return &BreakStatementNode{} }),
		cb.Map(cb.Skip(tok(lexer.CONTINUE_KEY), semi), func(lexer.Token) StatementNode { return &ContinueStatementNode{} }),
		cb.Map(cb.Skip(cb.Then(tok(lexer.RETURN_KEY), expr), semi), func(e ExpressionNode) StatementNode {
			return &ReturnStatementNode{Expr: e}
		}),
		ifStmt,
		whileStmt,
		forStmt,
		cb.Map(block, func(b *BlockStatementNode) StatementNode { return b }),
		cb.Try(cb.Map(cb.Skip(assignment, semi), func(a *AssignmentStatementNode) StatementNode { return a })),
		cb.Map(cb.Skip(expr, semi), func(e ExpressionNode) StatementNode { return &ExpressionStatementNode{Expr: e} }),
	), "statement")

	// program := statement* eof
	seedT, foldT := cb.Collect[StatementNode]()
	g.program = cb.Map(
		cb.Skip(cb.Many(stmt, seedT, foldT), cb.Eof[tokenView]()),
		func(stmts []StatementNode) *RootNode { return &RootNode{Statements: stmts} },
	)

	return g
}

// language is the grammar instance shared by all Parse calls; parsers
// are pure, so sharing is safe.
var language = newGrammar()

// ErrorInfo is the structured parse error surfaced to the host: the
// 0-based position of the offending token or character, the aggregated
// expectation set, a message, and the optional production context.
type ErrorInfo struct {
	Line     int      // 0-based line of the offending input
	Column   int      // 0-based column of the offending input
	Message  string   // Human-readable message
	Expected []string // Expected constructs, in discovery order
	Context  string   // Enclosing production name, if any
}

// Error renders the error in the canonical form
// "error on line L:C: <message>[, expected A or B][ while parsing <context>]".
func (e *ErrorInfo) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "error on line %d:%d: %s", e.Line, e.Column, e.Message)
	if len(e.Expected) > 0 {
		fmt.Fprintf(&sb, ", expected %s", strings.Join(e.Expected, " or "))
	}
	if e.Context != "" {
		fmt.Fprintf(&sb, " while parsing %s", e.Context)
	}
	return sb.String()
}

// errorInfo converts a combinator failure into the public error shape.
func errorInfo(f *cb.Failure) *ErrorInfo {
	return &ErrorInfo{
		Line:     f.Pos.Line,
		Column:   f.Pos.Column,
		Message:  f.Message,
		Expected: f.Expected,
		Context:  f.Context,
	}
}

// Parse runs the lexer and the parser over source text and returns the
// program AST, or a structured error describing the first failure. No
// partial AST is returned on failure.
func Parse(src string) (*RootNode, *ErrorInfo) {
	toks, lexErr := lexer.Tokenize(src)
	if lexErr != nil {
		return nil, errorInfo(lexErr)
	}
	r := language.program(tokenView{toks: toks})
	if r.Failed() {
		return nil, errorInfo(r.Err)
	}
	return r.Output, nil
}
