/*
File    : go-trash/eval/eval_statements.go
*/
package eval

import (
	"github.com/themartin/go-trash/lexer"
	"github.com/themartin/go-trash/parser"
	"github.com/themartin/go-trash/values"
)

// execStatement walks a statement node and returns the control-flow
// signal it produced. Any error is fatal to the enclosing Execute call.
func (e *Evaluator) execStatement(node parser.StatementNode) (flow, error) {
	switch n := node.(type) {
	case *parser.EmptyStatementNode:
		return flowNone, nil

	case *parser.ExpressionStatementNode:
		// Dereference so that a bare `x;` still checks the binding.
		if _, err := e.evalValue(n.Expr); err != nil {
			return flowNone, err
		}
		return flowNone, nil

	case *parser.DeclarativeStatementNode:
		return e.execVarDecl(n)

	case *parser.AssignmentStatementNode:
		return e.execAssignment(n)

	case *parser.ReturnStatementNode:
		v, err := e.evalValue(n.Expr)
		if err != nil {
			return flowNone, err
		}
		return flow{kind: signalReturn, value: v}, nil

	case *parser.BreakStatementNode:
		return flow{kind: signalBreak}, nil

	case *parser.ContinueStatementNode:
		return flow{kind: signalContinue}, nil

	case *parser.BlockStatementNode:
		return e.execBlock(n)

	case *parser.IfStatementNode:
		return e.execIf(n)

	case *parser.WhileStatementNode:
		return e.execWhile(n)

	case *parser.ForStatementNode:
		return e.execFor(n)

	default:
		return flowNone, &RuntimeError{
			Kind:    ErrInternal,
			Message: "unreachable statement node",
		}
	}
}

// execVarDecl evaluates the initializer and binds the name in the
// current frame. A name already bound locally is a double declaration.
func (e *Evaluator) execVarDecl(node *parser.DeclarativeStatementNode) (flow, error) {
	v, err := e.evalValue(node.Expr)
	if err != nil {
		return flowNone, err
	}
	if !e.Env.Bind(node.Name.Literal, v) {
		return flowNone, newError(ErrDoubleDeclaration, node.Name,
			"variable '%s' is already declared in this scope", node.Name.Literal)
	}
	return flowNone, nil
}

// execAssignment writes through the L-value handle of the left side.
// Plain `=` stores the right side directly; the compound operators read
// the current value first and combine it with the right side under the
// corresponding binary operator's typing rules.
func (e *Evaluator) execAssignment(node *parser.AssignmentStatementNode) (flow, error) {
	target, err := e.evalExpression(node.Left)
	if err != nil {
		return flowNone, err
	}
	if target.ref == nil {
		return flowNone, newError(ErrNotAssignable, node.Operation,
			"left side of assignment is not a variable or indexed access")
	}

	v, err := e.evalValue(node.Right)
	if err != nil {
		return flowNone, err
	}

	if node.Operation.Type != lexer.ASSIGN_OP {
		current, err := target.ref.read()
		if err != nil {
			return flowNone, err
		}
		op := node.Operation
		op.Type = compoundBase(node.Operation.Type)
		v, err = applyBinary(op, current, v)
		if err != nil {
			return flowNone, err
		}
	}

	if err := target.ref.write(v); err != nil {
		return flowNone, err
	}
	return flowNone, nil
}

// compoundBase maps a compound assignment operator to its underlying
// binary operator.
func compoundBase(tt lexer.TokenType) lexer.TokenType {
	switch tt {
	case lexer.PLUS_ASSIGN:
		return lexer.PLUS_OP
	case lexer.MINUS_ASSIGN:
		return lexer.MINUS_OP
	case lexer.MUL_ASSIGN:
		return lexer.MUL_OP
	case lexer.DIV_ASSIGN:
		return lexer.DIV_OP
	default:
		return lexer.MOD_OP
	}
}

// execBlock runs the statements of a block in a fresh child frame. The
// previous frame is restored on every exit path, and the first
// non-normal signal stops the block and propagates.
func (e *Evaluator) execBlock(node *parser.BlockStatementNode) (flow, error) {
	prev := e.Env
	e.Env = prev.Extend()
	defer func() { e.Env = prev }()

	for _, stmt := range node.Statements {
		sig, err := e.execStatement(stmt)
		if err != nil {
			return flowNone, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return flowNone, nil
}

// execIf evaluates the condition and runs the matching arm.
func (e *Evaluator) execIf(node *parser.IfStatementNode) (flow, error) {
	cond, err := e.evalValue(node.Condition)
	if err != nil {
		return flowNone, err
	}
	if values.Truthy(cond) {
		return e.execStatement(node.Then)
	}
	if node.Else != nil {
		return e.execStatement(node.Else)
	}
	return flowNone, nil
}

// execWhile loops while the condition is truthy. Break stops the loop,
// continue moves to the next iteration, return propagates.
func (e *Evaluator) execWhile(node *parser.WhileStatementNode) (flow, error) {
	for {
		cond, err := e.evalValue(node.Condition)
		if err != nil {
			return flowNone, err
		}
		if !values.Truthy(cond) {
			return flowNone, nil
		}
		sig, err := e.execStatement(node.Body)
		if err != nil {
			return flowNone, err
		}
		switch sig.kind {
		case signalBreak:
			return flowNone, nil
		case signalReturn:
			return sig, nil
		}
	}
}

// execFor runs a C-style for loop in its own frame, so the initializer
// binding is scoped to the loop. An absent condition loops forever; the
// step runs after each body execution, including one ended by continue.
func (e *Evaluator) execFor(node *parser.ForStatementNode) (flow, error) {
	prev := e.Env
	e.Env = prev.Extend()
	defer func() { e.Env = prev }()

	if node.Init != nil {
		if _, err := e.execStatement(node.Init); err != nil {
			return flowNone, err
		}
	}

	for {
		if node.Condition != nil {
			cond, err := e.evalValue(node.Condition)
			if err != nil {
				return flowNone, err
			}
			if !values.Truthy(cond) {
				return flowNone, nil
			}
		}

		sig, err := e.execStatement(node.Body)
		if err != nil {
			return flowNone, err
		}
		switch sig.kind {
		case signalBreak:
			return flowNone, nil
		case signalReturn:
			return sig, nil
		}

		if node.Update != nil {
			if _, err := e.execStatement(node.Update); err != nil {
				return flowNone, err
			}
		}
	}
}
