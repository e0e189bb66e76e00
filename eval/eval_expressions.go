/*
File    : go-trash/eval/eval_expressions.go
*/
package eval

import (
	"math"

	"github.com/themartin/go-trash/function"
	"github.com/themartin/go-trash/lexer"
	"github.com/themartin/go-trash/parser"
	"github.com/themartin/go-trash/values"
)

// evalExpression walks an expression node. Identifiers, dot accesses
// and bracket accesses yield L-value references; every other expression
// yields a plain value.
func (e *Evaluator) evalExpression(node parser.ExpressionNode) (result, error) {
	switch n := node.(type) {
	case *parser.LiteralExpressionNode:
		v, err := literalValue(n.Token)
		if err != nil {
			return result{}, err
		}
		return rvalue(v), nil

	case *parser.IdentifierExpressionNode:
		return result{ref: &variableRef{env: e.Env, name: n.Token.Literal}}, nil

	case *parser.ObjectExpressionNode:
		return e.evalObject(n)

	case *parser.FunctionExpressionNode:
		// The current frame is captured by reference, not copied.
		return rvalue(&function.Function{Def: n, Env: e.Env}), nil

	case *parser.UnaryExpressionNode:
		return e.evalUnary(n)

	case *parser.BinaryExpressionNode:
		return e.evalBinary(n)

	case *parser.CallExpressionNode:
		return e.evalCall(n)

	case *parser.DotAccessExpressionNode:
		obj, err := e.evalIndexable(n.Left, n.Ident)
		if err != nil {
			return result{}, err
		}
		return result{ref: &accessorRef{obj: obj, key: &values.String{Value: n.Ident.Literal}}}, nil

	case *parser.BracketAccessExpressionNode:
		left, err := e.evalValue(n.Left)
		if err != nil {
			return result{}, err
		}
		obj, ok := left.(values.Indexable)
		if !ok {
			return result{}, &RuntimeError{
				Kind:    ErrTypeMismatch,
				Message: "cannot index a value of type " + string(left.Type()),
			}
		}
		key, err := e.evalValue(n.Index)
		if err != nil {
			return result{}, err
		}
		return result{ref: &accessorRef{obj: obj, key: key}}, nil

	default:
		return result{}, &RuntimeError{
			Kind:    ErrInternal,
			Message: "unreachable expression node",
		}
	}
}

// evalValue walks an expression and dereferences the outcome to an
// R-value.
func (e *Evaluator) evalValue(node parser.ExpressionNode) (values.Value, error) {
	r, err := e.evalExpression(node)
	if err != nil {
		return nil, err
	}
	return r.deref()
}

// literalValue converts a literal token to its runtime value.
func literalValue(tok lexer.Token) (values.Value, error) {
	switch tok.Type {
	case lexer.NUMBER_LIT:
		return &values.Number{Value: tok.Num}, nil
	case lexer.STRING_LIT:
		return &values.String{Value: tok.Str}, nil
	case lexer.TRUE_KEY:
		return &values.Boolean{Value: true}, nil
	case lexer.FALSE_KEY:
		return &values.Boolean{Value: false}, nil
	case lexer.NIL_KEY:
		return values.NIL, nil
	default:
		return nil, newError(ErrInternal, tok, "unreachable literal token '%s'", tok.Literal)
	}
}

// evalObject constructs a fresh object from an object literal. A bare
// identifier key is used verbatim as a string key; a bracketed key
// expression is evaluated at construction time.
func (e *Evaluator) evalObject(node *parser.ObjectExpressionNode) (result, error) {
	obj := values.NewObject()
	for _, objPair := range node.Pairs {
		var key values.Value
		if objPair.KeyIdent != nil {
			key = &values.String{Value: objPair.KeyIdent.Literal}
		} else {
			v, err := e.evalValue(objPair.KeyExpr)
			if err != nil {
				return result{}, err
			}
			key = v
		}
		v, err := e.evalValue(objPair.Value)
		if err != nil {
			return result{}, err
		}
		obj.Set(key, v)
	}
	return rvalue(obj), nil
}

// evalIndexable evaluates the left side of a dot access and requires it
// to be indexable.
func (e *Evaluator) evalIndexable(node parser.ExpressionNode, at lexer.Token) (values.Indexable, error) {
	left, err := e.evalValue(node)
	if err != nil {
		return nil, err
	}
	obj, ok := left.(values.Indexable)
	if !ok {
		return nil, newError(ErrTypeMismatch, at,
			"cannot access member '%s' of a value of type %s", at.Literal, left.Type())
	}
	return obj, nil
}

// evalCall evaluates a call expression: the callee must be callable,
// the arguments evaluate left to right, and the callable is invoked
// synchronously.
func (e *Evaluator) evalCall(node *parser.CallExpressionNode) (result, error) {
	callee, err := e.evalValue(node.Callee)
	if err != nil {
		return result{}, err
	}
	fn, ok := callee.(values.Callable)
	if !ok {
		return result{}, &RuntimeError{
			Kind:    ErrTypeMismatch,
			Message: "cannot call a value of type " + string(callee.Type()),
		}
	}

	args := make([]values.Value, 0, len(node.Arguments))
	for _, argNode := range node.Arguments {
		arg, err := e.evalValue(argNode)
		if err != nil {
			return result{}, err
		}
		args = append(args, arg)
	}

	out, err := fn.Call(e, args)
	if err != nil {
		if rerr, ok := err.(*RuntimeError); ok {
			return result{}, rerr
		}
		return result{}, &RuntimeError{Kind: ErrNative, Message: err.Error()}
	}
	if out == nil {
		out = values.NIL
	}
	return rvalue(out), nil
}

// evalUnary applies a unary operator.
//
// `!` negates truthiness, `-` requires a number, and `+` is the
// identity on any value.
func (e *Evaluator) evalUnary(node *parser.UnaryExpressionNode) (result, error) {
	operand, err := e.evalValue(node.Right)
	if err != nil {
		return result{}, err
	}
	switch node.Operation.Type {
	case lexer.NOT_OP:
		return rvalue(&values.Boolean{Value: !values.Truthy(operand)}), nil
	case lexer.PLUS_OP:
		return rvalue(operand), nil
	case lexer.MINUS_OP:
		num, ok := operand.(*values.Number)
		if !ok {
			return result{}, newError(ErrTypeMismatch, node.Operation,
				"operator '-' expects a number, got %s", operand.Type())
		}
		return rvalue(&values.Number{Value: -num.Value}), nil
	default:
		return result{}, newError(ErrInternal, node.Operation,
			"unreachable unary operator '%s'", node.Operation.Literal)
	}
}

// evalBinary applies a binary operator to fully evaluated operands.
// Both sides are always evaluated; `&&` and `||` do not short-circuit.
func (e *Evaluator) evalBinary(node *parser.BinaryExpressionNode) (result, error) {
	left, err := e.evalValue(node.Left)
	if err != nil {
		return result{}, err
	}
	right, err := e.evalValue(node.Right)
	if err != nil {
		return result{}, err
	}
	v, err := applyBinary(node.Operation, left, right)
	if err != nil {
		return result{}, err
	}
	return rvalue(v), nil
}

// applyBinary implements the binary operator table. The operator token
// is carried for error positions.
func applyBinary(op lexer.Token, left, right values.Value) (values.Value, error) {
	switch op.Type {
	case lexer.PLUS_OP:
		return applyAddition(op, left, right)

	case lexer.MINUS_OP, lexer.MUL_OP, lexer.DIV_OP, lexer.MOD_OP:
		l, r, err := numericOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		switch op.Type {
		case lexer.MINUS_OP:
			return &values.Number{Value: l - r}, nil
		case lexer.MUL_OP:
			return &values.Number{Value: l * r}, nil
		case lexer.DIV_OP:
			// IEEE-754: division by zero yields an infinity or NaN.
			return &values.Number{Value: l / r}, nil
		default:
			return &values.Number{Value: math.Mod(l, r)}, nil
		}

	case lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP:
		l, r, err := numericOperands(op, left, right)
		if err != nil {
			return nil, err
		}
		switch op.Type {
		case lexer.LT_OP:
			return &values.Boolean{Value: l < r}, nil
		case lexer.LE_OP:
			return &values.Boolean{Value: l <= r}, nil
		case lexer.GT_OP:
			return &values.Boolean{Value: l > r}, nil
		default:
			return &values.Boolean{Value: l >= r}, nil
		}

	case lexer.EQ_OP:
		return &values.Boolean{Value: values.Equals(left, right)}, nil
	case lexer.NE_OP:
		return &values.Boolean{Value: !values.Equals(left, right)}, nil

	case lexer.XOR_OP:
		return &values.Boolean{Value: values.Truthy(left) != values.Truthy(right)}, nil
	case lexer.AND_OP:
		return &values.Boolean{Value: values.Truthy(left) && values.Truthy(right)}, nil
	case lexer.OR_OP:
		return &values.Boolean{Value: values.Truthy(left) || values.Truthy(right)}, nil

	default:
		return nil, newError(ErrInternal, op, "unreachable binary operator '%s'", op.Literal)
	}
}

// applyAddition implements `+`: numeric addition for two numbers,
// concatenation for two strings, a type mismatch for anything else.
func applyAddition(op lexer.Token, left, right values.Value) (values.Value, error) {
	if l, ok := left.(*values.Number); ok {
		if r, ok := right.(*values.Number); ok {
			return &values.Number{Value: l.Value + r.Value}, nil
		}
	}
	if l, ok := left.(*values.String); ok {
		if r, ok := right.(*values.String); ok {
			return &values.String{Value: l.Value + r.Value}, nil
		}
	}
	return nil, newError(ErrTypeMismatch, op,
		"operator '+' expects two numbers or two strings, got %s and %s", left.Type(), right.Type())
}

// numericOperands requires both operands of an operator to be numbers.
func numericOperands(op lexer.Token, left, right values.Value) (float64, float64, error) {
	l, ok := left.(*values.Number)
	if !ok {
		return 0, 0, newError(ErrTypeMismatch, op,
			"operator '%s' expects numbers, got %s", op.Literal, left.Type())
	}
	r, ok := right.(*values.Number)
	if !ok {
		return 0, 0, newError(ErrTypeMismatch, op,
			"operator '%s' expects numbers, got %s", op.Literal, right.Type())
	}
	return l.Value, r.Value, nil
}
