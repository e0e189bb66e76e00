/*
File    : go-trash/eval/evaluator_test.go
*/
package eval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/themartin/go-trash/parser"
	"github.com/themartin/go-trash/scope"
	"github.com/themartin/go-trash/std"
	"github.com/themartin/go-trash/values"
)

// run parses and executes source against a fresh global environment
// preloaded with the standard library, returning the captured output
// and the execution error.
func run(t *testing.T, src string) (string, error) {
	t.Helper()
	root, perr := parser.Parse(src)
	if perr != nil {
		t.Fatalf("parse of %q failed: %v", src, perr)
	}
	var buf bytes.Buffer
	evaluator := NewEvaluator()
	evaluator.SetWriter(&buf)
	env := scope.NewGlobal(std.Bindings())
	err := evaluator.Execute(root, env)
	return buf.String(), err
}

// mustRun is run asserting successful execution.
func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, err := run(t, src)
	if err != nil {
		t.Fatalf("execution of %q failed: %v", src, err)
	}
	return out
}

// kindOf extracts the RuntimeError kind of an execution error.
func kindOf(t *testing.T, err error) ErrorKind {
	t.Helper()
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T: %v", err, err)
	}
	return rerr.Kind
}

// TestEvaluator_Scenarios runs the canonical observable-output programs
func TestEvaluator_Scenarios(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{
			"var a = 1; a = a + 2; print(a);",
			"3\n",
		},
		{
			`var mk = function(){ var i = 0; return function(){ i += 1; return i; }; };
			 var c = mk(); print(c()); print(c()); print(c());`,
			"1\n2\n3\n",
		},
		{
			`var o = { x: 1, ["y"]: 2 }; o.x += 10; print(o.x); print(o["y"]); print(o.missing);`,
			"11\n2\nnil\n",
		},
		{
			"for (var i = 0; i < 4; i += 1) { if (i == 2) continue; if (i == 3) break; print(i); }",
			"0\n1\n",
		},
		{
			`print("a" + "b"); print(1 + 2); print(true ^ false); print(nil == nil);`,
			"ab\n3\ntrue\ntrue\n",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}
}

// TestEvaluator_Arithmetic verifies the numeric operator table
func TestEvaluator_Arithmetic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print(1 + 2 * 3);", "7\n"},
		{"print(10 - 4 - 3);", "3\n"},
		{"print(15 / 3);", "5\n"},
		{"print(2.2 / 2);", "1.1\n"},
		{"print(7 % 3);", "1\n"},
		{"print(-7 % 3);", "-1\n"},
		{"print(1 / 0);", "+Inf\n"},
		{"print(-1 / 0);", "-Inf\n"},
		{"print(0 / 0);", "NaN\n"},
		{"print(-0.0);", "-0\n"},
		{"print(2.5e-2);", "0.025\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}
}

// TestEvaluator_Comparisons verifies relational and equality operators
func TestEvaluator_Comparisons(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print(1 < 2);", "true\n"},
		{"print(2 <= 2);", "true\n"},
		{"print(3 > 4);", "false\n"},
		{"print(4 >= 5);", "false\n"},
		{`print("a" == "a");`, "true\n"},
		{`print("a" != "b");`, "true\n"},
		{"print(1 == 1);", "true\n"},
		{"print(1 == true);", "false\n"}, // different tags never equal
		{"print(nil != 0);", "true\n"},
		{"var o = {}; print(o == o);", "true\n"},
		{"var a = {}; var b = {}; print(a == b);", "false\n"},
		{"var f = function(){ return 0; }; var g = f; print(f == g);", "true\n"},
		{"var f = function(){ return 0; }; var g = function(){ return 0; }; print(f == g);", "false\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}
}

// TestEvaluator_Logic verifies truthiness and the logical operators
func TestEvaluator_Logic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"print(!true); print(!nil); print(!0);", "false\ntrue\ntrue\n"},
		{`print(!"");`, "false\n"}, // empty string is truthy
		{"print(true && 1); print(true && 0);", "true\nfalse\n"},
		{"print(false || nil); print(false || 2);", "false\ntrue\n"},
		{"print(true ^ true); print(false ^ true);", "false\ntrue\n"},
		{"if (3) print(1); else print(2);", "1\n"},
		{"if (nil) print(1); else print(2);", "2\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}
}

// TestEvaluator_NoShortCircuit: both sides of && and || are always
// evaluated
func TestEvaluator_NoShortCircuit(t *testing.T) {
	out := mustRun(t, `
		var calls = 0;
		var f = function() { calls += 1; return true; };
		var r1 = false && f();
		var r2 = true || f();
		print(calls);
	`)
	assert.Equal(t, "2\n", out)
}

// TestEvaluator_UnaryPlusIsIdentity: unary + passes any value through
func TestEvaluator_UnaryPlusIsIdentity(t *testing.T) {
	assert.Equal(t, "5\n", mustRun(t, "print(+5);"))
	assert.Equal(t, "abc\n", mustRun(t, `print(+"abc");`))
	assert.Equal(t, "true\n", mustRun(t, "print(+true);"))
}

// TestEvaluator_CompoundAssignment verifies the compound operators and
// their typing rules
func TestEvaluator_CompoundAssignment(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var x = 1; x += 2; print(x);", "3\n"},
		{"var x = 5; x -= 2; print(x);", "3\n"},
		{"var x = 5; x *= 2; print(x);", "10\n"},
		{"var x = 5; x /= 2; print(x);", "2.5\n"},
		{"var x = 5; x %= 2; print(x);", "1\n"},
		{`var s = "a"; s += "b"; print(s);`, "ab\n"},
		{`var o = { n: 1 }; o.n *= 4; print(o.n);`, "4\n"},
		{`var o = { k: 1 }; o["k"] += 1; print(o["k"]);`, "2\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}

	_, err := run(t, `var s = "a"; s += 1;`)
	assert.Equal(t, ErrTypeMismatch, kindOf(t, err))
	_, err = run(t, `var s = "a"; s -= "b";`)
	assert.Equal(t, ErrTypeMismatch, kindOf(t, err))
}

// TestEvaluator_Closures: mutations to captured variables are shared
// between closures and visible to the outer scope
func TestEvaluator_Closures(t *testing.T) {
	out := mustRun(t, `
		var n = 0;
		var bump = function() { n += 1; };
		bump(); bump();
		print(n);
	`)
	assert.Equal(t, "2\n", out)

	// Two closures over the same frame observe each other.
	out = mustRun(t, `
		var mk = function() {
			var i = 0;
			var inc = function() { i += 1; };
			var get = function() { return i; };
			var o = { inc: inc, get: get };
			return o;
		};
		var c = mk();
		c.inc(); c.inc(); c.inc();
		print(c.get());
	`)
	assert.Equal(t, "3\n", out)
}

// TestEvaluator_Functions verifies calls, returns and nil defaults
func TestEvaluator_Functions(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var f = function() { return 7; }; print(f());", "7\n"},
		{"var f = function() { 1 + 1; }; print(f());", "nil\n"}, // no return yields nil
		{"var add = function(a, b) { return a + b; }; print(add(2, 3));", "5\n"},
		{"var f = function() { return 1; }; print(f());", "1\n"},
		{
			// Arguments evaluate left to right.
			`var f = function(a, b) { return a; };
			 var log = "";
			 var tag = function(s) { log += s; return s; };
			 f(tag("l"), tag("r"));
			 print(log);`,
			"lr\n",
		},
		{
			// Return unwinds nested blocks and loops.
			"var f = function() { while (true) { if (true) { return 9; } } }; print(f());",
			"9\n",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}
}

// TestEvaluator_Loops verifies while and for semantics
func TestEvaluator_Loops(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var i = 0; while (i < 3) { print(i); i += 1; }", "0\n1\n2\n"},
		{"var i = 0; while (true) { i += 1; if (i == 3) break; } print(i);", "3\n"},
		{
			"var s = 0; for (var i = 0; i < 5; i += 1) { if (i == 1) continue; s += i; } print(s);",
			"9\n", // 0 + 2 + 3 + 4
		},
		{"for (var i = 0; i < 8; i += 1) { if (i >= 2) break; print(i); }", "0\n1\n"},
		{"var i = 0; for (; i < 2; i += 1) print(i);", "0\n1\n"},
		{"var i = 0; for (;;) { i += 1; if (i == 4) break; } print(i);", "4\n"},
		{"var i = 5; for (i = 0; i < 2; i += 1) ; print(i);", "2\n"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}
}

// TestEvaluator_Objects verifies construction, keys and nested access
func TestEvaluator_Objects(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var o = {}; print(o.missing);", "nil\n"},
		{"var o = { a: { b: 2 } }; print(o.a.b);", "2\n"},
		{"var o = {}; o.x = 1; print(o.x);", "1\n"},
		{"var o = {}; o[1] = \"one\"; print(o[1]);", "one\n"},
		{"var o = {}; o[true] = 1; o[nil] = 2; print(o[true]); print(o[nil]);", "1\n2\n"},
		{
			// Computed keys evaluate at construction time.
			`var k = "dyn"; var o = { [k + "amic"]: 3 }; print(o.dynamic);`,
			"3\n",
		},
		{
			// Object keys compare by identity.
			"var k1 = {}; var k2 = {}; var o = {}; o[k1] = 1; print(o[k1]); print(o[k2]);",
			"1\nnil\n",
		},
		{
			// A function stored in an object is callable through access.
			"var o = { f: function() { return 7; } }; print(o.f());",
			"7\n",
		},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}
}

// TestEvaluator_Scoping verifies block scoping and declaration rules
func TestEvaluator_Scoping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"var x = 1; { var x = 2; print(x); } print(x);", "2\n1\n"},
		{"var x = 1; { x = 2; } print(x);", "2\n"},
		{"for (var i = 0; i < 1; i += 1) {} var i = 9; print(i);", "9\n"}, // loop variable is loop-scoped
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, mustRun(t, tt.input), "input: %q", tt.input)
	}
}

// TestEvaluator_Errors verifies the runtime error taxonomy
func TestEvaluator_Errors(t *testing.T) {
	tests := []struct {
		input string
		kind  ErrorKind
	}{
		{"x;", ErrUndeclaredAccess},
		{"x = 1;", ErrUndeclaredAccess},
		{"var x = 1; var x = 2;", ErrDoubleDeclaration},
		{"1 = 2;", ErrNotAssignable},
		{"var f = function() { return 1; }; f() = 2;", ErrNotAssignable},
		{"var f = function(a) { return a; }; f();", ErrArity},
		{"var f = function() { return 1; }; f(1);", ErrArity},
		{"nil();", ErrTypeMismatch},
		{"1 + nil;", ErrTypeMismatch},
		{`1 + "a";`, ErrTypeMismatch},
		{`"a" * "b";`, ErrTypeMismatch},
		{`-"a";`, ErrTypeMismatch},
		{"1 < nil;", ErrTypeMismatch},
		{"var x = 1; x.field;", ErrTypeMismatch},
		{"var x = 1; x[0];", ErrTypeMismatch},
		{"break;", ErrStrayBreakContinue},
		{"continue;", ErrStrayBreakContinue},
		{"return 1;", ErrStrayBreakContinue},
		{"var f = function() { break; }; f();", ErrStrayBreakContinue},
	}

	for _, tt := range tests {
		_, err := run(t, tt.input)
		if assert.NotNil(t, err, "input: %q", tt.input) {
			assert.Equal(t, tt.kind, kindOf(t, err), "input: %q", tt.input)
		}
	}
}

// TestEvaluator_ErrorsAreFatal: output produced before the failure is
// kept, nothing after it runs
func TestEvaluator_ErrorsAreFatal(t *testing.T) {
	out, err := run(t, "print(1); undeclared; print(2);")
	assert.NotNil(t, err)
	assert.Equal(t, "1\n", out)
}

// TestEvaluator_GlobalsSurviveExecution: top-level bindings stay
// visible to the host after Execute returns
func TestEvaluator_GlobalsSurviveExecution(t *testing.T) {
	root, perr := parser.Parse("var a = 1; a = a + 2;")
	assert.Nil(t, perr)

	evaluator := NewEvaluator()
	env := scope.NewGlobal(std.Bindings())
	assert.Nil(t, evaluator.Execute(root, env))

	v, ok := env.LookUp("a")
	assert.True(t, ok)
	assert.Equal(t, &values.Number{Value: 3}, v)
}

// TestEvaluator_EnvironmentRegisterIsRestored: the current-environment
// register returns to its pre-call value on success and on error
func TestEvaluator_EnvironmentRegisterIsRestored(t *testing.T) {
	evaluator := NewEvaluator()
	env := scope.NewGlobal(std.Bindings())

	root, _ := parser.Parse("var a = 1; { var b = 2; }")
	assert.Nil(t, evaluator.Execute(root, env))
	assert.Nil(t, evaluator.Env)

	// An error raised deep inside nested frames must also restore.
	root, _ = parser.Parse("{ { { undeclared; } } }")
	assert.NotNil(t, evaluator.Execute(root, env))
	assert.Nil(t, evaluator.Env)
}

// recorder is a host-supplied native demonstrating the Callable
// contract.
type recorder struct {
	got []values.Value
}

func (r *recorder) Type() values.ValueType { return values.FunctionType }
func (r *recorder) ToString() string       { return "builtin(record)" }
func (r *recorder) Inspect() string        { return "<builtin(record)>" }
func (r *recorder) Call(rt values.Runtime, args []values.Value) (values.Value, error) {
	r.got = append(r.got, args...)
	return &values.Number{Value: float64(len(r.got))}, nil
}

// TestEvaluator_HostCallable: the evaluator invokes host callables with
// evaluated arguments and uses their return values
func TestEvaluator_HostCallable(t *testing.T) {
	rec := &recorder{}
	env := scope.NewGlobal(map[string]values.Value{"record": rec})

	root, perr := parser.Parse("record(1 + 1); record(\"x\", nil);")
	assert.Nil(t, perr)

	evaluator := NewEvaluator()
	assert.Nil(t, evaluator.Execute(root, env))
	assert.Equal(t, []values.Value{
		&values.Number{Value: 2},
		&values.String{Value: "x"},
		values.NIL,
	}, rec.got)
}

// upperBox is a host-supplied Indexable demonstrating the capability
// contract: reads come back upper-cased.
type upperBox struct {
	data map[string]string
}

func (b *upperBox) Type() values.ValueType { return values.ObjectType }
func (b *upperBox) ToString() string       { return "<upperBox>" }
func (b *upperBox) Inspect() string        { return "<upperBox>" }

func (b *upperBox) Get(key values.Value) values.Value {
	v, ok := b.data[key.ToString()]
	if !ok {
		return values.NIL
	}
	out := make([]byte, len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return &values.String{Value: string(out)}
}

func (b *upperBox) Set(key values.Value, v values.Value) {
	b.data[key.ToString()] = v.ToString()
}

// TestEvaluator_HostIndexable: dot and bracket access go through the
// host's Get and Set
func TestEvaluator_HostIndexable(t *testing.T) {
	box := &upperBox{data: map[string]string{}}
	env := scope.NewGlobal(std.Bindings())
	env.Bind("box", box)

	root, perr := parser.Parse(`box.greeting = "hello"; print(box.greeting); print(box["greeting"]);`)
	assert.Nil(t, perr)

	var buf bytes.Buffer
	evaluator := NewEvaluator()
	evaluator.SetWriter(&buf)
	assert.Nil(t, evaluator.Execute(root, env))
	assert.Equal(t, "HELLO\nHELLO\n", buf.String())
}
