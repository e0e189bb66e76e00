/*
File    : go-trash/combinator/chars_test.go
*/
package combinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChars_PositionTracking(t *testing.T) {
	c := NewChars("ab\ncd")
	assert.Equal(t, Position{0, 0}, c.Pos())
	c = c.advance(1)
	assert.Equal(t, Position{0, 1}, c.Pos())
	c = c.advance(2) // consumes 'b' and the newline
	assert.Equal(t, Position{1, 0}, c.Pos())
	c = c.advance(2)
	assert.Equal(t, Position{1, 2}, c.Pos())
	assert.True(t, c.Empty())
}

func TestOneOf_MatchesSetMembers(t *testing.T) {
	p := OneOf("+-*")
	r := p(NewChars("-x"))
	assert.False(t, r.Failed())
	assert.Equal(t, byte('-'), r.Output)

	r = p(NewChars("x"))
	assert.True(t, r.Failed())
	assert.False(t, r.Err.Consumed)
}

func TestNoneOf_MatchesComplement(t *testing.T) {
	p := NoneOf(`"`)
	r := p(NewChars("a"))
	assert.False(t, r.Failed())

	r = p(NewChars(`"`))
	assert.True(t, r.Failed())

	r = p(NewChars(""))
	assert.True(t, r.Failed())
}

func TestLiteral_MatchesWholeString(t *testing.T) {
	p := Literal("==")
	r := p(NewChars("==3"))
	assert.False(t, r.Failed())
	assert.Equal(t, "==", r.Output)
	assert.Equal(t, Position{0, 2}, r.Rest.Pos())

	r = p(NewChars("=3"))
	assert.True(t, r.Failed())
	assert.False(t, r.Err.Consumed)
}

func TestNegLiteral_AdvancesOneCharUnlessLiteralIsNext(t *testing.T) {
	p := NegLiteral("*/")
	r := p(NewChars("ab"))
	assert.False(t, r.Failed())
	assert.Equal(t, byte('a'), r.Output)

	// A lone '*' not followed by '/' is still consumed.
	r = p(NewChars("*a"))
	assert.False(t, r.Failed())

	r = p(NewChars("*/"))
	assert.True(t, r.Failed())
	assert.False(t, r.Err.Consumed)
}

func TestSatisfy_UsesPredicate(t *testing.T) {
	digit := Satisfy(func(c byte) bool { return c >= '0' && c <= '9' }, "digit")
	r := digit(NewChars("7"))
	assert.False(t, r.Failed())
	assert.Equal(t, byte('7'), r.Output)

	r = digit(NewChars("x"))
	assert.True(t, r.Failed())
	assert.Equal(t, []string{"digit"}, r.Err.Expected)
}

func TestReject_NegativeLookahead(t *testing.T) {
	ident := Satisfy(func(c byte) bool { return c == 'a' }, "a")
	guard := Reject(func(c byte) bool { return c == '!' }, "no bang allowed")

	p := Skip(ident, guard)
	r := p(NewChars("ab"))
	assert.False(t, r.Failed())

	r = p(NewChars("a!"))
	assert.True(t, r.Failed())
	assert.Equal(t, Position{0, 1}, r.Err.Pos)
	// The prefix consumed input, so the failure is committed.
	assert.True(t, r.Err.Consumed)
}
