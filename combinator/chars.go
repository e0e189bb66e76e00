/*
File    : go-trash/combinator/chars.go
*/
package combinator

import "strconv"

// Chars is the character view over a source string: an immutable cursor
// carrying the byte offset and the 0-based line/column of the next
// character. Advancing returns a new Chars value.
type Chars struct {
	src string
	off int
	pos Position
}

// NewChars creates a character view positioned at the start of src.
func NewChars(src string) Chars {
	return Chars{src: src}
}

// Empty reports whether the view is exhausted.
func (c Chars) Empty() bool {
	return c.off >= len(c.src)
}

// Pos returns the position of the next character, or the position one
// past the last character when the view is exhausted.
func (c Chars) Pos() Position {
	return c.pos
}

// Head returns the next character without consuming it. Only valid
// when the view is not empty.
func (c Chars) Head() byte {
	return c.src[c.off]
}

// HasPrefix reports whether the remaining input starts with s.
func (c Chars) HasPrefix(s string) bool {
	return len(c.src)-c.off >= len(s) && c.src[c.off:c.off+len(s)] == s
}

// advance consumes n characters, tracking line and column. A newline
// moves to column 0 of the next line.
func (c Chars) advance(n int) Chars {
	for i := 0; i < n && c.off < len(c.src); i++ {
		if c.src[c.off] == '\n' {
			c.pos.Line++
			c.pos.Column = 0
		} else {
			c.pos.Column++
		}
		c.off++
	}
	return c
}

// Satisfy consumes one character matching pred, failing without
// consuming input otherwise. The expectation names the construct.
func Satisfy(pred func(byte) bool, expected string) Parser[Chars, byte] {
	return func(s Chars) Result[Chars, byte] {
		if s.Empty() || !pred(s.Head()) {
			return failed[Chars, byte](&Failure{
				Pos:      s.Pos(),
				Message:  "unexpected input",
				Expected: []string{expected},
			})
		}
		return succeed(s.Head(), s.advance(1), true)
	}
}

// Char consumes exactly the character c.
func Char(c byte) Parser[Chars, byte] {
	expected := strconv.Quote(string(c))
	return func(s Chars) Result[Chars, byte] {
		if s.Empty() || s.Head() != c {
			return failed[Chars, byte](&Failure{
				Pos:      s.Pos(),
				Message:  "unexpected input",
				Expected: []string{expected},
			})
		}
		return succeed(c, s.advance(1), true)
	}
}

// OneOf consumes one character contained in set.
func OneOf(set string) Parser[Chars, byte] {
	expected := "one of " + strconv.Quote(set)
	return func(s Chars) Result[Chars, byte] {
		if !s.Empty() {
			head := s.Head()
			for i := 0; i < len(set); i++ {
				if set[i] == head {
					return succeed(head, s.advance(1), true)
				}
			}
		}
		return failed[Chars, byte](&Failure{
			Pos:      s.Pos(),
			Message:  "unexpected input",
			Expected: []string{expected},
		})
	}
}

// NoneOf consumes one character not contained in set.
func NoneOf(set string) Parser[Chars, byte] {
	expected := "none of " + strconv.Quote(set)
	return func(s Chars) Result[Chars, byte] {
		if !s.Empty() {
			head := s.Head()
			hit := false
			for i := 0; i < len(set); i++ {
				if set[i] == head {
					hit = true
					break
				}
			}
			if !hit {
				return succeed(head, s.advance(1), true)
			}
		}
		return failed[Chars, byte](&Failure{
			Pos:      s.Pos(),
			Message:  "unexpected input",
			Expected: []string{expected},
		})
	}
}

// Literal consumes exactly the string lit.
func Literal(lit string) Parser[Chars, string] {
	expected := strconv.Quote(lit)
	return func(s Chars) Result[Chars, string] {
		if !s.HasPrefix(lit) {
			return failed[Chars, string](&Failure{
				Pos:      s.Pos(),
				Message:  "unexpected input",
				Expected: []string{expected},
			})
		}
		return succeed(lit, s.advance(len(lit)), true)
	}
}

// NegLiteral consumes a single character provided the input does NOT
// start with lit; it fails without consuming when lit is next. Used for
// scanning up to a closing delimiter such as "*/".
func NegLiteral(lit string) Parser[Chars, byte] {
	expected := "anything but " + strconv.Quote(lit)
	return func(s Chars) Result[Chars, byte] {
		if s.Empty() || s.HasPrefix(lit) {
			return failed[Chars, byte](&Failure{
				Pos:      s.Pos(),
				Message:  "unexpected input",
				Expected: []string{expected},
			})
		}
		return succeed(s.Head(), s.advance(1), true)
	}
}

// Reject succeeds without consuming input unless the next character
// matches pred, in which case it fails at that character. Used as a
// negative lookahead, for instance to refuse an identifier character
// directly after a number literal.
func Reject(pred func(byte) bool, msg string) Parser[Chars, struct{}] {
	return func(s Chars) Result[Chars, struct{}] {
		if !s.Empty() && pred(s.Head()) {
			return failed[Chars, struct{}](&Failure{
				Pos:     s.Pos(),
				Message: msg,
			})
		}
		return succeed(struct{}{}, s, false)
	}
}
