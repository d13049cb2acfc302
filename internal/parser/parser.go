// Package parser implements a recursive-descent parser for scalar JSON values:
// the literals true, false and null, and numbers.
package parser

import (
	stderrors "errors"
	"math"
	"strconv"

	"github.com/mcncl/jsonscalar/internal/models"
)

// context is the read cursor over one input. It is owned by a single Parse call.
type context struct {
	json string
	pos  int
}

// peek returns the byte at the cursor, or 0 and false at end of input
func (c *context) peek() (byte, bool) {
	if c.pos >= len(c.json) {
		return 0, false
	}
	return c.json[c.pos], true
}

// Parse parses json into v and reports the outcome.
// v is set to null first and is left null on any failure.
func Parse(v *models.Value, json string) models.Result {
	ret, _ := ParseWithOffset(v, json)
	return ret
}

// ParseWithOffset is Parse, also returning the byte offset where parsing stopped.
// On failure the offset points at the offending token.
func ParseWithOffset(v *models.Value, json string) (models.Result, int) {
	c := context{json: json}
	v.Reset()

	parseWhitespace(&c)
	ret := parseValue(&c, v)
	if ret != models.ResultOK {
		v.Reset()
		return ret, c.pos
	}

	parseWhitespace(&c)
	if c.pos != len(c.json) {
		v.Reset()
		return models.ResultRootNotSingular, c.pos
	}
	return models.ResultOK, c.pos
}

// parseWhitespace skips ws = *(%x20 / %x09 / %x0A / %x0D)
func parseWhitespace(c *context) {
	for c.pos < len(c.json) {
		switch c.json[c.pos] {
		case ' ', '\t', '\n', '\r':
			c.pos++
		default:
			return
		}
	}
}

// parseValue dispatches on the first significant byte
func parseValue(c *context, v *models.Value) models.Result {
	ch, ok := c.peek()
	if !ok {
		return models.ResultExpectValue
	}
	switch ch {
	case 't':
		return parseLiteral(c, v, "true", models.TypeTrue)
	case 'f':
		return parseLiteral(c, v, "false", models.TypeFalse)
	case 'n':
		return parseLiteral(c, v, "null", models.TypeNull)
	default:
		return parseNumber(c, v)
	}
}

// parseLiteral matches literal at the cursor. The dispatcher has already
// checked literal[0]; the loop stops at the end of literal, never past the input.
func parseLiteral(c *context, v *models.Value, literal string, typ models.Type) models.Result {
	rest := c.json[c.pos+1:]
	for i := 1; i < len(literal); i++ {
		if i-1 >= len(rest) || rest[i-1] != literal[i] {
			return models.ResultInvalidValue
		}
	}

	// "truex" is a single malformed word, not a literal followed by garbage
	if end := c.pos + len(literal); end < len(c.json) && isWordByte(c.json[end]) {
		return models.ResultInvalidValue
	}

	c.pos += len(literal)
	v.SetType(typ)
	return models.ResultOK
}

func isWordByte(ch byte) bool {
	return ch == '_' || isDigit(ch) || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isDigit1To9(ch byte) bool {
	return ch >= '1' && ch <= '9'
}

// validNumber scans s against
//
//	number = [ "-" ] int [ frac ] [ exp ]
//	int    = "0" / digit1-9 *digit
//	frac   = "." 1*digit
//	exp    = ("e" / "E") [ "-" / "+" ] 1*digit
//
// and returns the length of the match, or 0 if s does not start with a number.
// Only the grammatical prefix is matched: "0123" yields 1.
func validNumber(s string) int {
	i := 0
	at := func(j int) byte {
		if j < len(s) {
			return s[j]
		}
		return 0
	}

	if at(i) == '-' {
		i++
	}

	if at(i) == '0' {
		i++
	} else {
		if !isDigit1To9(at(i)) {
			return 0
		}
		i++
		for isDigit(at(i)) {
			i++
		}
	}

	if at(i) == '.' {
		i++
		if !isDigit(at(i)) {
			return 0
		}
		i++
		for isDigit(at(i)) {
			i++
		}
	}

	if ch := at(i); ch == 'e' || ch == 'E' {
		i++
		if ch := at(i); ch == '+' || ch == '-' {
			i++
		}
		if !isDigit(at(i)) {
			return 0
		}
		i++
		for isDigit(at(i)) {
			i++
		}
	}

	return i
}

// parseNumber validates the token at the cursor and converts it to a double
func parseNumber(c *context, v *models.Value) models.Result {
	n := validNumber(c.json[c.pos:])
	if n == 0 {
		return models.ResultInvalidValue
	}

	f, err := strconv.ParseFloat(c.json[c.pos:c.pos+n], 64)
	if err != nil {
		// ErrRange with a finite result is underflow toward zero, which is fine
		if !stderrors.Is(err, strconv.ErrRange) {
			return models.ResultInvalidValue
		}
		if math.IsInf(f, 0) {
			return models.ResultNumberTooBig
		}
	}

	c.pos += n
	v.SetNumber(f)
	return models.ResultOK
}
