package models

import (
	stderrors "errors"
	"fmt"

	"github.com/mcncl/jsonscalar/internal/errors"
)

// ErrNotNumber is returned by Value.Number when the value holds no number.
var ErrNotNumber = stderrors.New("value is not a number")

// Type identifies which variant of a Value is active.
type Type int

const (
	TypeNull Type = iota
	TypeFalse
	TypeTrue
	TypeNumber
)

// String returns the JSON name of the type
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeFalse:
		return "false"
	case TypeTrue:
		return "true"
	case TypeNumber:
		return "number"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Value is a parsed scalar JSON value.
// The zero Value is null. The numeric payload is only reachable through
// Number or MustNumber, so a caller can never read a stale number off a
// non-number value.
type Value struct {
	typ Type
	n   float64
}

// NullValue returns the null value.
func NullValue() Value {
	return Value{}
}

// BoolValue returns true or false.
func BoolValue(b bool) Value {
	if b {
		return Value{typ: TypeTrue}
	}
	return Value{typ: TypeFalse}
}

// NumberValue returns a number value holding n.
func NumberValue(n float64) Value {
	return Value{typ: TypeNumber, n: n}
}

// Type returns the discriminant of the value.
func (v Value) Type() Type {
	return v.typ
}

// IsNumber reports whether the value holds a number.
func (v Value) IsNumber() bool {
	return v.typ == TypeNumber
}

// Number returns the numeric payload, or ErrNotNumber if the value is not a number.
func (v Value) Number() (float64, error) {
	if v.typ != TypeNumber {
		return 0, fmt.Errorf("%w: got %s", ErrNotNumber, v.typ)
	}
	return v.n, nil
}

// MustNumber is the unchecked fast path for Number.
// It panics if the value is not a number.
func (v Value) MustNumber() float64 {
	if v.typ != TypeNumber {
		panic(fmt.Sprintf("models: MustNumber called on %s value", v.typ))
	}
	return v.n
}

// Reset sets the value back to null, dropping any numeric payload.
func (v *Value) Reset() {
	*v = Value{}
}

// SetType sets a non-number variant.
func (v *Value) SetType(t Type) {
	*v = Value{typ: t}
}

// SetNumber sets the value to the number n.
func (v *Value) SetNumber(n float64) {
	*v = Value{typ: TypeNumber, n: n}
}

// Result is the outcome of a parse.
type Result int

const (
	ResultOK Result = iota
	ResultExpectValue
	ResultInvalidValue
	ResultNumberTooBig
	ResultRootNotSingular
)

// String returns a short name for the result
func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultExpectValue:
		return "expect_value"
	case ResultInvalidValue:
		return "invalid_value"
	case ResultNumberTooBig:
		return "number_too_big"
	case ResultRootNotSingular:
		return "root_not_singular"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// Err maps a result to its sentinel error. ResultOK maps to nil.
func (r Result) Err() error {
	switch r {
	case ResultOK:
		return nil
	case ResultExpectValue:
		return errors.ErrExpectValue
	case ResultInvalidValue:
		return errors.ErrInvalidValue
	case ResultNumberTooBig:
		return errors.ErrNumberTooBig
	case ResultRootNotSingular:
		return errors.ErrRootNotSingular
	default:
		return fmt.Errorf("unknown parse result %d", int(r))
	}
}
