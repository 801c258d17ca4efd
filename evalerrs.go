package oxide

import (
	"errors"
	"strconv"

	"github.com/govalues/decimal"
)

// InvalidStringError indicates input that could not be interpreted: an unknown
// operator, an operation outside its domain, or input that does not reduce to
// exactly one value. A malformed number is an unknown operator. It implements
// InputError.
//
// The message is the same for every cause. Use errors.Is or
// errors.As on the error to inspect the cause.
type InvalidStringError struct {
	// Token is the token being evaluated when the error occurred. It is empty
	// when the input as a whole was invalid.
	Token string
	// Col is the rune position of Token in the input, or 0 if there is no
	// token.
	Col int
	// Err is the underlying cause.
	Err error
}

func (err *InvalidStringError) Error() string {
	return "the input was invalid"
}

func (err *InvalidStringError) Unwrap() error {
	return err.Err
}

func (err *InvalidStringError) Pos() int {
	return err.Col
}

// UnmatchedTokenError indicates an operator which was given fewer than two
// operands. It implements InputError.
type UnmatchedTokenError struct {
	// Token is the operator.
	Token string
	// Col is the rune position of the operator in the input.
	Col int
}

func (err *UnmatchedTokenError) Error() string {
	return "incorrect number of values were passed for operation: " + err.Token
}

func (err *UnmatchedTokenError) Pos() int {
	return err.Col
}

// DomainError is an error returned when an operator is called on arguments
// outside its domain, e.g. a negative number raised to a fractional power.
type DomainError struct {
	// X is the out-of-domain argument.
	X decimal.Decimal
	// Arg is the 1-based index of the argument.
	Arg int
	// Func is the operator.
	Func string
}

func (err *DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}

// Causes of InvalidStringError which are not errors from arithmetic.
var (
	// ErrUnknownOperator is the cause when a token in operator position is
	// not one of the supported operators.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrNoResult is the cause when the input contains no numbers at all.
	ErrNoResult = errors.New("no result produced")
	// ErrLeftoverOperands is the cause when values remain that no operator
	// consumed, e.g. "1,2".
	ErrLeftoverOperands = errors.New("operands left over after evaluation")
)

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error. It is 0 when
	// the error concerns the input as a whole.
	Pos() int
}

var (
	_ InputError = (*InvalidStringError)(nil)
	_ InputError = (*UnmatchedTokenError)(nil)
)
