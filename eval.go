package oxide

import (
	"runtime"

	"github.com/govalues/decimal"
)

// Option is an option used when evaluating expressions.
type Option interface {
	evalOption()
}

type (
	precopt    uint32
	workersopt int
)

func (precopt) evalOption()    {}
func (workersopt) evalOption() {}

// Precision rounds results to p digits after the decimal point, half to even.
// Without it, results keep the scale their arithmetic produces.
func Precision(p uint32) Option {
	return precopt(p)
}

// Workers sets the number of expressions a batch evaluates concurrently. The
// default is runtime.GOMAXPROCS(0). It has no effect on single expressions.
func Workers(n int) Option {
	return workersopt(n)
}

// config is the result of applying options.
type config struct {
	prec    uint32
	round   bool
	workers int
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case precopt:
			c.prec = uint32(opt)
			c.round = true
		case workersopt:
			c.workers = int(opt)
		default:
			panic("oxide: unknown option type")
		}
	}
	if c.workers < 1 {
		c.workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// finish applies rounding to a result.
func (c *config) finish(d decimal.Decimal) decimal.Decimal {
	// Rounding to more digits than a decimal can have is a no-op, and int
	// may be too small for large precisions.
	if !c.round || c.prec > decimal.MaxScale {
		return d
	}
	return d.Round(int(c.prec))
}

func (c *config) evaluate(src string) (string, error) {
	d, err := evaluate(src)
	if err != nil {
		return "", err
	}
	return c.finish(d).String(), nil
}

// stack is an operand stack.
type stack[T any] []T

func (s *stack[T]) push(v T) {
	*s = append(*s, v)
}

// pop removes the top from the stack and returns it. Panics if the stack is
// empty.
func (s *stack[T]) pop() T {
	v := (*s)[len(*s)-1]
	*s = (*s)[:len(*s)-1]
	return v
}

// scan runs a stack machine over toks in reverse order. Numbers are pushed as
// the result of num. Any token that does not parse as a number is an
// operator, including malformed numbers like "1.2.3". Operators pop two values and push the result of op; the
// first value popped is the left operand. The result is the single value left
// on the stack.
//
// Reading the tokens of a prefix expression backward visits every operator
// after both of its arguments have been reduced to a value, so no parse tree
// is needed.
func scan[T any](toks []lexToken, num func(lexToken, decimal.Decimal) T, op func(tok lexToken, left, right T) (T, error)) (T, error) {
	var zero T
	s := make(stack[T], 0, len(toks)/2+1)
	for i := len(toks) - 1; i >= 0; i-- {
		tok := toks[i]
		if v, err := decimal.Parse(tok.text); err == nil {
			s.push(num(tok, v))
			continue
		}
		if len(s) < 2 {
			return zero, &UnmatchedTokenError{Token: tok.text, Col: tok.pos}
		}
		left := s.pop()
		right := s.pop()
		r, err := op(tok, left, right)
		if err != nil {
			return zero, err
		}
		s.push(r)
	}
	switch len(s) {
	case 0:
		return zero, &InvalidStringError{Err: ErrNoResult}
	case 1:
		return s[0], nil
	default:
		return zero, &InvalidStringError{Err: ErrLeftoverOperands}
	}
}

// apply calls the operator named by tok.
func apply(tok lexToken, left, right decimal.Decimal) (decimal.Decimal, error) {
	f := operators[tok.text]
	if f == nil {
		return decimal.Decimal{}, &InvalidStringError{Token: tok.text, Col: tok.pos, Err: ErrUnknownOperator}
	}
	r, err := f(left, right)
	if err != nil {
		return decimal.Decimal{}, &InvalidStringError{Token: tok.text, Col: tok.pos, Err: err}
	}
	return r, nil
}

func evaluate(src string) (decimal.Decimal, error) {
	num := func(_ lexToken, v decimal.Decimal) decimal.Decimal { return v }
	return scan(tokens(src), num, apply)
}

// EvaluateDecimal evaluates an expression and returns its value. If the
// Precision option is given, the result is rounded accordingly. Errors are
// *InvalidStringError or *UnmatchedTokenError.
func EvaluateDecimal(src string, opts ...Option) (decimal.Decimal, error) {
	c := newConfig(opts)
	d, err := evaluate(src)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return c.finish(d), nil
}

// Evaluate evaluates an expression and returns its value as text. If the
// Precision option is given, the result is rounded accordingly. Errors are
// *InvalidStringError or *UnmatchedTokenError.
func Evaluate(src string, opts ...Option) (string, error) {
	c := newConfig(opts)
	return c.evaluate(src)
}
