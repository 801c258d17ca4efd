package oxide

import (
	"errors"
	"math/big"
	"sort"

	"github.com/govalues/decimal"
	"github.com/zephyrtronium/bigfloat"
)

// Operator computes the result of an operation. left is the first argument as
// written and right is the second, so "sub(2,3)" calls the sub Operator with
// left=2 and right=3.
type Operator func(left, right decimal.Decimal) (decimal.Decimal, error)

var operators = map[string]Operator{
	"add":  decimal.Decimal.Add,
	"sub":  decimal.Decimal.Sub,
	"mult": decimal.Decimal.Mul,
	"div":  decimal.Decimal.Quo,
	"mod":  rem,
	"pow":  pow,
}

// Operators returns the names of the supported operators in sorted order.
func Operators() []string {
	r := make([]string, 0, len(operators))
	for k := range operators {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// rem returns the remainder of x/y, with the sign of x.
func rem(x, y decimal.Decimal) (decimal.Decimal, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

var errPowOverflow = errors.New("pow overflow")

// powPrec is the precision in bits of fractional powers. It is comfortably
// more than the 19 decimal digits results are rounded to.
const powPrec = 128

// maxExactPow bounds the exponents which pow computes exactly. Coefficients
// of exact powers grow with the exponent before they are rounded.
const maxExactPow = 1000

// pow returns x raised to y. Integer exponents up to maxExactPow are exact up
// to the precision of decimals. Other exponents are computed in binary
// floating-point and rounded to the nearest decimal.
func pow(x, y decimal.Decimal) (decimal.Decimal, error) {
	if !y.IsInt() {
		switch x.Sign() {
		case -1:
			return decimal.Decimal{}, &DomainError{X: x, Arg: 1, Func: "pow"}
		case 0:
			if y.IsNeg() {
				return decimal.Decimal{}, &DomainError{X: y, Arg: 2, Func: "pow"}
			}
			return decimal.Zero, nil
		}
		return fracpow(x, y)
	}
	n, _, ok := y.Int64(0)
	if ok && -maxExactPow <= n && n <= maxExactPow {
		return x.Pow(int(n))
	}
	if x.IsZero() {
		if y.IsNeg() {
			return decimal.Decimal{}, &DomainError{X: y, Arg: 2, Func: "pow"}
		}
		return decimal.Zero, nil
	}
	_, odd, err := y.QuoRem(decimal.Two)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if x.IsOne() {
		if x.IsNeg() && !odd.IsZero() {
			return decimal.NegOne, nil
		}
		return decimal.One, nil
	}
	r, err := fracpow(x.Abs(), y)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if x.IsNeg() && !odd.IsZero() {
		r = r.Neg()
	}
	return r, nil
}

// fracpow computes x^y for positive x using bigfloat.
func fracpow(x, y decimal.Decimal) (r decimal.Decimal, err error) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if e, ok := p.(big.ErrNaN); ok {
			err = e
			return
		}
		panic(p)
	}()
	bx, ok := new(big.Float).SetPrec(powPrec).SetString(x.String())
	if !ok {
		panic("oxide: decimal " + x.String() + " is not a float")
	}
	by, ok := new(big.Float).SetPrec(powPrec).SetString(y.String())
	if !ok {
		panic("oxide: decimal " + y.String() + " is not a float")
	}
	z := bigfloat.Pow(new(big.Float).SetPrec(powPrec), bx, by)
	// 2^64 already has more integer digits than a decimal can hold.
	if z.IsInf() || z.MantExp(nil) > 64 {
		return decimal.Decimal{}, errPowOverflow
	}
	r, err = decimal.Parse(z.Text('f', decimal.MaxScale))
	if err != nil {
		return decimal.Decimal{}, err
	}
	return r.Trim(0), nil
}
