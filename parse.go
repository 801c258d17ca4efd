package oxide

import "github.com/govalues/decimal"

// Expr = num | Call
// Call = op '(' Expr ',' Expr ')'
//
// The parser and evaluator only rely on the order of tokens, so brackets and
// commas may be placed freely as long as they separate tokens: "add,1,2" is
// "add(1,2)". Whitespace never separates tokens.

// Expr is a parsed expression. It can be evaluated any number of times, and
// concurrently.
type Expr struct {
	// n is the root node of the expression.
	n *node
}

// Parse parses an expression. Any input that Evaluate rejects without doing
// arithmetic, Parse rejects with the same error. Errors from arithmetic, e.g.
// division by zero, are reported by Eval.
func Parse(src string) (*Expr, error) {
	num := func(tok lexToken, v decimal.Decimal) *node {
		return &node{kind: nodeNum, name: tok.text, pos: tok.pos, val: v}
	}
	call := func(tok lexToken, left, right *node) (*node, error) {
		f := operators[tok.text]
		if f == nil {
			return nil, &InvalidStringError{Token: tok.text, Col: tok.pos, Err: ErrUnknownOperator}
		}
		return &node{kind: nodeCall, name: tok.text, pos: tok.pos, op: f, left: left, right: right}, nil
	}
	n, err := scan(tokens(src), num, call)
	if err != nil {
		return nil, err
	}
	return &Expr{n: n}, nil
}

// String formats the expression in canonical form, e.g. "add(1, mult(2, 3))".
func (e *Expr) String() string {
	return e.n.String()
}

// EvalDecimal evaluates the expression. Of the options, only Precision has an
// effect.
func (e *Expr) EvalDecimal(opts ...Option) (decimal.Decimal, error) {
	c := newConfig(opts)
	d, err := e.n.eval()
	if err != nil {
		return decimal.Decimal{}, err
	}
	return c.finish(d), nil
}

// Eval evaluates the expression and returns its value as text.
func (e *Expr) Eval(opts ...Option) (string, error) {
	d, err := e.EvalDecimal(opts...)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}
