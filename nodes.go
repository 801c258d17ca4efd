package oxide

import (
	"strconv"
	"strings"

	"github.com/govalues/decimal"
)

// node is a node in the syntax tree of an expression.
type node struct {
	kind nodeKind

	name string
	pos  int
	val  decimal.Decimal
	op   Operator

	left  *node
	right *node
}

type nodeKind int8

const (
	nodeNone nodeKind = iota

	nodeNum  // push val
	nodeCall // eval right, eval left, apply op
)

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b)
	return b.String()
}

func (n *node) fmt(b *strings.Builder) {
	switch n.kind {
	case nodeNum:
		b.WriteString(n.name)
	case nodeCall:
		b.WriteString(n.name)
		b.WriteByte('(')
		n.left.fmt(b)
		b.WriteString(", ")
		n.right.fmt(b)
		b.WriteByte(')')
	default:
		panic("oxide: invalid node kind " + strconv.Itoa(int(n.kind)) + " after writing " + b.String())
	}
}

// eval computes the value of the subtree.
func (n *node) eval() (decimal.Decimal, error) {
	switch n.kind {
	case nodeNum:
		return n.val, nil
	case nodeCall:
		// Right first, so that errors match those of the stack machine, which
		// finishes the right argument before it reaches the left.
		r, err := n.right.eval()
		if err != nil {
			return decimal.Decimal{}, err
		}
		l, err := n.left.eval()
		if err != nil {
			return decimal.Decimal{}, err
		}
		v, err := n.op(l, r)
		if err != nil {
			return decimal.Decimal{}, &InvalidStringError{Token: n.name, Col: n.pos, Err: err}
		}
		return v, nil
	default:
		panic("oxide: invalid node kind " + strconv.Itoa(int(n.kind)))
	}
}
