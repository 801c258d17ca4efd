// Package binding adapts oxide to hosts which exchange plain strings and JSON
// and expect a single error type with a fixed message.
//
// Hosts should call Init once at startup, before the first call to Oxidate or
// OxidateMultiple. Panics during evaluation are recovered either way; Init
// only decides where they are reported.
package binding

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/zephyrtronium/oxide"
)

// Error is the error type returned to hosts.
type Error struct {
	// Message is the text to show the host's user.
	Message string
	// Cause is the error that produced this one.
	Cause error
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) Unwrap() error {
	return err.Cause
}

var (
	initOnce sync.Once
	hook     atomic.Pointer[log.Logger]
)

// Init installs l as the logger for panics recovered during evaluation. Only
// the first call has any effect. A nil l installs no logger.
func Init(l *log.Logger) {
	initOnce.Do(func() {
		hook.Store(l)
	})
}

// Evaluation entry points, replaced in tests.
var (
	evaluate     = oxide.Evaluate
	evaluateMany = oxide.EvaluateMany
)

// recoverTo converts a panic into an *Error assigned to *err and reports it to
// the installed logger. It must be deferred directly.
func recoverTo(err *error) {
	p := recover()
	if p == nil {
		return
	}
	if l := hook.Load(); l != nil {
		l.Printf("panic: %v\n%s", p, debug.Stack())
	}
	*err = &Error{Message: fmt.Sprint("panic: ", p), Cause: errors.Errorf("recovered panic: %v", p)}
}

// convert wraps an evaluation error into an *Error.
func convert(err error) error {
	var u *oxide.UnmatchedTokenError
	var v *oxide.InvalidStringError
	switch {
	case errors.As(err, &u), errors.As(err, &v):
		return &Error{Message: err.Error(), Cause: err}
	default:
		err = errors.Wrap(err, "evaluating expressions")
		return &Error{Message: err.Error(), Cause: err}
	}
}

func options(precision *uint32) []oxide.Option {
	if precision == nil {
		return nil
	}
	return []oxide.Option{oxide.Precision(*precision)}
}

// Oxidate evaluates an expression. If precision is not nil, the result is
// rounded to that many digits after the decimal point. Errors are *Error.
func Oxidate(input string, precision *uint32) (r string, err error) {
	defer recoverTo(&err)
	r, err = evaluate(input, options(precision)...)
	if err != nil {
		return "", convert(err)
	}
	return r, nil
}

// OxidateMultiple evaluates a JSON array of expressions and returns a JSON
// array of their results in the same order. If any expression fails, the
// error is that of the first one to fail, and there is no partial result.
// Errors are *Error.
func OxidateMultiple(input []byte, precision *uint32) (r []byte, err error) {
	defer recoverTo(&err)
	var srcs []string
	if err := json.Unmarshal(input, &srcs); err != nil {
		err = errors.Wrap(err, "decoding expressions")
		return nil, &Error{Message: err.Error(), Cause: err}
	}
	vals, err := evaluateMany(context.Background(), srcs, options(precision)...)
	if err != nil {
		return nil, convert(err)
	}
	r, err = json.Marshal(vals)
	if err != nil {
		err = errors.Wrap(err, "encoding results")
		return nil, &Error{Message: err.Error(), Cause: err}
	}
	return r, nil
}
