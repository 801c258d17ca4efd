// Package oxide implements a decimal calculator for expressions written in
// prefix function-call notation.
//
// An expression is a number or a call of one of the operators add, sub, mult,
// div, mod, or pow on exactly two arguments, each of which is itself an
// expression: "div(mult(2,3),4)". Whitespace is insignificant anywhere in the
// input. Numbers are decimals with up to 19 significant digits, and results
// keep the scale their arithmetic produces, so "mult(2,2.5)" is "5.0".
//
// Evaluation holds no state between calls, so any number of expressions may
// be evaluated concurrently. EvaluateMany does exactly that for a batch.
//
package oxide
