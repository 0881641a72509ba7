// 11 Jan 2024

// Package logspace does arithmetic on probabilities stored as natural
// logarithms. Probabilities from long sequences underflow a double very
// quickly, so everything downstream keeps them as logs and only ever
// converts back for printing.
package logspace

import "math"

// Below cutoff, exp() underflows to zero, so adding the smaller term
// cannot change the larger one. Skipping the call saves us computing
// exp of a very negative number for no reason.
const cutoff = -709.0

// Zero is the logarithm of probability zero.
var Zero = math.Inf(-1)

// Add returns log(exp(a) + exp(b)) without leaving log space. We factor
// out the larger argument, so the exp() only ever sees a non-positive
// number and cannot overflow. Adding Zero to anything returns the other
// argument unchanged.
func Add(a, b float64) float64 {
	if a < b {
		a, b = b, a
	}
	if math.IsInf(a, -1) { // both arguments are log(0)
		return a
	}
	if d := b - a; d > cutoff {
		return a + math.Log1p(math.Exp(d))
	}
	return a
}

// Sum returns the log of the summed probabilities of a whole slice.
func Sum(x []float64) float64 {
	t := Zero
	for _, v := range x {
		t = Add(t, v)
	}
	return t
}

// Bad says whether a number could not be a log probability. NaN means
// somebody divided zero by zero. Anything above zero would be a
// probability bigger than one, which we also treat as an accident,
// although rounding can push a sum to a tiny positive value, so we
// allow a little slack.
func Bad(x float64) bool {
	const slack = 1e-9
	return math.IsNaN(x) || x > slack
}
