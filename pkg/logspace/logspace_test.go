// 11 Jan 2024

package logspace_test

import (
	"math"
	"math/rand"
	"testing"

	. "github.com/andrew-torda/seqhmm/pkg/logspace"
	"gonum.org/v1/gonum/floats"
)

// closeEnough is our definition of equal for numbers that went through
// a logarithm.
func closeEnough(x, y float64) bool {
	const eps = 1e-12
	return math.Abs(x-y) <= eps
}

// TestAddSmall checks against the naive calculation in a range where
// exp() does not underflow.
func TestAddSmall(t *testing.T) {
	pairs := [][2]float64{
		{math.Log(0.5), math.Log(0.5)},
		{math.Log(0.3), math.Log(0.7)},
		{-1, -2}, {-20, -1}, {0, 0}, {-5, -5},
	}
	for _, p := range pairs {
		want := math.Log(math.Exp(p[0]) + math.Exp(p[1]))
		if got := Add(p[0], p[1]); !closeEnough(got, want) {
			t.Errorf("Add(%g, %g) got %g want %g", p[0], p[1], got, want)
		}
	}
}

// TestCommute feeds random pairs both ways around and also compares
// with the gonum log-sum-exp, which is an independent implementation.
func TestCommute(t *testing.T) {
	rnd := rand.New(rand.NewSource(1637))
	for i := 0; i < 1000; i++ {
		a := -rnd.Float64() * 100
		b := -rnd.Float64() * 100
		if Add(a, b) != Add(b, a) {
			t.Fatalf("Add not commutative for %g, %g", a, b)
		}
		if got, want := Add(a, b), floats.LogSumExp([]float64{a, b}); !closeEnough(got, want) {
			t.Errorf("Add(%g, %g) got %g, gonum says %g", a, b, got, want)
		}
	}
}

// Adding log(0) must return the other argument, bit for bit.
func TestIdentity(t *testing.T) {
	for _, a := range []float64{0, -1, -700, -1e30} {
		if got := Add(a, Zero); got != a {
			t.Errorf("Add(%g, Zero) got %g", a, got)
		}
		if got := Add(Zero, a); got != a {
			t.Errorf("Add(Zero, %g) got %g", a, got)
		}
	}
	if got := Add(Zero, Zero); !math.IsInf(got, -1) {
		t.Errorf("Add(Zero, Zero) got %g", got)
	}
}

// A difference beyond the underflow boundary must return the larger
// argument unchanged.
func TestFarApart(t *testing.T) {
	if got := Add(-3, -900); got != -3 {
		t.Errorf("far apart got %g want -3", got)
	}
}

func TestEqualArgs(t *testing.T) {
	want := -4 + math.Log(2)
	if got := Add(-4, -4); !closeEnough(got, want) {
		t.Errorf("Add(-4, -4) got %g want %g", got, want)
	}
}

func TestSum(t *testing.T) {
	x := []float64{math.Log(0.1), math.Log(0.2), math.Log(0.3), math.Log(0.4)}
	if got := Sum(x); !closeEnough(got, 0) {
		t.Errorf("Sum of a full distribution got %g want 0", got)
	}
	if got := Sum(nil); !math.IsInf(got, -1) {
		t.Errorf("Sum of nothing got %g", got)
	}
}

func TestBad(t *testing.T) {
	if Bad(-5) || Bad(0) || Bad(Zero) {
		t.Error("Bad flagged a legitimate log probability")
	}
	if !Bad(math.NaN()) || !Bad(math.Inf(1)) || !Bad(1.0) {
		t.Error("Bad missed an impossible value")
	}
}
