// 29 Jan 2024

// Package randseq generates synthetic observation sequences from a
// known model. That is how the estimation machinery gets tested, by
// generating from known parameters and asking whether training finds
// them again, and how the segmentation code gets its simulated data.
package randseq

import (
	"math"
	"math/rand"

	"github.com/andrew-torda/seqhmm/pkg/hmm"
)

// pick draws an index from a probability distribution given as a
// slice of probabilities. Rounding can make the sum fall a hair short
// of one, in which case the last entry soaks up the remainder.
func pick(probs []float64, rnd *rand.Rand) int {
	r := rnd.Float64()
	var cum float64
	for i, p := range probs {
		cum += p
		if r < cum {
			return i
		}
	}
	return len(probs) - 1
}

// Sample walks a state path of length n through the model and emits a
// symbol at each step. It returns the observations and the true states
// that produced them. The same seed gives the same sequence.
func Sample(m *hmm.Model, n int, seed int64) (syms []string, states []int) {
	rnd := rand.New(rand.NewSource(seed))
	alpha := m.Alphabet()
	k := m.NState()

	// Probability space copies with a fixed symbol order, so the draw
	// is reproducible. Map iteration order is not.
	emit := make([][]float64, k)
	for s := 0; s < k; s++ {
		emit[s] = make([]float64, len(alpha))
		for i, sym := range alpha {
			emit[s][i] = math.Exp(m.Emit[s][sym])
		}
	}
	trans := m.TransProbs()

	syms = make([]string, n)
	states = make([]int, n)
	state := pick(m.StartProbs(), rnd)
	for t := 0; t < n; t++ {
		if t > 0 {
			state = pick(trans[state], rnd)
		}
		states[t] = state
		syms[t] = alpha[pick(emit[state], rnd)]
	}
	return syms, states
}
