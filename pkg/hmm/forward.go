// 19 Jan 2024

package hmm

import (
	"fmt"

	"github.com/andrew-torda/seqhmm/pkg/logspace"
)

// Forward fills the n x k table whose (t, s) entry is the log
// probability of emitting the prefix up to and including position t
// and sitting in state s, summed over all paths. Row 0 comes from the
// start probabilities, every later row only looks at the one before
// it.
func (m *Model) Forward(syms []string) ([][]float64, error) {
	if err := m.checkSeq(syms); err != nil {
		return nil, err
	}
	k := m.NState()
	fwd := newTable(len(syms), k)
	for s := 0; s < k; s++ {
		fwd[0][s] = m.Start[s] + m.Emit[s][syms[0]]
	}
	for t := 1; t < len(syms); t++ {
		for s := 0; s < k; s++ {
			sum := logspace.Zero
			for sp := 0; sp < k; sp++ {
				sum = logspace.Add(sum, fwd[t-1][sp]+m.Trans[sp][s])
			}
			fwd[t][s] = sum + m.Emit[s][syms[t]]
			if logspace.Bad(fwd[t][s]) {
				return nil, fmt.Errorf("%w: forward value %g at position %d, state %d",
					ErrNumerical, fwd[t][s], t, s)
			}
		}
	}
	return fwd, nil
}

// Backward fills the n x k table whose (t, s) entry is the log
// probability of emitting everything after position t, given state s
// at position t. The last row is log(1) for every state and the
// recursion runs right to left.
func (m *Model) Backward(syms []string) ([][]float64, error) {
	if err := m.checkSeq(syms); err != nil {
		return nil, err
	}
	k := m.NState()
	n := len(syms)
	bwd := newTable(n, k)
	// Row n-1 is all zeroes already, which is log(1).
	for t := n - 2; t >= 0; t-- {
		for s := 0; s < k; s++ {
			sum := logspace.Zero
			for sn := 0; sn < k; sn++ {
				sum = logspace.Add(sum, bwd[t+1][sn]+m.Trans[s][sn]+m.Emit[sn][syms[t+1]])
			}
			bwd[t][s] = sum
			if logspace.Bad(sum) {
				return nil, fmt.Errorf("%w: backward value %g at position %d, state %d",
					ErrNumerical, sum, t, s)
			}
		}
	}
	return bwd, nil
}

// LogLikelihood is the log probability of the whole sequence, read off
// the last row of a forward table. This is the one convention used
// everywhere, including the convergence check in Train. The same
// number can be had from a backward table, and the tests check that
// the two agree.
func LogLikelihood(fwd [][]float64) float64 {
	return logspace.Sum(fwd[len(fwd)-1])
}
