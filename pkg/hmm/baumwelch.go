// 22 Jan 2024

package hmm

import (
	"fmt"
	"math"

	"github.com/andrew-torda/seqhmm/pkg/logspace"
)

// DefaultMaxIter caps the training loop. Baum-Welch always converges
// in exact arithmetic, but floating point near a flat optimum can
// dither forever, so there has to be a ceiling.
const DefaultMaxIter = 1000

// Result says what Train did.
type Result struct {
	Iterations    int
	LogLikelihood float64 // likelihood under the parameters before the last update
}

// Estimate is one Baum-Welch step. It overwrites the model in place
// using the forward and backward tables and the total log likelihood.
// gamma[t][s] is the expected occupancy of state s at position t, the
// xi accumulators are expected transition counts, both still in log
// space throughout.
func (m *Model) Estimate(syms []string, fwd, bwd [][]float64, ll float64) error {
	n := len(syms)
	k := m.NState()

	gamma := newTable(n, k)
	for t := 0; t < n; t++ {
		for s := 0; s < k; s++ {
			gamma[t][s] = fwd[t][s] + bwd[t][s] - ll
		}
	}

	newStart := make([]float64, k)
	copy(newStart, gamma[0])

	// Transitions need at least one adjacent pair of positions. On a
	// length one sequence there is nothing to estimate from, so the
	// old values stay.
	var newTrans [][]float64
	if n >= 2 {
		newTrans = newTable(k, k)
		for s := 0; s < k; s++ {
			occ := logspace.Zero // time spent in s, all but the last position
			for t := 0; t < n-1; t++ {
				occ = logspace.Add(occ, gamma[t][s])
			}
			for sn := 0; sn < k; sn++ {
				xi := logspace.Zero
				for t := 0; t < n-1; t++ {
					xi = logspace.Add(xi,
						fwd[t][s]+m.Trans[s][sn]+m.Emit[sn][syms[t+1]]+bwd[t+1][sn]-ll)
				}
				newTrans[s][sn] = xi - occ
				if logspace.Bad(newTrans[s][sn]) {
					return fmt.Errorf("%w: transition %d to %d re-estimated as %g",
						ErrNumerical, s, sn, newTrans[s][sn])
				}
			}
		}
	}

	newEmit := make([]map[string]float64, k)
	for s := 0; s < k; s++ {
		bySym := make(map[string]float64, len(m.Emit[s]))
		for sym := range m.Emit[s] {
			bySym[sym] = logspace.Zero
		}
		occ := logspace.Zero // time spent in s, the whole sequence this time
		for t := 0; t < n; t++ {
			bySym[syms[t]] = logspace.Add(bySym[syms[t]], gamma[t][s])
			occ = logspace.Add(occ, gamma[t][s])
		}
		for sym := range bySym {
			bySym[sym] -= occ
			if logspace.Bad(bySym[sym]) {
				return fmt.Errorf("%w: emission of %q in state %d re-estimated as %g",
					ErrNumerical, sym, s, bySym[sym])
			}
		}
		newEmit[s] = bySym
	}

	copy(m.Start, newStart)
	if newTrans != nil {
		for s := range m.Trans {
			copy(m.Trans[s], newTrans[s])
		}
	}
	m.Emit = newEmit
	return nil
}

// Train runs forward, backward, likelihood and re-estimation until the
// likelihood stops moving by more than eps between iterations, always
// at least one full iteration. maxiter below 1 means DefaultMaxIter.
// If the cap runs out the model keeps the best parameters found so far
// and an ErrNoConverge comes back with them, so the caller can decide
// whether that is fatal.
func (m *Model) Train(syms []string, eps float64, maxiter int) (Result, error) {
	var res Result
	if eps <= 0 {
		return res, fmt.Errorf("%w: convergence threshold %g, must be positive", ErrInvalidInput, eps)
	}
	if maxiter < 1 {
		maxiter = DefaultMaxIter
	}
	if err := m.Validate(); err != nil {
		return res, err
	}
	prev := math.Inf(1)
	for n := 0; n < maxiter; n++ {
		fwd, err := m.Forward(syms)
		if err != nil {
			return res, fmt.Errorf("iteration %d: %w", n+1, err)
		}
		bwd, err := m.Backward(syms)
		if err != nil {
			return res, fmt.Errorf("iteration %d: %w", n+1, err)
		}
		ll := LogLikelihood(fwd)
		if logspace.Bad(ll) {
			return res, fmt.Errorf("%w: iteration %d: log likelihood %g",
				ErrNumerical, n+1, ll)
		}
		if err := m.Estimate(syms, fwd, bwd, ll); err != nil {
			return res, fmt.Errorf("iteration %d: %w", n+1, err)
		}
		res.Iterations = n + 1
		res.LogLikelihood = ll
		if n > 0 && math.Abs(prev-ll) <= eps {
			return res, nil
		}
		prev = ll
	}
	return res, fmt.Errorf("%w after %d iterations, likelihood still moving", ErrNoConverge, res.Iterations)
}
