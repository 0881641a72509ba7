// 7 Feb 2024

package cnv

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Simulate draws n sites of read counts from the background class
// frequencies and scans them exactly the way the real data was
// scanned. If the real segment scores die off no faster than the
// simulated ones, they are probably noise.
func Simulate(n int, background map[int]float64, sch Scheme, fallOff float64, seed uint64) *Hist {
	weights := make([]float64, MaxClass+1)
	for c := 0; c <= MaxClass; c++ {
		weights[c] = background[c]
	}
	src := rand.NewSource(seed)
	cat := distuv.NewCategorical(weights, src)

	reads := make([]int, n)
	for i := range reads {
		reads[i] = int(cat.Rand())
	}
	return Scan(reads, sch, fallOff)
}
