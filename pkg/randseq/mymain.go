// 12 Feb 2024

package randseq

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andrew-torda/seqhmm/pkg/hmm"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	N      int   // how many symbols to emit
	Seed   int64 // random number seed
	States bool  // also write the hidden state path
}

const lineLen = 60

// dfltModel has one A/T rich state and one G/C rich state, sticky
// enough that both leave runs long enough to be worth decoding.
func dfltModel() *hmm.Model {
	return hmm.New(
		[]float64{0.9, 0.1},
		[][]float64{{0.95, 0.05}, {0.10, 0.90}},
		[]map[string]float64{
			{"A": 0.4, "T": 0.4, "G": 0.1, "C": 0.1},
			{"A": 0.1, "T": 0.1, "G": 0.4, "C": 0.4},
		})
}

func wrtWrapped(fp io.Writer, s string) {
	for len(s) > lineLen {
		fmt.Fprintln(fp, s[:lineLen])
		s = s[lineLen:]
	}
	fmt.Fprintln(fp, s)
}

// Mymain is the main function for generating a test sequence.
func Mymain(flags *CmdFlag, outfile string) error {
	if flags.N < 1 {
		return fmt.Errorf("sequence length %d, want at least 1", flags.N)
	}
	m := dfltModel()
	syms, states := Sample(m, flags.N, flags.Seed)

	var fp io.WriteCloser = os.Stdout
	var err error
	if outfile != "" && outfile != "-" {
		if fp, err = os.Create(outfile); err != nil {
			return fmt.Errorf("output file %v: %w", outfile, err)
		}
		defer fp.Close()
	}

	fmt.Fprintf(fp, "> simulated, %d bases, seed %d\n", flags.N, flags.Seed)
	wrtWrapped(fp, strings.Join(syms, ""))
	if flags.States {
		var sb strings.Builder
		for _, s := range states {
			fmt.Fprintf(&sb, "%d", s)
		}
		fmt.Fprintf(fp, "> states\n")
		wrtWrapped(fp, sb.String())
	}
	return nil
}
