// 9 Feb 2024

package cnv

import (
	"fmt"
	"io"
	"os"
	"sort"
)

// CmdFlag is literally command line flags after parsing
type CmdFlag struct {
	FirstPass  float64 // fall-off for the scheme-estimation scan
	SecondPass float64 // fall-off for the reporting scan
	NZero      int     // zero-read sites the pileup leaves out
	Seed       uint64  // seed for the simulated comparison run
	PlotFile   string  // optional histogram plot of real segment scores
}

// DefaultScheme scores per-site read classes before any frequencies
// have been estimated from the data, a bootstrap for the first pass.
var DefaultScheme = Scheme{0: -0.1077, 1: 0.47720, 2: 1.0622, 3: 1.6748}

// The survival histogram range, the interesting scores in this data.
const (
	histLo = 5
	histHi = 30
)

func printFreqs(fp io.Writer, what string, freqs map[int]float64) {
	fmt.Fprintf(fp, "\n%s:\n", what)
	classes := make([]int, 0, len(freqs))
	for c := range freqs {
		classes = append(classes, c)
	}
	sort.Ints(classes)
	for _, c := range classes {
		if c == MaxClass {
			fmt.Fprintf(fp, ">=%d=%.4f\n", c, freqs[c])
		} else {
			fmt.Fprintf(fp, "%d=%.4f\n", c, freqs[c])
		}
	}
}

func printSurvival(fp io.Writer, counts []int) {
	for i, n := range counts {
		fmt.Fprintf(fp, "%d %d\n", histLo+i, n)
	}
}

func printRatios(fp io.Writer, ratios []float64) {
	for i, r := range ratios {
		fmt.Fprintf(fp, "N_seg(%d)/N_seg(%d) %.2f\n", histLo+i, histLo+i+1, r)
	}
}

// Mymain is the main function for copy number segmentation. The first
// scan uses the bootstrap scheme only to decide which sites look
// elevated, the frequencies of those sites against the rest give the
// real scheme, and the second scan produces the reported segments. A
// simulated stream of background noise is scanned the same way, as
// the yardstick for how many strong segments chance alone gives you.
func Mymain(flags *CmdFlag, reads []int, outfile string) error {
	var fp io.WriteCloser = os.Stdout
	var err error
	if outfile != "" && outfile != "-" {
		if fp, err = os.Create(outfile); err != nil {
			return fmt.Errorf("output file %v: %w", outfile, err)
		}
		defer fp.Close()
	}

	first := Scan(reads, DefaultScheme, flags.FirstPass)
	background, err := first.BackgroundFreqs(flags.NZero)
	if err != nil {
		return err
	}
	elevated, err := first.ElevatedFreqs()
	if err != nil {
		return err
	}
	scheme := NewScheme(elevated, background)

	printFreqs(fp, "Background frequencies", background)
	printFreqs(fp, "Target frequencies", elevated)
	printFreqs(fp, "Scoring scheme", scheme)

	second := Scan(reads, scheme, flags.SecondPass)
	fmt.Fprintln(fp, "\nReal data:")
	printSurvival(fp, Survival(second.Segs, histLo, histHi))

	nBackground := flags.NZero
	for c, n := range first.Total {
		nBackground += n - first.Elevated[c]
	}
	sim := Simulate(nBackground, background, scheme, flags.SecondPass, flags.Seed)
	fmt.Fprintln(fp, "\nSimulated data:")
	printSurvival(fp, Survival(sim.Segs, histLo, histHi))
	fmt.Fprintln(fp, "\nRatios of simulated data:")
	printRatios(fp, Ratios(Survival(sim.Segs, histLo, histHi)))

	if flags.PlotFile != "" {
		if err := WriteHist(flags.PlotFile, second.Segs); err != nil {
			return fmt.Errorf("plotting: %w", err)
		}
	}
	return nil
}
