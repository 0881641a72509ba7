// 9 Feb 2024

package cnv_test

import (
	"os"
	"strings"
	"testing"

	. "github.com/andrew-torda/seqhmm/pkg/cnv"
)

// burstReads builds a read stream that is background noise except for
// one clear amplification, with every read class showing up both
// inside and outside it so no frequency estimate comes out zero.
func burstReads() []int {
	var reads []int
	pad := func(n int) {
		for i := 0; i < n; i++ {
			reads = append(reads, 0)
		}
	}
	pad(10)
	reads = append(reads, 1)
	pad(5)
	reads = append(reads, 2)
	pad(20)
	// the amplification
	reads = append(reads, 3, 3, 3, 1, 3, 3, 0, 2, 3, 3, 3, 3)
	pad(17)
	reads = append(reads, 3) // a stray high site, background for class 3
	pad(20)
	return reads
}

func TestMymain(t *testing.T) {
	outfile, err := os.CreateTemp("", "_del_me_testing")
	if err != nil {
		t.Fatal(err)
	}
	outfile.Close()
	defer os.Remove(outfile.Name())
	plotfile := outfile.Name() + ".png"
	defer os.Remove(plotfile)

	flags := CmdFlag{
		FirstPass:  10,
		SecondPass: 8,
		NZero:      50,
		Seed:       1637,
		PlotFile:   plotfile,
	}
	if err := Mymain(&flags, burstReads(), outfile.Name()); err != nil {
		t.Fatal("bust on simple test:", err)
	}
	out, err := os.ReadFile(outfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Background frequencies:",
		"Target frequencies:",
		"Scoring scheme:",
		">=3=",
		"Real data:",
		"Simulated data:",
		"Ratios of simulated data:",
		"N_seg(5)/N_seg(6)",
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %q", want)
		}
	}
	if fi, err := os.Stat(plotfile); err != nil || fi.Size() == 0 {
		t.Error("plot file not written")
	}
}

// With nothing but zero reads there are no elevated sites and no way
// to estimate target frequencies.
func TestMymainAllZero(t *testing.T) {
	flags := CmdFlag{FirstPass: 10, SecondPass: 8}
	if err := Mymain(&flags, make([]int, 100), ""); err == nil {
		t.Error("all-zero reads accepted")
	}
}
