// 2 Feb 2024

package bwtrain_test

import (
	"os"
	"strings"
	"testing"

	. "github.com/andrew-torda/seqhmm/pkg/bwtrain"
	"github.com/andrew-torda/seqhmm/pkg/common"
)

const fasta = `> test seq
AATATATTAATTTAAATATTAAGGCGCGGGCCCGGCGCGTAATATATAAT
TTAATATATTGGGCGCGCCCGCGGGGCCCGCGAATATTTAATATATATTA`

// Write a small sequence, run the whole thing and make sure the
// report has all its sections.
func TestMymain(t *testing.T) {
	infile, err := common.WrtTemp(fasta)
	if err != nil {
		t.Fatal("fail writing test file")
	}
	defer os.Remove(infile)
	outfile := infile + "_out"
	defer os.Remove(outfile)

	flags := CmdFlag{Eps: 0.1, MaxIter: 200}
	if err := Mymain(&flags, infile, outfile); err != nil {
		t.Fatal("bust on simple test:", err)
	}
	out, err := os.ReadFile(outfile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"Iterations for Convergence:",
		"Log Likelihood:",
		"Initial State Probabilities:",
		"Transition Probabilities:",
		"Emission Probabilities:",
		"1,A=", "2,G=",
	} {
		if !strings.Contains(string(out), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestMymainNoFile(t *testing.T) {
	flags := CmdFlag{Eps: 0.1}
	if err := Mymain(&flags, "/no/such/file/anywhere", ""); err == nil {
		t.Error("missing input file accepted")
	}
}
