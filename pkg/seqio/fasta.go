// 12 Jan 2024

// Package seqio reads the input formats the rest of the code wants,
// fasta files, alignment blocks, emission count tables and read depth
// pileups. Nothing here knows what the data means, it just turns
// files into slices and complains early when a file is not what it
// claims to be.
package seqio

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// ReadFasta slurps a fasta file and returns one upper-cased sequence,
// everything after the first comment line concatenated. We map the
// file rather than buffering reads. These files can be whole
// chromosomes and mapping lets the kernel worry about it.
func ReadFasta(fname string) (seq []byte, name string, err error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, "", err
	}
	defer fp.Close()
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, "", fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()

	seq = make([]byte, 0, len(mm)) // copied out, mm goes away on return
	for _, line := range bytes.Split(mm, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if name == "" {
				name = string(bytes.TrimSpace(line[1:]))
			}
			continue
		}
		seq = append(seq, bytes.ToUpper(line)...)
	}
	if len(seq) == 0 {
		return nil, "", fmt.Errorf("no sequence in %s", fname)
	}
	return seq, name, nil
}

// Letters splits a byte sequence into the one-character symbol strings
// the model machinery works on.
func Letters(seq []byte) []string {
	syms := make([]string, len(seq))
	for i, c := range seq {
		syms[i] = string(c)
	}
	return syms
}
