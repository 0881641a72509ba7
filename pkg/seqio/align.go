// 15 Jan 2024

package seqio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Alignment is a multi-species alignment flattened into one composite
// symbol per column, the characters of all species at that column
// stuck together. Start and End are the genomic coordinates of the
// first and last column.
type Alignment struct {
	Cols  []string
	Start int
	End   int
}

// parseRange pulls the coordinates out of a block header that looks
// like "# chrX:152767491-152767698".
func parseRange(line string) (start, end int, err error) {
	_, coords, ok := strings.Cut(line, ":")
	if !ok {
		return 0, 0, fmt.Errorf("no colon in block header %q", line)
	}
	lo, hi, ok := strings.Cut(coords, "-")
	if !ok {
		return 0, 0, fmt.Errorf("no range in block header %q", line)
	}
	if start, err = strconv.Atoi(strings.TrimSpace(lo)); err != nil {
		return 0, 0, fmt.Errorf("block header %q: %w", line, err)
	}
	if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
		return 0, 0, fmt.Errorf("block header %q: %w", line, err)
	}
	return start, end, nil
}

// ReadAlignment reads blocks of the form
//
//	# chr:start-end
//	species1<tab>ACGT...
//	species2<tab>ATGT...
//
// and returns the columns of all blocks concatenated. Every row of a
// block must be the same length or the columns would not mean
// anything. The Start comes from the first block, the End from the
// last.
func ReadAlignment(fname string) (*Alignment, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	aln := &Alignment{Start: -1}
	var rows [][]byte
	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		for _, r := range rows[1:] {
			if len(r) != len(rows[0]) {
				return fmt.Errorf("%s: block rows of length %d and %d", fname, len(rows[0]), len(r))
			}
		}
		var sb strings.Builder
		for i := 0; i < len(rows[0]); i++ {
			sb.Reset()
			for _, r := range rows {
				sb.WriteByte(r[i])
			}
			aln.Cols = append(aln.Cols, sb.String())
		}
		rows = rows[:0]
		return nil
	}

	scanner := bufio.NewScanner(fp)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := flush(); err != nil {
				return nil, err
			}
			start, end, err := parseRange(line)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", fname, err)
			}
			if aln.Start < 0 {
				aln.Start = start
			}
			aln.End = end
			continue
		}
		_, seq, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s: alignment row %q has no tab", fname, line)
		}
		rows = append(rows, []byte(seq))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(aln.Cols) == 0 {
		return nil, fmt.Errorf("no alignment blocks in %s", fname)
	}
	return aln, nil
}
