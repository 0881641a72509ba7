// 16 Jan 2024

package seqio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadCounts reads a table of tab separated symbol and count lines,
// the raw material for an empirical emission distribution.
func ReadCounts(fname string) (map[string]int, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()

	counts := make(map[string]int)
	scanner := bufio.NewScanner(fp)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sym, num, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("%s line %d: %q is not symbol<tab>count", fname, lineno, line)
		}
		n, err := strconv.Atoi(strings.TrimSpace(num))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", fname, lineno, err)
		}
		if n < 0 {
			return nil, fmt.Errorf("%s line %d: negative count %d", fname, lineno, n)
		}
		counts[sym] = n
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if len(counts) == 0 {
		return nil, fmt.Errorf("no counts in %s", fname)
	}
	return counts, nil
}

// ReadDepth reads a pileup style file of whitespace separated
// chromosome, position and read count columns. It returns the
// positions and counts in file order. Sites missing from the file are
// simply absent, the caller knows whether that means zero reads.
func ReadDepth(fname string) (positions, reads []int, err error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	defer fp.Close()

	scanner := bufio.NewScanner(fp)
	lineno := 0
	for scanner.Scan() {
		lineno++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, nil, fmt.Errorf("%s line %d: want chr, position, count", fname, lineno)
		}
		pos, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", fname, lineno, err)
		}
		n, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", fname, lineno, err)
		}
		positions = append(positions, pos)
		reads = append(reads, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", fname, err)
	}
	if len(positions) == 0 {
		return nil, nil, fmt.Errorf("no sites in %s", fname)
	}
	return positions, reads, nil
}
