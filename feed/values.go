package feed

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"math/rand/v2"
	"strconv"

	"github.com/npillmayer/clustree"
)

// RandomValues returns a sequence of n pseudo-random values in [0, max).
// Sequences with the same seed are identical.
func RandomValues(seed uint64, n, max int) iter.Seq[int] {
	return func(yield func(int) bool) {
		if max <= 0 {
			return
		}
		rnd := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
		for range n {
			if !yield(rnd.IntN(max)) {
				return
			}
		}
	}
}

// ReadValues reads whitespace separated integers from r.
func ReadValues(r io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var values []int
	for scanner.Scan() {
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return values, fmt.Errorf("%w: input %d is not an integer: %q",
				clustree.ErrIllegalArguments, len(values)+1, scanner.Text())
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return values, err
	}
	return values, nil
}
