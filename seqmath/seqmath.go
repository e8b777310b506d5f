package seqmath

import (
	"sort"
)

// Nxx returns an int slice with all values N1..N50..N99 calculated for the input slice
// of sequence lengths. The input slice does not need to be sorted, but the total length
// must also be passed to avoid a second pass.
func Nxx(seqLens []int, totalSeqLength int) (nxx []int) {
	nxx = make([]int, 100)
	var sls = seqLens
	if !sort.IntsAreSorted(sls) {
		sort.Ints(sls)
	}
	var cumLen int = 0
	var n = 1
	for i := range sls {
		l := sls[len(sls)-1-i]
		cumLen += l
		for n < 100 && float64(cumLen) >= float64(n)*0.01*float64(totalSeqLength) {
			nxx[n] = l
			n++
		}
	}
	return nxx
}

// Median returns the median of a sorted slice of sequence lengths.
func Median(seqLens []int) (median int) {
	var n = len(seqLens)

	switch {
	case n == 1:
		return seqLens[0]
	case n&1 == 0:
		return (seqLens[n/2] + seqLens[n/2-1]) / 2
	default:
		return seqLens[n/2]
	}
}
