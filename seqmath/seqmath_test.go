package seqmath

import "testing"

func TestNxx(t *testing.T) {
	seqLens := []int{1, 2, 3, 4, 10}
	nxx := Nxx(seqLens, 20)

	tests := []struct {
		n    int
		want int
	}{
		{1, 10},
		{50, 10},
		{70, 4},
		{75, 3},
		{90, 2},
		{99, 1},
	}
	for _, tt := range tests {
		if nxx[tt.n] != tt.want {
			t.Errorf("N%d = %d, want %d", tt.n, nxx[tt.n], tt.want)
		}
	}
}

func TestNxxUnsortedInput(t *testing.T) {
	a := Nxx([]int{10, 1, 4, 2, 3}, 20)
	b := Nxx([]int{1, 2, 3, 4, 10}, 20)
	for n := 1; n < 100; n++ {
		if a[n] != b[n] {
			t.Fatalf("N%d differs for unsorted input: %d vs %d", n, a[n], b[n])
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		seqLens []int
		want    int
	}{
		{[]int{7}, 7},
		{[]int{2, 4}, 3},
		{[]int{1, 5, 9}, 5},
		{[]int{1, 2, 3, 100}, 2},
		{[]int{1, 1, 2, 8, 9}, 2},
	}
	for _, tt := range tests {
		if got := Median(tt.seqLens); got != tt.want {
			t.Errorf("Median(%v) = %d, want %d", tt.seqLens, got, tt.want)
		}
	}
}
