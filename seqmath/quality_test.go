package seqmath

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProbTablesComplementary(t *testing.T) {
	m := NewModel()
	for q := 0; q < MaxQuality; q++ {
		pc, err := m.CorrectProbForQ(q)
		if err != nil {
			t.Fatalf("CorrectProbForQ(%d): %v", q, err)
		}
		pe, err := m.ErrorProbForQ(q)
		if err != nil {
			t.Fatalf("ErrorProbForQ(%d): %v", q, err)
		}
		if math.Abs(pc+pe-1) > 1e-9 {
			t.Fatalf("P(correct)+P(error) = %v for Q=%d, want 1", pc+pe, q)
		}
	}
}

func TestKnownProbValues(t *testing.T) {
	tests := []struct {
		qual    int
		correct float64
		errProb float64
	}{
		{0, 0.0, 1.0},
		{10, 0.9, 0.1},
		{20, 0.99, 0.01},
		{30, 0.999, 0.001},
	}
	for _, tt := range tests {
		pc, err := CorrectProbForQ(tt.qual)
		assert.NoError(t, err)
		assert.InDelta(t, tt.correct, pc, 1e-9, "P(correct) for Q=%d", tt.qual)

		pe, err := ErrorProbForQ(tt.qual)
		assert.NoError(t, err)
		assert.InDelta(t, tt.errProb, pe, 1e-9, "P(error) for Q=%d", tt.qual)
	}
}

func TestErrorProbMonotonic(t *testing.T) {
	m := NewModel()
	prev := math.Inf(1)
	for q := 0; q < MaxQuality; q++ {
		pe, err := m.ErrorProbForQ(q)
		if err != nil {
			t.Fatalf("ErrorProbForQ(%d): %v", q, err)
		}
		if pe > prev {
			t.Fatalf("P(error) rose from %v to %v at Q=%d", prev, pe, q)
		}
		prev = pe
	}
}

func TestProbLookupBounds(t *testing.T) {
	for _, q := range []int{-1, MaxQuality, MaxQuality + 7, -100} {
		_, err := ErrorProbForQ(q)
		assert.ErrorIs(t, err, ErrQualOutOfRange, "ErrorProbForQ(%d)", q)

		_, err = CorrectProbForQ(q)
		assert.ErrorIs(t, err, ErrQualOutOfRange, "CorrectProbForQ(%d)", q)
	}
}

func TestLog10ErrorProb(t *testing.T) {
	tests := []struct {
		qual float64
		want float64
	}{
		{0, 0},
		{10, -1},
		{20, -2},
		{25.5, -2.55},
		{200, -20}, // beyond the encodable range, still defined
	}
	for _, tt := range tests {
		if got := Log10ErrorProb(tt.qual); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Log10ErrorProb(%v) = %v, want %v", tt.qual, got, tt.want)
		}
	}
}

func TestSumLog10ProbsSingle(t *testing.T) {
	for _, x := range []float64{0, -1, -300, 2.5, -0.30103} {
		got, err := SumLog10Probs([]float64{x})
		assert.NoError(t, err)
		assert.Equal(t, x, got, "single-element sum must be the identity")
	}
}

func TestSumLog10ProbsHalves(t *testing.T) {
	half := math.Log10(0.5)
	got, err := SumLog10Probs([]float64{half, half})
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, got, 1e-9, "0.5 + 0.5 should sum to 1 in log space")
}

func TestSumLog10ProbsEmpty(t *testing.T) {
	_, err := SumLog10Probs(nil)
	assert.ErrorIs(t, err, ErrNoLogProbs)

	_, err = SumLog10Probs([]float64{})
	assert.ErrorIs(t, err, ErrNoLogProbs)
}

func TestSumLog10ProbsUnderflow(t *testing.T) {
	// Naive 10^x on these underflows to zero; the shifted form must not.
	got, err := SumLog10Probs([]float64{-300.0, -300.1, -299.9})
	assert.NoError(t, err)
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("sum of tiny log probabilities is not finite: %v", got)
	}
	assert.InDelta(t, -299.5152, got, 1e-3)
}

func TestSumLog10ProbsInfinities(t *testing.T) {
	posInf := math.Inf(1)
	negInf := math.Inf(-1)

	got, err := SumLog10Probs([]float64{-1, posInf, -300})
	assert.NoError(t, err)
	assert.Equal(t, posInf, got)

	got, err = SumLog10Probs([]float64{negInf, negInf})
	assert.NoError(t, err)
	assert.Equal(t, negInf, got)
}

func TestSharedModelConcurrentReads(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for q := 0; q < MaxQuality; q++ {
				pe, err := ErrorProbForQ(q)
				if err != nil {
					t.Errorf("ErrorProbForQ(%d): %v", q, err)
					return
				}
				want := math.Pow(10, -1*float64(q)/10)
				if math.Abs(pe-want) > 1e-9 {
					t.Errorf("ErrorProbForQ(%d) = %v, want %v", q, pe, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}
