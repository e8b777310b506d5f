package seqmath

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// MaxQuality is the number of distinct Phred scores a Sanger-encoded FASTQ
// quality string can carry: characters '!' through '~' map to scores 0
// through 93.
const MaxQuality = 94

var (
	// ErrQualOutOfRange reports a table lookup with a quality score
	// outside [0, MaxQuality).
	ErrQualOutOfRange = errors.New("quality score out of range")
	// ErrNoLogProbs reports a log-probability sum over zero terms.
	ErrNoLogProbs = errors.New("no log probabilities given")
)

// Model caches P(error) and P(correct) for every representable Phred score.
// A Model never changes after construction, so any number of goroutines may
// read it without locking.
type Model struct {
	correct   []float64
	incorrect []float64
}

// NewModel pre-computes the expensive P(e) for every Q in [0, MaxQuality).
func NewModel() *Model {
	m := &Model{
		correct:   make([]float64, MaxQuality),
		incorrect: make([]float64, MaxQuality),
	}
	for q := range m.correct {
		m.correct[q] = 1 - math.Pow(10, -1*float64(q)/10)
		m.incorrect[q] = 1 - m.correct[q]
	}
	return m
}

var (
	defaultModel     *Model
	defaultModelOnce sync.Once
)

func getModel() *Model {
	defaultModelOnce.Do(func() { defaultModel = NewModel() })
	return defaultModel
}

// ErrorProbForQ returns the probability that a base called with quality qual
// is wrong.
func (m *Model) ErrorProbForQ(qual int) (prob float64, err error) {
	if qual < 0 || qual >= MaxQuality {
		return 0, fmt.Errorf("quality value %v out of bounds [0,%v): %w", qual, MaxQuality, ErrQualOutOfRange)
	}
	return m.incorrect[qual], nil
}

// CorrectProbForQ returns the probability that a base called with quality
// qual is right.
func (m *Model) CorrectProbForQ(qual int) (prob float64, err error) {
	if qual < 0 || qual >= MaxQuality {
		return 0, fmt.Errorf("quality value %v out of bounds [0,%v): %w", qual, MaxQuality, ErrQualOutOfRange)
	}
	return m.correct[qual], nil
}

// Log10ErrorProb converts a Phred score to its base-10 log error
// probability. The score need not be an integer nor lie in the encodable
// range; this is the direct Q = -10*log10(P) relation, not a table lookup.
func Log10ErrorProb(qual float64) float64 {
	return qual / -10
}

// SumLog10Probs returns log10 of the sum of the probabilities whose base-10
// logs are given, without leaving log space. The largest term is factored
// out before exponentiating, so every intermediate 10^x stays in (0,1] and
// tiny probabilities do not underflow to zero.
func SumLog10Probs(logProbs []float64) (float64, error) {
	if len(logProbs) == 0 {
		return 0, fmt.Errorf("sum of log probabilities: %w", ErrNoLogProbs)
	}
	max := logProbs[0]
	for _, lp := range logProbs[1:] {
		if lp > max {
			max = lp
		}
	}
	if math.IsInf(max, 0) {
		// +Inf dominates any sum; -Inf here means every term is a
		// zero probability, and a sum of zeros is zero.
		return max, nil
	}
	var sum float64
	for _, lp := range logProbs {
		sum += math.Pow(10, lp-max)
	}
	return max + math.Log10(sum), nil
}

// ErrorProbForQ looks qual up in a shared model, built once on first use.
func ErrorProbForQ(qual int) (prob float64, err error) {
	return getModel().ErrorProbForQ(qual)
}

// CorrectProbForQ looks qual up in a shared model, built once on first use.
func CorrectProbForQ(qual int) (prob float64, err error) {
	return getModel().CorrectProbForQ(qual)
}
