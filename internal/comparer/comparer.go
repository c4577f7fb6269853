// Package comparer scores how similar two numeric vectors are.
//
// A Comparer wraps one of the registered strategies. Every strategy turns a
// pair of vectors into a raw similarity or distance value and converts that
// value into a score, where a higher score means more similar. Most strategies
// score on [0, 10]; Hamming, Jaccard and Sørensen–Dice report their raw
// [0, 1] value unchanged.
package comparer

import (
	"math"
)

// Vector is a one-dimensional numeric vector
type Vector []float64

// Strategy is a single scoring algorithm. Compare always receives vectors of
// equal length; dims passed to ConvertToScore is that length.
type Strategy interface {
	Compare(a, b Vector) float64
	ConvertToScore(raw float64, dims int) float64
}

// BulkComparer is implemented by strategies that fit shared statistics over
// a whole candidate batch. The batch is zero-padded to a common length first.
type BulkComparer interface {
	BulkCompare(ref Vector, others []Vector) []float64
}

// BulkConverter is implemented by strategies that convert a batch of raw
// values jointly instead of one by one.
type BulkConverter interface {
	BulkConvertToScore(raws []float64) []float64
}

// Comparer scores vectors with a resolved strategy
type Comparer struct {
	name     string
	strategy Strategy
}

// NewWithStrategy wraps a strategy that is not part of the registry
func NewWithStrategy(name string, strategy Strategy) *Comparer {
	return &Comparer{name: name, strategy: strategy}
}

// Name returns the canonical name of the strategy in use
func (c *Comparer) Name() string {
	return c.name
}

// Compare returns the raw, unconverted value for a pair of vectors
func (c *Comparer) Compare(ref, other Vector) (float64, error) {
	if err := validateReference(ref); err != nil {
		return 0, err
	}
	if err := validateCandidate(other, 0); err != nil {
		return 0, err
	}
	a, b := Resize(ref, other)
	return c.strategy.Compare(a, b), nil
}

// Score compares ref with other and converts the result into a score
func (c *Comparer) Score(ref, other Vector) (float64, error) {
	if err := validateReference(ref); err != nil {
		return 0, err
	}
	if err := validateCandidate(other, 0); err != nil {
		return 0, err
	}
	a, b := Resize(ref, other)
	return c.strategy.ConvertToScore(c.strategy.Compare(a, b), len(a)), nil
}

// BulkScore scores every candidate against ref. The result is positionally
// aligned with others. Strategies that fit statistics or rescale across the
// batch may return different numbers than calling Score per candidate.
func (c *Comparer) BulkScore(ref Vector, others []Vector) ([]float64, error) {
	if err := validateReference(ref); err != nil {
		return nil, err
	}
	for i, other := range others {
		if err := validateCandidate(other, i); err != nil {
			return nil, err
		}
	}
	if len(others) == 0 {
		return []float64{}, nil
	}

	var raws []float64
	dims := make([]int, len(others))
	if bulk, ok := c.strategy.(BulkComparer); ok {
		padded, paddedRef := resizeAll(ref, others)
		raws = bulk.BulkCompare(paddedRef, padded)
		for i := range dims {
			dims[i] = len(paddedRef)
		}
	} else {
		raws = make([]float64, len(others))
		for i, other := range others {
			a, b := Resize(ref, other)
			raws[i] = c.strategy.Compare(a, b)
			dims[i] = len(a)
		}
	}

	if conv, ok := c.strategy.(BulkConverter); ok {
		return conv.BulkConvertToScore(raws), nil
	}
	scores := make([]float64, len(raws))
	for i, raw := range raws {
		scores[i] = c.strategy.ConvertToScore(raw, dims[i])
	}
	return scores, nil
}

// Resize returns copies of a and b zero-padded to the longer of the two lengths
func Resize(a, b Vector) (Vector, Vector) {
	n := max(len(a), len(b))
	return pad(a, n), pad(b, n)
}

func resizeAll(ref Vector, others []Vector) ([]Vector, Vector) {
	n := len(ref)
	for _, other := range others {
		n = max(n, len(other))
	}
	padded := make([]Vector, len(others))
	for i, other := range others {
		padded[i] = pad(other, n)
	}
	return padded, pad(ref, n)
}

func pad(v Vector, n int) Vector {
	out := make(Vector, n)
	copy(out, v)
	return out
}

// maxRescale maps the largest distance of a batch to 0 and scales the rest
// linearly towards 10. A batch whose largest distance is 0 scores 10 throughout.
func maxRescale(raws []float64) []float64 {
	maximum := math.Inf(-1)
	for _, r := range raws {
		maximum = math.Max(maximum, r)
	}
	scores := make([]float64, len(raws))
	for i, r := range raws {
		if maximum == 0 {
			scores[i] = 10
			continue
		}
		scores[i] = 10 - r/maximum*10
	}
	return scores
}

// reciprocal converts a non-negative distance into a score in (0, 10]
func reciprocal(raw float64) float64 {
	return 10 / (1 + raw)
}

func dot(a, b Vector) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

func norm(v Vector) float64 {
	return math.Sqrt(dot(v, v))
}

// isZero matches numpy's isclose(x, 0) with default tolerances
func isZero(x float64) bool {
	return math.Abs(x) <= 1e-8
}

func allZero(v Vector) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
