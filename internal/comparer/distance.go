package comparer

import (
	"math"
)

func init() {
	Register(Info{
		Name:        "euclidean",
		Aliases:     []string{"l2"},
		Description: "Euclidean distance, scored as 10/(1+d); batches rescale by the largest distance",
		MaxScore:    10,
		Batched:     true,
	}, func(Options) Strategy { return minkowski{p: 2} })

	Register(Info{
		Name:        "manhattan",
		Aliases:     []string{"l1", "cityblock"},
		Description: "Manhattan distance, scored as 10/(1+d); batches rescale by the largest distance",
		MaxScore:    10,
		Batched:     true,
	}, func(Options) Strategy { return minkowski{p: 1} })

	Register(Info{
		Name:        "minkowski",
		Description: "Minkowski distance of order p (1.5 unless configured), scored as 10/(1+d)",
		MaxScore:    10,
		Batched:     true,
	}, func(opts Options) Strategy { return minkowski{p: opts.minkowskiP()} })

	Register(Info{
		Name:        "standardizedeuclidean",
		Aliases:     []string{"seuclidean", "standardized"},
		Description: "Euclidean distance after per-dimension standardization; batches fit the scaler on the candidates",
		MaxScore:    10,
		Batched:     true,
	}, func(Options) Strategy { return standardizedEuclidean{} })

	Register(Info{
		Name:        "relativizedeuclidean",
		Aliases:     []string{"relativized", "normalizedeuclidean"},
		Description: "Euclidean distance of the unit-normalized vectors, scored as 10 - d/2*10",
		MaxScore:    10,
		Batched:     true,
	}, func(Options) Strategy { return relativizedEuclidean{} })
}

// minkowski is the Lp distance. p = 1 and p = 2 take exact paths.
type minkowski struct {
	p float64
}

func (m minkowski) Compare(a, b Vector) float64 {
	var sum float64
	switch m.p {
	case 1:
		for i := range a {
			sum += math.Abs(a[i] - b[i])
		}
		return sum
	case 2:
		for i := range a {
			d := a[i] - b[i]
			sum += d * d
		}
		return math.Sqrt(sum)
	}
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), m.p)
	}
	return math.Pow(sum, 1/m.p)
}

func (minkowski) ConvertToScore(raw float64, _ int) float64 {
	return reciprocal(raw)
}

func (minkowski) BulkConvertToScore(raws []float64) []float64 {
	return maxRescale(raws)
}

// scaler standardizes columns with the population mean and standard
// deviation. Constant columns keep a scale of 1.
type scaler struct {
	mean  []float64
	scale []float64
}

func fitScaler(rows []Vector) scaler {
	dims := len(rows[0])
	s := scaler{mean: make([]float64, dims), scale: make([]float64, dims)}
	n := float64(len(rows))

	for j := 0; j < dims; j++ {
		lo, hi := rows[0][j], rows[0][j]
		var sum float64
		for _, row := range rows {
			sum += row[j]
			lo = math.Min(lo, row[j])
			hi = math.Max(hi, row[j])
		}
		s.mean[j] = sum / n

		if lo == hi {
			s.scale[j] = 1
			continue
		}
		var sq float64
		for _, row := range rows {
			d := row[j] - s.mean[j]
			sq += d * d
		}
		s.scale[j] = math.Sqrt(sq / n)
	}
	return s
}

func (s scaler) transform(v Vector) Vector {
	out := make(Vector, len(v))
	for j, x := range v {
		out[j] = (x - s.mean[j]) / s.scale[j]
	}
	return out
}

// standardizedEuclidean fits its scaler on the pair for single comparisons
// and on the candidate batch alone for bulk scoring.
type standardizedEuclidean struct{}

func (standardizedEuclidean) Compare(a, b Vector) float64 {
	s := fitScaler([]Vector{a, b})
	return minkowski{p: 2}.Compare(s.transform(a), s.transform(b))
}

func (standardizedEuclidean) ConvertToScore(raw float64, _ int) float64 {
	return reciprocal(raw)
}

func (standardizedEuclidean) BulkCompare(ref Vector, others []Vector) []float64 {
	s := fitScaler(others)
	scaledRef := s.transform(ref)
	raws := make([]float64, len(others))
	for i, other := range others {
		raws[i] = minkowski{p: 2}.Compare(scaledRef, s.transform(other))
	}
	return raws
}

func (standardizedEuclidean) BulkConvertToScore(raws []float64) []float64 {
	return maxRescale(raws)
}

// relativizedEuclidean compares directions only. When one vector is zero the
// distance is the length of the other's unit vector; two zero vectors are at
// distance 0.
type relativizedEuclidean struct{}

func (relativizedEuclidean) Compare(a, b Vector) float64 {
	aZero, bZero := allZero(a), allZero(b)
	switch {
	case aZero && bZero:
		return 0
	case aZero:
		return norm(unit(b))
	case bZero:
		return norm(unit(a))
	}
	return minkowski{p: 2}.Compare(unit(a), unit(b))
}

func (relativizedEuclidean) ConvertToScore(raw float64, _ int) float64 {
	return 10 - raw/2*10
}

func (relativizedEuclidean) BulkConvertToScore(raws []float64) []float64 {
	return maxRescale(raws)
}

func unit(v Vector) Vector {
	n := norm(v)
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = x / n
	}
	return out
}
