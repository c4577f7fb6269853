package comparer

import (
	"math"
)

func init() {
	Register(Info{
		Name:        "canberra",
		Description: "Canberra distance, scored as 10*(1 - d/dimensions)",
		MaxScore:    10,
	}, func(opts Options) Strategy { return canberra{propagateNaN: opts.CanberraPropagateNaN} })
}

// canberra sums |a-b|/(|a|+|b|) per dimension. A dimension where both
// components are zero contributes 0 unless propagateNaN is set.
type canberra struct {
	propagateNaN bool
}

func (c canberra) Compare(a, b Vector) float64 {
	var sum float64
	for i := range a {
		denom := math.Abs(a[i]) + math.Abs(b[i])
		if denom == 0 {
			if c.propagateNaN {
				return math.NaN()
			}
			continue
		}
		sum += math.Abs(a[i]-b[i]) / denom
	}
	return sum
}

func (canberra) ConvertToScore(raw float64, dims int) float64 {
	if dims == 0 {
		return 10
	}
	return 10 * (1 - raw/float64(dims))
}
