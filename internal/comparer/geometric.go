package comparer

import (
	"math"
)

// angleBias widens every angle so parallel vectors still enclose an area
const angleBias = 10 * math.Pi / 180

// maxTriangleAngle caps the biased angle of the triangle area. An obtuse
// angle, which only signed vectors can have, counts as a right angle, so the
// sine stays positive and the area never drops below zero.
const maxTriangleAngle = math.Pi/2 + angleBias

func init() {
	Register(Info{
		Name:        "trianglesimilarity",
		Aliases:     []string{"triangle", "ts"},
		Description: "Area of the triangle spanned by the vectors, scored as 10/(1+area)",
		MaxScore:    10,
		Batched:     true,
	}, func(Options) Strategy { return triangle{} })

	Register(Info{
		Name:        "sectorsimilarity",
		Aliases:     []string{"sector", "ss"},
		Description: "Area of the sector built from distance and magnitude difference, scored as 10/(1+area)",
		MaxScore:    10,
		Batched:     true,
	}, func(Options) Strategy { return sector{} })

	Register(Info{
		Name:        "tsss",
		Aliases:     []string{"trianglesectorsimilarity"},
		Description: "Product of the triangle and sector areas, scored as 10/(1+TS*SS)",
		MaxScore:    10,
		Batched:     true,
	}, func(Options) Strategy { return tsss{} })
}

// biasedAngle returns the angle between a and b plus angleBias. A zero
// vector on either side is treated as orthogonal.
func biasedAngle(a, b Vector, lenA, lenB float64) float64 {
	if isZero(lenA) || isZero(lenB) {
		return math.Pi/2 + angleBias
	}
	cos := math.Round(dot(a, b)/(lenA*lenB)*1e6) / 1e6
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) + angleBias
}

// geometric shares the score conversion of the area based strategies
type geometric struct{}

func (geometric) ConvertToScore(raw float64, _ int) float64 {
	return reciprocal(raw)
}

func (geometric) BulkConvertToScore(raws []float64) []float64 {
	return maxRescale(raws)
}

type triangle struct{ geometric }

func (triangle) Compare(a, b Vector) float64 {
	lenA, lenB := norm(a), norm(b)
	angle := math.Min(biasedAngle(a, b, lenA, lenB), maxTriangleAngle)
	return lenA * lenB * math.Sin(angle) / 2
}

type sector struct{ geometric }

func (sector) Compare(a, b Vector) float64 {
	lenA, lenB := norm(a), norm(b)
	angle := biasedAngle(a, b, lenA, lenB)
	ed := minkowski{p: 2}.Compare(a, b)
	md := math.Abs(lenA - lenB)
	return (ed + md) * (ed + md) * angle / 2 * math.Pi
}

type tsss struct{ geometric }

func (tsss) Compare(a, b Vector) float64 {
	return triangle{}.Compare(a, b) * sector{}.Compare(a, b)
}
