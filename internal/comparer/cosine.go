package comparer

func init() {
	Register(Info{
		Name:        "cossim",
		Aliases:     []string{"cosine", "cos"},
		Description: "Cosine of the angle between the vectors, mapped from [-1, 1] onto [0, 10]",
		MaxScore:    10,
	}, func(Options) Strategy { return cosine{} })
}

// cosine scores the angle between two vectors. A zero vector on either side
// counts as orthogonal, which scores 5.
type cosine struct{}

func (cosine) Compare(a, b Vector) float64 {
	lengths := norm(a) * norm(b)
	if isZero(lengths) {
		return 0
	}
	return dot(a, b) / lengths
}

func (cosine) ConvertToScore(raw float64, _ int) float64 {
	return (raw + 1) / 2 * 10
}
