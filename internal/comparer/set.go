package comparer

func init() {
	Register(Info{
		Name:        "hamming",
		Description: "Fraction of positions holding equal values, reported on [0, 1]",
		MaxScore:    1,
	}, func(Options) Strategy { return hamming{} })

	Register(Info{
		Name:        "jaccard",
		Description: "Jaccard index of the nonzero positions, reported on [0, 1]",
		MaxScore:    1,
	}, func(Options) Strategy { return jaccard{} })

	Register(Info{
		Name:        "sorensendice",
		Aliases:     []string{"dice", "sorensen"},
		Description: "Sørensen–Dice coefficient of the nonzero positions, reported on [0, 1]",
		MaxScore:    1,
	}, func(Options) Strategy { return sorensenDice{} })
}

// identity leaves the raw [0, 1] value as the score
type identity struct{}

func (identity) ConvertToScore(raw float64, _ int) float64 {
	return raw
}

type hamming struct{ identity }

func (hamming) Compare(a, b Vector) float64 {
	if len(a) == 0 {
		return 1
	}
	equal := 0
	for i := range a {
		if a[i] == b[i] {
			equal++
		}
	}
	return float64(equal) / float64(len(a))
}

// overlap counts the nonzero positions of a, of b and of both
func overlap(a, b Vector) (inA, inB, both int) {
	for i := range a {
		x, y := a[i] != 0, b[i] != 0
		if x {
			inA++
		}
		if y {
			inB++
		}
		if x && y {
			both++
		}
	}
	return inA, inB, both
}

// jaccard treats both vectors as the sets of their nonzero positions. Two
// empty sets are identical.
type jaccard struct{ identity }

func (jaccard) Compare(a, b Vector) float64 {
	inA, inB, both := overlap(a, b)
	union := inA + inB - both
	if union == 0 {
		return 1
	}
	return float64(both) / float64(union)
}

type sorensenDice struct{ identity }

func (sorensenDice) Compare(a, b Vector) float64 {
	inA, inB, both := overlap(a, b)
	if inA+inB == 0 {
		return 1
	}
	return 2 * float64(both) / float64(inA+inB)
}
