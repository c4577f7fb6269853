package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAlign_IdenticalTreesReturnRoots(t *testing.T) {
	trees := []*Node{
		NewNode("A"),
		NewNode("A", NewNode("B"), NewNode("C")),
		NewNode("A", NewNode("B", NewNode("D"), NewNode("E")), NewNode("C", NewNode("F"))),
	}

	for _, root := range trees {
		a := Binarize(root)
		before, after := Align(a, a)
		assert.Same(t, a, before)
		assert.Same(t, a, after)

		result := AlignTrees(a, Binarize(root))
		assert.True(t, result.Identical)
		assert.Same(t, a, result.Before)
	}
}

func TestAlign_RootLabelsDiffer(t *testing.T) {
	a := Binarize(NewNode("A", NewNode("B")))
	b := Binarize(NewNode("X", NewNode("B")))

	before, after := Align(a, b)
	assert.Same(t, a, before)
	assert.Same(t, b, after)
}

func TestAlign_ChangedLastSibling(t *testing.T) {
	// A[B, C] vs A[B, D]: binarized, C and D are the Left (sibling) child of B,
	// so the divergence is detected at the B pair whose Left labels differ.
	a := Binarize(NewNode("A", NewNode("B"), NewNode("C")))
	b := Binarize(NewNode("A", NewNode("B"), NewNode("D")))

	result := AlignTrees(a, b)

	assert.False(t, result.Identical)
	assert.NotSame(t, a, result.Before, "must not return the roots")
	assert.Equal(t, "B", result.Before.Label)
	assert.Equal(t, "B", result.After.Label)
	assert.Equal(t, "C", result.Before.Left.Label)
	assert.Equal(t, "D", result.After.Left.Label)
}

func TestAlign_DivergenceInDeepChild(t *testing.T) {
	// A[B[X, Y], C] vs A[B[X, Z], C]
	a := Binarize(NewNode("A", NewNode("B", NewNode("X"), NewNode("Y")), NewNode("C")))
	b := Binarize(NewNode("A", NewNode("B", NewNode("X"), NewNode("Z")), NewNode("C")))

	before, after := Align(a, b)

	// B's right branch (X..) diverges while its left branch (C) is identical
	assert.Equal(t, "X", before.Label)
	assert.Equal(t, "X", after.Label)
	assert.Equal(t, "Y", before.Left.Label)
	assert.Equal(t, "Z", after.Left.Label)
}

func TestAlign_LeafLabelChange(t *testing.T) {
	// A[B[C], D[E]] vs A[B[C], D[F]]
	a := Binarize(NewNode("A", NewNode("B", NewNode("C")), NewNode("D", NewNode("E"))))
	b := Binarize(NewNode("A", NewNode("B", NewNode("C")), NewNode("D", NewNode("F"))))

	before, after := Align(a, b)

	assert.Equal(t, "D", before.Label)
	assert.Equal(t, "D", after.Label)
	assert.Equal(t, "E", before.Right.Label)
	assert.Equal(t, "F", after.Right.Label)
}

func TestAlign_BothBranchesDiverge(t *testing.T) {
	// B has both a changed subtree (Right) and a changed sibling subtree (Left)
	a := Binarize(NewNode("A", NewNode("B", NewNode("C", NewNode("X"))), NewNode("D", NewNode("Y"))))
	b := Binarize(NewNode("A", NewNode("B", NewNode("C", NewNode("Q"))), NewNode("D", NewNode("R"))))

	before, after := Align(a, b)

	assert.Equal(t, "B", before.Label)
	assert.Equal(t, "B", after.Label)
}

func TestAlign_NullInputs(t *testing.T) {
	result := AlignTrees(Null(), Null())
	assert.True(t, result.Identical)

	before, after := Align(nil, nil)
	assert.True(t, before.IsNull())
	assert.True(t, after.IsNull())
}

func TestAlign_DeepChain(t *testing.T) {
	build := func(last string) *BinaryNode {
		root := NewNode("root")
		cur := root
		for i := 0; i < 100000; i++ {
			next := NewNode("n")
			cur.AddChild(next)
			cur = next
		}
		cur.AddChild(NewNode(last))
		return Binarize(root)
	}

	before, after := Align(build("x"), build("y"))
	assert.Equal(t, "n", before.Label)
	assert.Equal(t, "x", before.Right.Label)
	assert.Equal(t, "y", after.Right.Label)
}
