package tree

// AlignResult holds the divergent node pair found by Align
type AlignResult struct {
	Before *BinaryNode
	After  *BinaryNode

	// Identical is true when the two trees are shape-equal; in that case
	// Before and After are the original roots.
	Identical bool
}

// Align finds the smallest pair of subtrees that captures the structural
// difference between two versions of a binary tree. If the roots carry
// different labels the roots themselves are returned.
func Align(before, after *BinaryNode) (*BinaryNode, *BinaryNode) {
	result := AlignTrees(before, after)
	return result.Before, result.After
}

// alignFrame is one pending comparison on the explicit stack.
type alignFrame struct {
	a, b  *BinaryNode
	state alignState
	left  AlignResult
}

type alignState int

const (
	stateEnter alignState = iota
	stateAwaitLeft
	stateAwaitRight
)

// AlignTrees runs the alignment and also reports whether the trees are identical.
//
// Rules, applied top-down to a node pair (a, b):
//  1. different labels: diverge at (a, b)
//  2. both are leaves: identical
//  3. left or right child labels differ: diverge at (a, b)
//  4. otherwise descend; a branch that is Null on both sides is skipped and the
//     other branch's result is propagated unchanged. When both branches are
//     descended, an identical branch defers to the other one, two identical
//     branches make (a, b) identical, and two divergent branches make (a, b)
//     the divergence point.
func AlignTrees(before, after *BinaryNode) AlignResult {
	stack := []*alignFrame{{a: before, b: after}}
	var ret AlignResult

	for len(stack) > 0 {
		f := stack[len(stack)-1]

		switch f.state {
		case stateEnter:
			if label(f.a) != label(f.b) {
				ret = AlignResult{Before: f.a, After: f.b}
				stack = stack[:len(stack)-1]
				continue
			}
			if f.a.IsNull() && f.b.IsNull() {
				ret = AlignResult{Before: f.a, After: f.b, Identical: true}
				stack = stack[:len(stack)-1]
				continue
			}
			if f.a.Left.IsNull() && f.a.Right.IsNull() && f.b.Left.IsNull() && f.b.Right.IsNull() {
				ret = AlignResult{Before: f.a, After: f.b, Identical: true}
				stack = stack[:len(stack)-1]
				continue
			}
			if label(f.a.Left) != label(f.b.Left) || label(f.a.Right) != label(f.b.Right) {
				ret = AlignResult{Before: f.a, After: f.b}
				stack = stack[:len(stack)-1]
				continue
			}
			// Single-branch descent returns the child's result unchanged,
			// so the frame is reused instead of pushing a new one.
			if f.a.Left.IsNull() {
				f.a, f.b = f.a.Right, f.b.Right
				continue
			}
			if f.a.Right.IsNull() {
				f.a, f.b = f.a.Left, f.b.Left
				continue
			}
			f.state = stateAwaitLeft
			stack = append(stack, &alignFrame{a: f.a.Left, b: f.b.Left})

		case stateAwaitLeft:
			f.left = ret
			f.state = stateAwaitRight
			stack = append(stack, &alignFrame{a: f.a.Right, b: f.b.Right})

		case stateAwaitRight:
			right := ret
			switch {
			case f.left.Identical && right.Identical:
				ret = AlignResult{Before: f.a, After: f.b, Identical: true}
			case f.left.Identical:
				ret = AlignResult{Before: right.Before, After: right.After}
			case right.Identical:
				ret = AlignResult{Before: f.left.Before, After: f.left.After}
			default:
				ret = AlignResult{Before: f.a, After: f.b}
			}
			stack = stack[:len(stack)-1]
		}
	}

	// Identical only survives to the top when no level diverged, in which
	// case the result refers to the original roots.
	if ret.Identical {
		return AlignResult{Before: before, After: after, Identical: true}
	}
	return ret
}
