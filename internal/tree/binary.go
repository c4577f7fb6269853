package tree

import "fmt"

// NullLabel is the label carried by the Null sentinel
const NullLabel = "Null"

// BinaryNode is a node of a binarized tree. Both children are always set:
// a missing child is represented by the Null sentinel, which has no children.
type BinaryNode struct {
	Label string
	Left  *BinaryNode
	Right *BinaryNode
}

// Null returns a new Null sentinel
func Null() *BinaryNode {
	return &BinaryNode{Label: NullLabel}
}

// NewBinaryNode creates a binary node with the given label and Null children
func NewBinaryNode(label string) *BinaryNode {
	return &BinaryNode{Label: label, Left: Null(), Right: Null()}
}

// WithChildren sets the children of the node, replacing nil with Null
func (n *BinaryNode) WithChildren(left, right *BinaryNode) *BinaryNode {
	if left == nil {
		left = Null()
	}
	if right == nil {
		right = Null()
	}
	n.Left = left
	n.Right = right
	return n
}

// IsNull reports whether the node is the Null sentinel. A nil node counts as Null.
func (n *BinaryNode) IsNull() bool {
	return n == nil || (n.Label == NullLabel && n.Left == nil && n.Right == nil)
}

// IsLeaf reports whether both children of a non-Null node are Null
func (n *BinaryNode) IsLeaf() bool {
	return !n.IsNull() && n.Left.IsNull() && n.Right.IsNull()
}

// label returns the node label, treating nil as Null
func label(n *BinaryNode) string {
	if n == nil {
		return NullLabel
	}
	return n.Label
}

// Size returns the number of non-Null nodes in the subtree
func (n *BinaryNode) Size() int {
	size := 0
	stack := []*BinaryNode{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.IsNull() {
			continue
		}
		size++
		stack = append(stack, top.Left, top.Right)
	}
	return size
}

// Depth returns the number of levels of non-Null nodes (0 for Null).
// A tree of depth d is covered without truncation by an encoding of depth >= d.
func (n *BinaryNode) Depth() int {
	type item struct {
		node  *BinaryNode
		level int
	}
	depth := 0
	stack := []item{{n, 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.node.IsNull() {
			continue
		}
		if top.level > depth {
			depth = top.level
		}
		stack = append(stack, item{top.node.Left, top.level + 1}, item{top.node.Right, top.level + 1})
	}
	return depth
}

// Labels returns the multiset of non-Null labels in the subtree
func (n *BinaryNode) Labels() map[string]int {
	labels := make(map[string]int)
	stack := []*BinaryNode{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.IsNull() {
			continue
		}
		labels[top.Label]++
		stack = append(stack, top.Left, top.Right)
	}
	return labels
}

// String returns a string representation of the node
func (n *BinaryNode) String() string {
	if n.IsNull() {
		return NullLabel
	}
	return fmt.Sprintf("BinaryNode{Label: %s, Left: %s, Right: %s}", n.Label, label(n.Left), label(n.Right))
}

// ShapeEqual reports whether two binary trees have the same labels and shape
func ShapeEqual(a, b *BinaryNode) bool {
	type pair struct{ a, b *BinaryNode }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.a.IsNull() || top.b.IsNull() {
			if top.a.IsNull() != top.b.IsNull() {
				return false
			}
			continue
		}
		if top.a.Label != top.b.Label {
			return false
		}
		stack = append(stack, pair{top.a.Left, top.b.Left}, pair{top.a.Right, top.b.Right})
	}
	return true
}
