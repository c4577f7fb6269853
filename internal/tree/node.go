package tree

import "fmt"

// Node is a node of an ordered, string-labeled tree as produced by a parser.
// Children are kept in source order.
type Node struct {
	Label    string
	Children []*Node
}

// NewNode creates a node with the given label and optional children
func NewNode(label string, children ...*Node) *Node {
	n := &Node{Label: label}
	for _, child := range children {
		n.AddChild(child)
	}
	return n
}

// AddChild appends a child node, ignoring nil
func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// IsLeaf returns true if this node has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Size returns the number of nodes in the subtree rooted at this node
func (n *Node) Size() int {
	if n == nil {
		return 0
	}
	size := 0
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		size++
		stack = append(stack, top.Children...)
	}
	return size
}

// Labels returns the label multiset of the subtree as label -> count
func (n *Node) Labels() map[string]int {
	labels := make(map[string]int)
	if n == nil {
		return labels
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		labels[top.Label]++
		stack = append(stack, top.Children...)
	}
	return labels
}

// String returns a string representation of the node
func (n *Node) String() string {
	return fmt.Sprintf("Node{Label: %s, Children: %d}", n.Label, len(n.Children))
}
