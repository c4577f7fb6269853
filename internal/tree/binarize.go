package tree

// Binarize converts an ordered tree into a binary tree using the
// first-child/next-sibling encoding: the first child of a node becomes its
// Right child, and every further child hangs off the Left link of its
// preceding sibling. Labels are preserved exactly; only the topology changes.
//
// The conversion uses an explicit work stack, so the depth of the input is
// bounded only by available memory.
func Binarize(root *Node) *BinaryNode {
	if root == nil {
		return Null()
	}

	type work struct {
		src *Node
		dst *BinaryNode
	}

	result := NewBinaryNode(root.Label)
	stack := []work{{root, result}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		var prev *BinaryNode
		for _, child := range top.src.Children {
			if child == nil {
				continue
			}
			bin := NewBinaryNode(child.Label)
			if prev == nil {
				top.dst.Right = bin
			} else {
				prev.Left = bin
			}
			prev = bin
			stack = append(stack, work{child, bin})
		}
	}

	return result
}
