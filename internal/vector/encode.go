package vector

import (
	"fmt"

	"github.com/ludo-technologies/patchsim/internal/tree"
)

const (
	// DefaultDepth is the default number of binary tree levels kept by an encoding
	DefaultDepth = 15

	// MaxDepth bounds the encoding depth; an encoding has 2^depth slots
	MaxDepth = 24
)

// Encoding is the heap-ordered linearization of a binary tree: the node stored
// at index i has its children at 2i+1 (left) and 2i+2 (right).
type Encoding []int32

// Floats converts the encoding into a float vector
func (e Encoding) Floats() []float64 {
	out := make([]float64, len(e))
	for i, v := range e {
		out[i] = float64(v)
	}
	return out
}

// Encoder linearizes binary trees into fixed-length encodings
type Encoder struct {
	table *LabelCodeTable
	depth int
}

// NewEncoder creates an encoder that keeps depth levels of a tree and encodes
// labels with the given table
func NewEncoder(table *LabelCodeTable, depth int) (*Encoder, error) {
	if table == nil {
		return nil, fmt.Errorf("label code table cannot be nil")
	}
	if depth < 1 || depth > MaxDepth {
		return nil, fmt.Errorf("encoding depth must be between 1 and %d, got %d", MaxDepth, depth)
	}
	return &Encoder{table: table, depth: depth}, nil
}

// Depth returns the number of tree levels kept by the encoder
func (e *Encoder) Depth() int {
	return e.depth
}

// Size returns the length of the encodings produced, 2^depth
func (e *Encoder) Size() int {
	return 1 << e.depth
}

// Encode writes the label code of every node at its heap index. Nodes whose
// index falls outside the encoding are dropped, and a Null child writes
// NullCode at its own index without descending further.
func (e *Encoder) Encode(root *tree.BinaryNode) Encoding {
	size := e.Size()
	out := make(Encoding, size)

	type slot struct {
		node  *tree.BinaryNode
		index int
	}
	stack := []slot{{root, 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.index >= size {
			continue
		}
		if top.node.IsNull() {
			out[top.index] = NullCode
			continue
		}
		out[top.index] = e.table.Code(top.node.Label)
		stack = append(stack,
			slot{top.node.Right, 2*top.index + 2},
			slot{top.node.Left, 2*top.index + 1},
		)
	}
	return out
}

// Encode is a convenience wrapper around NewEncoder and Encoder.Encode
func Encode(table *LabelCodeTable, root *tree.BinaryNode, depth int) (Encoding, error) {
	enc, err := NewEncoder(table, depth)
	if err != nil {
		return nil, err
	}
	return enc.Encode(root), nil
}
