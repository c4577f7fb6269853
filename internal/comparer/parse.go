package comparer

import (
	"encoding/json"
	"fmt"
)

// ParseVector converts loosely typed input, such as a decoded JSON array,
// into a reference Vector. The input must be a flat list of numbers.
func ParseVector(input any) (Vector, error) {
	v, reason := toVector(input)
	if reason != "" {
		return nil, referenceError(reason)
	}
	if reason := checkVector(v); reason != "" {
		return nil, referenceError(reason)
	}
	return v, nil
}

// ParseVectors converts loosely typed input into a candidate set. The input
// must be a list whose elements are flat lists of numbers.
func ParseVectors(input any) ([]Vector, error) {
	var items []any
	switch in := input.(type) {
	case []Vector:
		items = make([]any, len(in))
		for i, v := range in {
			items[i] = v
		}
	case [][]float64:
		items = make([]any, len(in))
		for i, v := range in {
			items[i] = v
		}
	case []any:
		items = in
	case nil:
		return nil, candidateError(-1, "candidates are missing")
	default:
		return nil, candidateError(-1, fmt.Sprintf("expected a list of vectors, got %T", input))
	}

	vectors := make([]Vector, len(items))
	for i, item := range items {
		v, reason := toVector(item)
		if reason == "" {
			reason = checkVector(v)
		}
		if reason != "" {
			return nil, candidateError(i, reason)
		}
		vectors[i] = v
	}
	return vectors, nil
}

func toVector(input any) (Vector, string) {
	switch in := input.(type) {
	case Vector:
		return append(Vector(nil), in...), ""
	case []float64:
		return append(Vector(nil), in...), ""
	case []float32:
		return convert(in), ""
	case []int:
		return convert(in), ""
	case []int32:
		return convert(in), ""
	case []int64:
		return convert(in), ""
	case []any:
		out := make(Vector, len(in))
		for i, elem := range in {
			x, ok := toFloat(elem)
			if !ok {
				if isList(elem) {
					return nil, "vector must be one-dimensional"
				}
				return nil, fmt.Sprintf("element %d is not a number (%T)", i, elem)
			}
			out[i] = x
		}
		return out, ""
	case nil:
		return nil, "vector is missing"
	default:
		return nil, fmt.Sprintf("expected a list of numbers, got %T", input)
	}
}

func convert[T float32 | int | int32 | int64](in []T) Vector {
	out := make(Vector, len(in))
	for i, x := range in {
		out[i] = float64(x)
	}
	return out
}

func toFloat(elem any) (float64, bool) {
	switch x := elem.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func isList(elem any) bool {
	switch elem.(type) {
	case []any, []float64, Vector:
		return true
	}
	return false
}
