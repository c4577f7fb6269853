package comparer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestParseVector(t *testing.T) {
	v, err := ParseVector(decode(t, `[1, 2.5, -3]`))
	require.NoError(t, err)
	assert.Equal(t, Vector{1, 2.5, -3}, v)

	v, err = ParseVector([]int32{4, 0})
	require.NoError(t, err)
	assert.Equal(t, Vector{4, 0}, v)
}

func TestParseVector_Invalid(t *testing.T) {
	inputs := map[string]any{
		"nested": decode(t, `[[1, 2], [3]]`),
		"string": decode(t, `"abc"`),
		"mixed":  decode(t, `[1, "x"]`),
		"empty":  decode(t, `[]`),
		"null":   nil,
		"scalar": 3.0,
	}
	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			_, err := ParseVector(input)
			assert.True(t, errors.Is(err, ErrInvalidReference))
		})
	}
}

func TestParseVectors(t *testing.T) {
	vs, err := ParseVectors(decode(t, `[[1, 2], [3]]`))
	require.NoError(t, err)
	assert.Equal(t, []Vector{{1, 2}, {3}}, vs)

	vs, err = ParseVectors([][]float64{{1}})
	require.NoError(t, err)
	assert.Equal(t, []Vector{{1}}, vs)
}

func TestParseVectors_Invalid(t *testing.T) {
	_, err := ParseVectors(decode(t, `{"a": 1}`))
	assert.True(t, errors.Is(err, ErrInvalidCandidates))

	_, err = ParseVectors(decode(t, `[1, 2]`))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 0, verr.Index)

	_, err = ParseVectors(decode(t, `[[1], [[2]]]`))
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, 1, verr.Index)
	assert.Contains(t, verr.Reason, "one-dimensional")
}
