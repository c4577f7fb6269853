package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Format(t *testing.T) {
	cause := errors.New("vector is empty")
	err := NewInvalidReferenceError("reference vector rejected", cause)

	assert.Equal(t, "[INVALID_REFERENCE] reference vector rejected: vector is empty", err.Error())
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, ErrCodeInvalidReference, ErrorCode(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("rank failed: %w", NewInvalidCandidatesError("bad candidates", nil))

	assert.Equal(t, ErrCodeInvalidCandidates, ErrorCode(err))
	assert.Equal(t, "", ErrorCode(errors.New("plain")))
}

func TestParseOutputFormat(t *testing.T) {
	for _, name := range []string{"text", "json", "yaml", "csv"} {
		f, err := ParseOutputFormat(name)
		assert.NoError(t, err)
		assert.Equal(t, OutputFormat(name), f)
	}

	f, err := ParseOutputFormat("")
	assert.NoError(t, err)
	assert.Equal(t, OutputFormatText, f)

	_, err = ParseOutputFormat("html")
	assert.Equal(t, ErrCodeUnsupportedFormat, ErrorCode(err))
}

func TestDefaultSimilaritySettings(t *testing.T) {
	s := DefaultSimilaritySettings()

	assert.Equal(t, DefaultLanguage, s.Options.Language)
	assert.Equal(t, DefaultEncodingDepth, s.Options.Depth)
	assert.Equal(t, DefaultStrategy, s.Options.Strategy)
	assert.Equal(t, DefaultMinkowskiP, s.Options.MinkowskiP)
	assert.True(t, s.SkipInvalid)
	assert.Equal(t, OutputFormatText, s.OutputFormat)

	// defaults are copied, not shared
	s.IncludePatterns[0] = "changed"
	assert.NotEqual(t, "changed", DefaultIncludePatterns[0])
}
