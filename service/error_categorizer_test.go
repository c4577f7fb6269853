package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/patchsim/domain"
)

func TestNewErrorCategorizer(t *testing.T) {
	categorizer := NewErrorCategorizer()
	assert.NotNil(t, categorizer)
	assert.IsType(t, &ErrorCategorizerImpl{}, categorizer)
}

func TestCategorize_DomainCodes(t *testing.T) {
	categorizer := NewErrorCategorizer()

	tests := []struct {
		name string
		err  error
		want domain.ErrorCategory
	}{
		{"file not found", domain.NewFileNotFoundError("a.java", nil), domain.ErrorCategoryInput},
		{"invalid reference", domain.NewInvalidReferenceError("bad", nil), domain.ErrorCategoryInput},
		{"invalid candidates", domain.NewInvalidCandidatesError("bad", nil), domain.ErrorCategoryInput},
		{"config", domain.NewConfigError("bad", nil), domain.ErrorCategoryConfig},
		{"parse", domain.NewParseError("a.java", errors.New("syntax")), domain.ErrorCategoryProcessing},
		{"similarity", domain.NewSimilarityError("projection failed", nil), domain.ErrorCategoryProcessing},
		{"format", domain.NewUnsupportedFormatError("html"), domain.ErrorCategoryOutput},
		{"wrapped", fmt.Errorf("candidate %q: %w", "x", domain.NewParseError("x", nil)), domain.ErrorCategoryProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := categorizer.Categorize(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, tt.err, got.Original)
		})
	}
}

func TestCategorize_Patterns(t *testing.T) {
	categorizer := NewErrorCategorizer()

	tests := []struct {
		msg  string
		want domain.ErrorCategory
	}{
		{"operation timeout", domain.ErrorCategoryTimeout},
		{"failed to read config file", domain.ErrorCategoryConfig},
		{"open x.java: no such file or directory", domain.ErrorCategoryInput},
		{"failed to write output", domain.ErrorCategoryOutput},
		{"unknown strategy \"foo\"", domain.ErrorCategoryProcessing},
		{"something odd", domain.ErrorCategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, categorizer.Categorize(errors.New(tt.msg)).Category)
		})
	}
}

func TestCategorize_Context(t *testing.T) {
	categorizer := NewErrorCategorizer()
	err := fmt.Errorf("ranking cancelled: %w", context.DeadlineExceeded)
	assert.Equal(t, domain.ErrorCategoryTimeout, categorizer.Categorize(err).Category)
	assert.Nil(t, categorizer.Categorize(nil))
}

func TestGetRecoverySuggestions(t *testing.T) {
	categorizer := NewErrorCategorizer()
	for _, category := range []domain.ErrorCategory{
		domain.ErrorCategoryInput,
		domain.ErrorCategoryConfig,
		domain.ErrorCategoryTimeout,
		domain.ErrorCategoryOutput,
		domain.ErrorCategoryProcessing,
		domain.ErrorCategoryUnknown,
	} {
		assert.NotEmpty(t, categorizer.GetRecoverySuggestions(category), category)
	}
	assert.Equal(t, []string{"Check the error message for more details"},
		categorizer.GetRecoverySuggestions(domain.ErrorCategory("other")))
}
