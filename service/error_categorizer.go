package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ludo-technologies/patchsim/domain"
)

// ErrorCategorizerImpl implements the ErrorCategorizer interface
type ErrorCategorizerImpl struct {
	codes    map[string]domain.ErrorCategory
	patterns []categoryPatterns
}

type categoryPatterns struct {
	category domain.ErrorCategory
	patterns []string
}

// NewErrorCategorizer creates a new error categorizer
func NewErrorCategorizer() domain.ErrorCategorizer {
	return &ErrorCategorizerImpl{
		codes:    initializeErrorCodes(),
		patterns: initializeErrorPatterns(),
	}
}

func initializeErrorCodes() map[string]domain.ErrorCategory {
	return map[string]domain.ErrorCategory{
		domain.ErrCodeInvalidInput:      domain.ErrorCategoryInput,
		domain.ErrCodeFileNotFound:      domain.ErrorCategoryInput,
		domain.ErrCodeInvalidReference:  domain.ErrorCategoryInput,
		domain.ErrCodeInvalidCandidates: domain.ErrorCategoryInput,
		domain.ErrCodeConfigError:       domain.ErrorCategoryConfig,
		domain.ErrCodeUnsupportedFormat: domain.ErrorCategoryOutput,
		domain.ErrCodeOutputError:       domain.ErrorCategoryOutput,
		domain.ErrCodeParseError:        domain.ErrorCategoryProcessing,
		domain.ErrCodeSimilarityError:   domain.ErrorCategoryProcessing,
	}
}

// initializeErrorPatterns is consulted for errors without a domain code.
// Order matters: the first matching category wins.
func initializeErrorPatterns() []categoryPatterns {
	return []categoryPatterns{
		{domain.ErrorCategoryTimeout, []string{
			"timeout",
			"deadline",
			"context canceled",
			"cancelled",
		}},
		{domain.ErrorCategoryConfig, []string{
			"config",
			"toml",
			"labels file",
			"projection",
		}},
		{domain.ErrorCategoryInput, []string{
			"invalid input",
			"no such file",
			"file not found",
			"permission denied",
			"no candidates",
		}},
		{domain.ErrorCategoryOutput, []string{
			"write",
			"output",
			"format",
		}},
		{domain.ErrorCategoryProcessing, []string{
			"parse",
			"syntax",
			"vector",
			"strategy",
		}},
	}
}

// Categorize determines the category of an error
func (ec *ErrorCategorizerImpl) Categorize(err error) *domain.CategorizedError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ec.categorized(domain.ErrorCategoryTimeout, err)
	}
	if code := domain.ErrorCode(err); code != "" {
		if category, ok := ec.codes[code]; ok {
			return ec.categorized(category, err)
		}
	}

	errMsg := strings.ToLower(err.Error())
	for _, cp := range ec.patterns {
		if containsAnyPattern(errMsg, cp.patterns) {
			return ec.categorized(cp.category, err)
		}
	}

	return &domain.CategorizedError{
		Category: domain.ErrorCategoryUnknown,
		Message:  err.Error(),
		Original: err,
	}
}

func (ec *ErrorCategorizerImpl) categorized(category domain.ErrorCategory, err error) *domain.CategorizedError {
	return &domain.CategorizedError{
		Category: category,
		Message:  ec.getCategoryMessage(category),
		Original: err,
	}
}

// GetRecoverySuggestions returns recovery suggestions for an error category
func (ec *ErrorCategorizerImpl) GetRecoverySuggestions(category domain.ErrorCategory) []string {
	suggestions := map[domain.ErrorCategory][]string{
		domain.ErrorCategoryInput: {
			"Check that the original and candidate files exist and are readable",
			"Vectors must be non-empty one-dimensional lists of finite numbers",
			"Use --language to match the language of the snippets",
		},
		domain.ErrorCategoryConfig: {
			"Verify configuration file format and values",
			"Try: patchsim init to generate a valid config file",
			"Check that labels and projection files match the encoding depth",
		},
		domain.ErrorCategoryTimeout: {
			"Rank fewer candidates at a time",
			"Lower the encoding depth to shrink vectors",
		},
		domain.ErrorCategoryOutput: {
			"Use one of the supported formats: text, json, yaml, csv",
			"Check write permissions for the output destination",
		},
		domain.ErrorCategoryProcessing: {
			"Check the snippets for syntax errors",
			"Try: patchsim strategies to list the available comparison strategies",
		},
		domain.ErrorCategoryUnknown: {
			"Run with --verbose for detailed error information",
			"Report the issue if it persists",
		},
	}

	if sug, ok := suggestions[category]; ok {
		return sug
	}
	return []string{"Check the error message for more details"}
}

func (ec *ErrorCategorizerImpl) getCategoryMessage(category domain.ErrorCategory) string {
	messages := map[domain.ErrorCategory]string{
		domain.ErrorCategoryInput:      "Failed to read input snippets or vectors",
		domain.ErrorCategoryConfig:     "Configuration file or settings error",
		domain.ErrorCategoryTimeout:    "Scoring timed out or was cancelled",
		domain.ErrorCategoryOutput:     "Failed to generate or write output",
		domain.ErrorCategoryProcessing: "Error while vectorizing or comparing snippets",
		domain.ErrorCategoryUnknown:    "An unexpected error occurred",
	}

	if msg, ok := messages[category]; ok {
		return msg
	}
	return "An error occurred"
}

func containsAnyPattern(str string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(str, pattern) {
			return true
		}
	}
	return false
}
