package comparer

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidReference marks a reference vector that cannot be scored
	ErrInvalidReference = errors.New("invalid reference vector")

	// ErrInvalidCandidates marks a candidate set, or one of its vectors, that cannot be scored
	ErrInvalidCandidates = errors.New("invalid candidate vectors")
)

// ValidationError describes why a comparison input was rejected.
// Kind is ErrInvalidReference or ErrInvalidCandidates; Index is the
// position of the offending candidate, or -1 when not applicable.
type ValidationError struct {
	Kind   error
	Index  int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%v: candidate %d: %s", e.Kind, e.Index, e.Reason)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

func referenceError(reason string) error {
	return &ValidationError{Kind: ErrInvalidReference, Index: -1, Reason: reason}
}

func candidateError(index int, reason string) error {
	return &ValidationError{Kind: ErrInvalidCandidates, Index: index, Reason: reason}
}

func validateReference(v Vector) error {
	if reason := checkVector(v); reason != "" {
		return referenceError(reason)
	}
	return nil
}

func validateCandidate(v Vector, index int) error {
	if reason := checkVector(v); reason != "" {
		return candidateError(index, reason)
	}
	return nil
}

func checkVector(v Vector) string {
	if len(v) == 0 {
		return "vector is empty"
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Sprintf("element %d is not a finite number", i)
		}
	}
	return ""
}
