package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/patchsim/domain"
)

// CompareUseCase scores precomputed vectors and formats the result
type CompareUseCase struct {
	service   domain.SimilarityService
	formatter domain.SimilarityFormatter
}

// NewCompareUseCase creates a new compare use case
func NewCompareUseCase(service domain.SimilarityService, formatter domain.SimilarityFormatter) (*CompareUseCase, error) {
	if service == nil {
		return nil, fmt.Errorf("similarity service is required")
	}
	if formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return &CompareUseCase{service: service, formatter: formatter}, nil
}

// Execute compares the vectors and writes the scores in the given format
func (uc *CompareUseCase) Execute(ctx context.Context, req domain.CompareRequest, format domain.OutputFormat, writer io.Writer) error {
	if writer == nil {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer is required"))
	}

	response, err := uc.service.Compare(ctx, req)
	if err != nil {
		return err
	}

	if err := uc.formatter.WriteCompare(response, format, writer); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}
