package app

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/service"
)

func TestCompareUseCase_Execute(t *testing.T) {
	uc, err := NewCompareUseCase(service.NewSimilarityService(), service.NewSimilarityFormatter())
	require.NoError(t, err)

	var out bytes.Buffer
	err = uc.Execute(context.Background(), domain.CompareRequest{
		Reference:  []any{1.0, 0.0},
		Candidates: []any{[]any{1.0, 0.0}, []any{-1.0, 0.0}},
		Strategy:   "cosine",
	}, domain.OutputFormatCSV, &out)
	require.NoError(t, err)
	assert.Equal(t, "index,score\n0,10\n1,0\n", out.String())
}

func TestCompareUseCase_Errors(t *testing.T) {
	_, err := NewCompareUseCase(nil, service.NewSimilarityFormatter())
	assert.Error(t, err)

	uc, err := NewCompareUseCase(service.NewSimilarityService(), service.NewSimilarityFormatter())
	require.NoError(t, err)

	err = uc.Execute(context.Background(), domain.CompareRequest{Reference: []any{}, Candidates: []any{}}, domain.OutputFormatText, &bytes.Buffer{})
	assert.Equal(t, domain.ErrCodeInvalidReference, domain.ErrorCode(err))

	err = uc.Execute(context.Background(), domain.CompareRequest{Reference: []any{1.0}, Candidates: []any{}}, domain.OutputFormatText, nil)
	assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
}
