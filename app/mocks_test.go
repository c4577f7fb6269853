package app

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/ludo-technologies/patchsim/domain"
)

type mockSimilarityService struct {
	mock.Mock
}

func (m *mockSimilarityService) Score(ctx context.Context, req domain.ScoreRequest) (*domain.ScoreResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ScoreResponse), args.Error(1)
}

func (m *mockSimilarityService) Rank(ctx context.Context, req domain.RankRequest) (*domain.RankResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RankResponse), args.Error(1)
}

func (m *mockSimilarityService) Compare(ctx context.Context, req domain.CompareRequest) (*domain.CompareResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompareResponse), args.Error(1)
}

type mockSourceReader struct {
	mock.Mock
}

func (m *mockSourceReader) CollectSourceFiles(paths []string, includePatterns, excludePatterns []string) ([]string, error) {
	args := m.Called(paths, includePatterns, excludePatterns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockSourceReader) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockSourceReader) FileExists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

type mockSimilarityFormatter struct {
	mock.Mock
}

func (m *mockSimilarityFormatter) WriteScore(response *domain.ScoreResponse, format domain.OutputFormat, writer io.Writer) error {
	return m.Called(response, format, writer).Error(0)
}

func (m *mockSimilarityFormatter) WriteRank(response *domain.RankResponse, format domain.OutputFormat, writer io.Writer) error {
	return m.Called(response, format, writer).Error(0)
}

func (m *mockSimilarityFormatter) WriteCompare(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	return m.Called(response, format, writer).Error(0)
}

type mockConfigLoader struct {
	mock.Mock
}

func (m *mockConfigLoader) LoadConfig(path string) (*domain.SimilaritySettings, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SimilaritySettings), args.Error(1)
}

func (m *mockConfigLoader) LoadDefaultConfig() *domain.SimilaritySettings {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.SimilaritySettings)
}

func (m *mockConfigLoader) MergeConfig(base *domain.SimilaritySettings, override *domain.SimilaritySettings) *domain.SimilaritySettings {
	return m.Called(base, override).Get(0).(*domain.SimilaritySettings)
}

func (m *mockSimilarityService) Vectorize(ctx context.Context, opts domain.SimilarityOptions, original, patched domain.Snippet) (*domain.VectorizedPair, error) {
	args := m.Called(ctx, opts, original, patched)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VectorizedPair), args.Error(1)
}
