package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ludo-technologies/patchsim/domain"
)

// RankUseCase orchestrates ranking candidate patches against an original
type RankUseCase struct {
	service      domain.SimilarityService
	reader       domain.SourceReader
	formatter    domain.SimilarityFormatter
	configLoader domain.SimilarityConfigurationLoader
	progress     domain.ProgressManager
}

// NewRankUseCase creates a new rank use case
func NewRankUseCase(
	service domain.SimilarityService,
	reader domain.SourceReader,
	formatter domain.SimilarityFormatter,
	configLoader domain.SimilarityConfigurationLoader,
	progress domain.ProgressManager,
) *RankUseCase {
	return &RankUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		configLoader: configLoader,
		progress:     progress,
	}
}

// Execute ranks the candidates and writes the result to the output writer
func (uc *RankUseCase) Execute(ctx context.Context, req domain.RankRequest) error {
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer is required"))
	}

	response, settings, err := uc.rank(ctx, req)
	if err != nil {
		return err
	}

	if err := uc.formatter.WriteRank(response, settings.OutputFormat, req.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// Rank runs the workflow and returns the response without formatting it
func (uc *RankUseCase) Rank(ctx context.Context, req domain.RankRequest) (*domain.RankResponse, error) {
	response, _, err := uc.rank(ctx, req)
	return response, err
}

func (uc *RankUseCase) rank(ctx context.Context, req domain.RankRequest) (*domain.RankResponse, domain.SimilaritySettings, error) {
	if err := uc.validateRequest(req); err != nil {
		return nil, req.Settings, domain.NewInvalidInputError("invalid request", err)
	}

	settings, err := loadSettings(uc.configLoader, req.ConfigPath, req.Settings)
	if err != nil {
		return nil, req.Settings, domain.NewConfigError("failed to load configuration", err)
	}
	req.Settings = settings

	if req.Original, err = readSnippet(uc.reader, req.Original, req.OriginalPath); err != nil {
		return nil, settings, err
	}

	if len(req.Candidates) == 0 {
		files, err := ResolveCandidateFiles(uc.reader, req.CandidatePaths,
			settings.IncludePatterns, settings.ExcludePatterns, req.OriginalPath)
		if err != nil {
			return nil, settings, err
		}
		if len(files) == 0 {
			return nil, settings, domain.NewInvalidCandidatesError("no candidate files found in the specified paths", nil)
		}

		candidates := make([]domain.Snippet, 0, len(files))
		for _, f := range files {
			s, err := readSnippet(uc.reader, domain.Snippet{}, f)
			if err != nil {
				return nil, settings, err
			}
			candidates = append(candidates, s)
		}
		req.Candidates = candidates
	}

	if req.Progress == nil {
		req.Progress = uc.progress
	}

	log.Debug().Str("original", req.Original.Name).Int("candidates", len(req.Candidates)).
		Str("strategy", settings.Options.Strategy).Bool("bulk", settings.Bulk).Msg("Ranking patches")

	response, err := uc.service.Rank(ctx, req)
	if err != nil {
		return nil, settings, err
	}
	return response, settings, nil
}

func (uc *RankUseCase) validateRequest(req domain.RankRequest) error {
	if req.Original.Source == nil && req.OriginalPath == "" {
		return fmt.Errorf("original file is required")
	}
	if len(req.Candidates) == 0 && len(req.CandidatePaths) == 0 {
		return fmt.Errorf("at least one candidate is required")
	}
	if req.Settings.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	return nil
}

// RankUseCaseBuilder provides a builder pattern for creating RankUseCase
type RankUseCaseBuilder struct {
	service      domain.SimilarityService
	reader       domain.SourceReader
	formatter    domain.SimilarityFormatter
	configLoader domain.SimilarityConfigurationLoader
	progress     domain.ProgressManager
}

// NewRankUseCaseBuilder creates a new builder
func NewRankUseCaseBuilder() *RankUseCaseBuilder {
	return &RankUseCaseBuilder{}
}

// WithService sets the similarity service
func (b *RankUseCaseBuilder) WithService(service domain.SimilarityService) *RankUseCaseBuilder {
	b.service = service
	return b
}

// WithReader sets the source reader
func (b *RankUseCaseBuilder) WithReader(reader domain.SourceReader) *RankUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *RankUseCaseBuilder) WithFormatter(formatter domain.SimilarityFormatter) *RankUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *RankUseCaseBuilder) WithConfigLoader(configLoader domain.SimilarityConfigurationLoader) *RankUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// WithProgress sets the progress manager
func (b *RankUseCaseBuilder) WithProgress(progress domain.ProgressManager) *RankUseCaseBuilder {
	b.progress = progress
	return b
}

// Build creates the RankUseCase. The configuration loader and progress
// manager are optional.
func (b *RankUseCaseBuilder) Build() (*RankUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("similarity service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("source reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewRankUseCase(b.service, b.reader, b.formatter, b.configLoader, b.progress), nil
}
