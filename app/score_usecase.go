package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ludo-technologies/patchsim/domain"
)

// ScoreUseCase orchestrates scoring one patched file against its original
type ScoreUseCase struct {
	service      domain.SimilarityService
	reader       domain.SourceReader
	formatter    domain.SimilarityFormatter
	configLoader domain.SimilarityConfigurationLoader
}

// NewScoreUseCase creates a new score use case
func NewScoreUseCase(
	service domain.SimilarityService,
	reader domain.SourceReader,
	formatter domain.SimilarityFormatter,
	configLoader domain.SimilarityConfigurationLoader,
) *ScoreUseCase {
	return &ScoreUseCase{
		service:      service,
		reader:       reader,
		formatter:    formatter,
		configLoader: configLoader,
	}
}

// Execute scores the request and writes the result to its output writer
func (uc *ScoreUseCase) Execute(ctx context.Context, req domain.ScoreRequest) error {
	if req.OutputWriter == nil {
		return domain.NewInvalidInputError("invalid request", fmt.Errorf("output writer is required"))
	}

	response, settings, err := uc.score(ctx, req)
	if err != nil {
		return err
	}

	if err := uc.formatter.WriteScore(response, settings.OutputFormat, req.OutputWriter); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

// Score runs the workflow and returns the response without formatting it
func (uc *ScoreUseCase) Score(ctx context.Context, req domain.ScoreRequest) (*domain.ScoreResponse, error) {
	response, _, err := uc.score(ctx, req)
	return response, err
}

func (uc *ScoreUseCase) score(ctx context.Context, req domain.ScoreRequest) (*domain.ScoreResponse, domain.SimilaritySettings, error) {
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
	if req.Patched, err = readSnippet(uc.reader, req.Patched, req.PatchedPath); err != nil {
		return nil, settings, err
	}

	log.Debug().Str("original", req.Original.Name).Str("patched", req.Patched.Name).
		Str("strategy", settings.Options.Strategy).Msg("Scoring patch")

	response, err := uc.service.Score(ctx, req)
	if err != nil {
		return nil, settings, err
	}
	return response, settings, nil
}

func (uc *ScoreUseCase) validateRequest(req domain.ScoreRequest) error {
	if req.Original.Source == nil && req.OriginalPath == "" {
		return fmt.Errorf("original file is required")
	}
	if req.Patched.Source == nil && req.PatchedPath == "" {
		return fmt.Errorf("patched file is required")
	}
	if (req.Original.Source == nil || req.Patched.Source == nil) && uc.reader == nil {
		return fmt.Errorf("a source reader is required to read files")
	}
	return nil
}

// readSnippet fills a snippet from path unless it already holds source
func readSnippet(reader domain.SourceReader, s domain.Snippet, path string) (domain.Snippet, error) {
	if s.Source != nil {
		if s.Name == "" {
			s.Name = path
		}
		return s, nil
	}
	content, err := reader.ReadFile(path)
	if err != nil {
		return s, err
	}
	return domain.Snippet{Name: path, Source: content}, nil
}

// ScoreUseCaseBuilder provides a builder pattern for creating ScoreUseCase
type ScoreUseCaseBuilder struct {
	service      domain.SimilarityService
	reader       domain.SourceReader
	formatter    domain.SimilarityFormatter
	configLoader domain.SimilarityConfigurationLoader
}

// NewScoreUseCaseBuilder creates a new builder
func NewScoreUseCaseBuilder() *ScoreUseCaseBuilder {
	return &ScoreUseCaseBuilder{}
}

// WithService sets the similarity service
func (b *ScoreUseCaseBuilder) WithService(service domain.SimilarityService) *ScoreUseCaseBuilder {
	b.service = service
	return b
}

// WithReader sets the source reader
func (b *ScoreUseCaseBuilder) WithReader(reader domain.SourceReader) *ScoreUseCaseBuilder {
	b.reader = reader
	return b
}

// WithFormatter sets the output formatter
func (b *ScoreUseCaseBuilder) WithFormatter(formatter domain.SimilarityFormatter) *ScoreUseCaseBuilder {
	b.formatter = formatter
	return b
}

// WithConfigLoader sets the configuration loader
func (b *ScoreUseCaseBuilder) WithConfigLoader(configLoader domain.SimilarityConfigurationLoader) *ScoreUseCaseBuilder {
	b.configLoader = configLoader
	return b
}

// Build creates the ScoreUseCase. The configuration loader is optional.
func (b *ScoreUseCaseBuilder) Build() (*ScoreUseCase, error) {
	if b.service == nil {
		return nil, fmt.Errorf("similarity service is required")
	}
	if b.reader == nil {
		return nil, fmt.Errorf("source reader is required")
	}
	if b.formatter == nil {
		return nil, fmt.Errorf("output formatter is required")
	}
	return NewScoreUseCase(b.service, b.reader, b.formatter, b.configLoader), nil
}
