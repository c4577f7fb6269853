package mcp

import (
	"github.com/ludo-technologies/patchsim/app"
	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/config"
	"github.com/ludo-technologies/patchsim/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	service    domain.SimilarityService
	reader     domain.SourceReader
	config     *config.Config
	configPath string
}

// NewDependencies constructs the dependency set with sane defaults.
func NewDependencies(cfg *config.Config, configPath string) *Dependencies {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return &Dependencies{
		service:    service.NewSimilarityService(),
		reader:     service.NewFileReader(),
		config:     cfg,
		configPath: configPath,
	}
}

// Config exposes the loaded configuration snapshot.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Settings returns a fresh copy of the configured settings.
func (d *Dependencies) Settings() domain.SimilaritySettings {
	return *d.config.ToSettings()
}

// Service returns the shared similarity service.
func (d *Dependencies) Service() domain.SimilarityService {
	return d.service
}

// BuildScoreUseCase assembles a ScoreUseCase. Settings come from the
// configuration snapshot, so no loader is attached.
func (d *Dependencies) BuildScoreUseCase() (*app.ScoreUseCase, error) {
	return app.NewScoreUseCaseBuilder().
		WithService(d.service).
		WithReader(d.reader).
		WithFormatter(service.NewSimilarityFormatter()).
		Build()
}

// BuildRankUseCase assembles a RankUseCase without progress output, since
// stdout carries the MCP protocol.
func (d *Dependencies) BuildRankUseCase() (*app.RankUseCase, error) {
	return app.NewRankUseCaseBuilder().
		WithService(d.service).
		WithReader(d.reader).
		WithFormatter(service.NewSimilarityFormatter()).
		Build()
}
