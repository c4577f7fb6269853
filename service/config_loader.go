package service

import (
	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/config"
)

// ConfigurationLoaderImpl implements the SimilarityConfigurationLoader interface
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path. An empty path
// searches for .patchsim.toml.
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.SimilaritySettings, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg.ToSettings(), nil
}

// LoadDefaultConfig loads a discovered configuration file, falling back to
// the built-in defaults when none exists or it cannot be read
func (c *ConfigurationLoaderImpl) LoadDefaultConfig() *domain.SimilaritySettings {
	if settings, err := c.LoadConfig(""); err == nil {
		return settings
	}
	return config.DefaultConfig().ToSettings()
}

// MergeConfig overrides base with every non-zero value of override. Boolean
// settings cannot be told apart from their zero value here, so they are
// only taken from override when true; use ConfigurationLoaderWithFlags to
// honor explicitly disabled flags.
func (c *ConfigurationLoaderImpl) MergeConfig(base *domain.SimilaritySettings, override *domain.SimilaritySettings) *domain.SimilaritySettings {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	o := override.Options

	if o.Language != "" {
		merged.Options.Language = o.Language
	}
	if o.Depth != 0 {
		merged.Options.Depth = o.Depth
	}
	if o.WrapSnippets {
		merged.Options.WrapSnippets = true
	}
	if o.LabelsFile != "" {
		merged.Options.LabelsFile = o.LabelsFile
	}
	if o.ProjectionFile != "" {
		merged.Options.ProjectionFile = o.ProjectionFile
	}
	if o.Strategy != "" {
		merged.Options.Strategy = o.Strategy
	}
	if o.MinkowskiP != 0 {
		merged.Options.MinkowskiP = o.MinkowskiP
	}
	if o.CanberraNaN {
		merged.Options.CanberraNaN = true
	}

	if override.Bulk {
		merged.Bulk = true
	}
	if override.SkipInvalid {
		merged.SkipInvalid = true
	}
	if override.Workers != 0 {
		merged.Workers = override.Workers
	}
	if len(override.IncludePatterns) > 0 {
		merged.IncludePatterns = override.IncludePatterns
	}
	if len(override.ExcludePatterns) > 0 {
		merged.ExcludePatterns = override.ExcludePatterns
	}
	if override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}
	if override.ShowVectors {
		merged.ShowVectors = true
	}

	return &merged
}
