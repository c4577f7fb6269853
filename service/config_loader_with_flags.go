package service

import (
	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/config"
)

// Flag names shared by the CLI and the flag-aware merge
const (
	FlagLanguage    = "language"
	FlagDepth       = "depth"
	FlagWrap        = "wrap"
	FlagLabels      = "labels"
	FlagProjection  = "projection"
	FlagStrategy    = "strategy"
	FlagMinkowskiP  = "p"
	FlagCanberraNaN = "canberra-nan"
	FlagBulk        = "bulk"
	FlagSkipInvalid = "skip-invalid"
	FlagWorkers     = "workers"
	FlagInclude     = "include"
	FlagExclude     = "exclude"
	FlagFormat      = "format"
	FlagShowVectors = "show-vectors"
)

// ConfigurationLoaderWithFlags wraps configuration loading with explicit flag tracking
type ConfigurationLoaderWithFlags struct {
	loader      *ConfigurationLoaderImpl
	flagTracker *config.FlagTracker
}

// NewConfigurationLoaderWithFlags creates a new configuration loader that tracks explicit flags
func NewConfigurationLoaderWithFlags(explicitFlags map[string]bool) *ConfigurationLoaderWithFlags {
	return &ConfigurationLoaderWithFlags{
		loader:      NewConfigurationLoader(),
		flagTracker: config.NewFlagTrackerWithFlags(explicitFlags),
	}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderWithFlags) LoadConfig(path string) (*domain.SimilaritySettings, error) {
	return c.loader.LoadConfig(path)
}

// LoadDefaultConfig loads the default configuration
func (c *ConfigurationLoaderWithFlags) LoadDefaultConfig() *domain.SimilaritySettings {
	return c.loader.LoadDefaultConfig()
}

// MergeConfig applies the values of override whose flags were explicitly set
func (c *ConfigurationLoaderWithFlags) MergeConfig(base *domain.SimilaritySettings, override *domain.SimilaritySettings) *domain.SimilaritySettings {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	ft := c.flagTracker
	merged := *base
	merged.IncludePatterns = append([]string(nil), base.IncludePatterns...)
	merged.ExcludePatterns = append([]string(nil), base.ExcludePatterns...)
	b, o := &merged.Options, override.Options

	config.Override(ft, FlagLanguage, &b.Language, o.Language)
	config.Override(ft, FlagDepth, &b.Depth, o.Depth)
	config.Override(ft, FlagWrap, &b.WrapSnippets, o.WrapSnippets)
	config.Override(ft, FlagLabels, &b.LabelsFile, o.LabelsFile)
	config.Override(ft, FlagProjection, &b.ProjectionFile, o.ProjectionFile)
	config.Override(ft, FlagStrategy, &b.Strategy, o.Strategy)
	config.Override(ft, FlagMinkowskiP, &b.MinkowskiP, o.MinkowskiP)
	config.Override(ft, FlagCanberraNaN, &b.CanberraNaN, o.CanberraNaN)

	config.Override(ft, FlagBulk, &merged.Bulk, override.Bulk)
	config.Override(ft, FlagSkipInvalid, &merged.SkipInvalid, override.SkipInvalid)
	config.Override(ft, FlagWorkers, &merged.Workers, override.Workers)
	config.OverrideSlice(ft, FlagInclude, &merged.IncludePatterns, override.IncludePatterns)
	config.OverrideSlice(ft, FlagExclude, &merged.ExcludePatterns, override.ExcludePatterns)
	config.Override(ft, FlagFormat, &merged.OutputFormat, override.OutputFormat)
	config.Override(ft, FlagShowVectors, &merged.ShowVectors, override.ShowVectors)

	return &merged
}
