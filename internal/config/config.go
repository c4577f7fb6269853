package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/logger"
)

// ConfigFileName is the dedicated configuration file looked up from the
// working directory upwards
const ConfigFileName = ".patchsim.toml"

// EnvPrefix prefixes environment variables that override configuration keys,
// e.g. PATCHSIM_COMPARE_STRATEGY
const EnvPrefix = "PATCHSIM"

// Config represents the main configuration structure
type Config struct {
	// Vectorize controls parsing and encoding of snippets
	Vectorize VectorizeConfig `mapstructure:"vectorize" toml:"vectorize"`

	// Compare selects and tunes the comparer strategy
	Compare CompareConfig `mapstructure:"compare" toml:"compare"`

	// Rank controls candidate ranking
	Rank RankConfig `mapstructure:"rank" toml:"rank"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output"`

	// Log configures the global logger
	Log logger.Config `mapstructure:"log" toml:"log"`
}

// VectorizeConfig holds configuration for turning source code into vectors
type VectorizeConfig struct {
	// Language is the grammar used to parse snippets: java or python
	Language string `mapstructure:"language" toml:"language"`

	// Depth is the number of binary tree levels encoded; vectors hold 2^depth values
	Depth int `mapstructure:"depth" toml:"depth"`

	// WrapSnippets retries Java fragments inside a synthetic class
	WrapSnippets bool `mapstructure:"wrap_snippets" toml:"wrap_snippets"`

	// LabelsFile replaces the grammar's label enumeration, one label per line
	LabelsFile string `mapstructure:"labels_file" toml:"labels_file,omitempty"`

	// ProjectionFile is an optional safetensors projection applied to every vector
	ProjectionFile string `mapstructure:"projection_file" toml:"projection_file,omitempty"`
}

// CompareConfig holds configuration for the comparer
type CompareConfig struct {
	Strategy    string  `mapstructure:"strategy" toml:"strategy"`
	MinkowskiP  float64 `mapstructure:"minkowski_p" toml:"minkowski_p"`
	CanberraNaN bool    `mapstructure:"canberra_nan" toml:"canberra_nan"`
}

// RankConfig holds configuration for ranking candidates
type RankConfig struct {
	// Bulk scores all candidates in one batch, letting strategies rescale
	Bulk bool `mapstructure:"bulk" toml:"bulk"`

	// SkipInvalid scores unparsable candidates 0 instead of failing
	SkipInvalid bool `mapstructure:"skip_invalid" toml:"skip_invalid"`

	// Workers bounds concurrent vectorization; 0 uses one worker per CPU
	Workers int `mapstructure:"workers" toml:"workers"`

	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns"`
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" toml:"format"`

	// ShowVectors includes the encoded vectors in the output
	ShowVectors bool `mapstructure:"show_vectors" toml:"show_vectors"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Vectorize: VectorizeConfig{
			Language:     domain.DefaultLanguage,
			Depth:        domain.DefaultEncodingDepth,
			WrapSnippets: domain.DefaultWrapSnippets,
		},
		Compare: CompareConfig{
			Strategy:   domain.DefaultStrategy,
			MinkowskiP: domain.DefaultMinkowskiP,
		},
		Rank: RankConfig{
			SkipInvalid:     domain.DefaultSkipInvalid,
			Workers:         domain.DefaultWorkers,
			IncludePatterns: append([]string(nil), domain.DefaultIncludePatterns...),
			ExcludePatterns: append([]string(nil), domain.DefaultExcludePatterns...),
		},
		Output: OutputConfig{
			Format: string(domain.DefaultOutputFormat),
		},
		Log: logger.Config{
			Level: domain.DefaultLogLevel,
		},
	}
}

// setDefaults registers every key with viper so that environment variables
// can override keys missing from the file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("vectorize.language", cfg.Vectorize.Language)
	v.SetDefault("vectorize.depth", cfg.Vectorize.Depth)
	v.SetDefault("vectorize.wrap_snippets", cfg.Vectorize.WrapSnippets)
	v.SetDefault("vectorize.labels_file", cfg.Vectorize.LabelsFile)
	v.SetDefault("vectorize.projection_file", cfg.Vectorize.ProjectionFile)
	v.SetDefault("compare.strategy", cfg.Compare.Strategy)
	v.SetDefault("compare.minkowski_p", cfg.Compare.MinkowskiP)
	v.SetDefault("compare.canberra_nan", cfg.Compare.CanberraNaN)
	v.SetDefault("rank.bulk", cfg.Rank.Bulk)
	v.SetDefault("rank.skip_invalid", cfg.Rank.SkipInvalid)
	v.SetDefault("rank.workers", cfg.Rank.Workers)
	v.SetDefault("rank.include_patterns", cfg.Rank.IncludePatterns)
	v.SetDefault("rank.exclude_patterns", cfg.Rank.ExcludePatterns)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.show_vectors", cfg.Output.ShowVectors)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.json_format", cfg.Log.JSONFormat)
}

// LoadConfig loads configuration from the given file. An empty path looks
// for .patchsim.toml from the working directory upwards; when none exists the
// defaults are returned. PATCHSIM_* environment variables override both.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		if wd, err := os.Getwd(); err == nil {
			configPath = FindConfigFile(wd)
		}
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				return nil, fmt.Errorf("config file not found: %s", configPath)
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// FindConfigFile walks up from startDir looking for .patchsim.toml, then
// checks the home directory. It returns an empty string when none exists.
func FindConfigFile(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	switch strings.ToLower(c.Vectorize.Language) {
	case "java", "python":
	default:
		return fmt.Errorf("vectorize.language must be java or python, got %q", c.Vectorize.Language)
	}

	if c.Vectorize.Depth < 1 || c.Vectorize.Depth > domain.MaxEncodingDepth {
		return fmt.Errorf("vectorize.depth must be between 1 and %d, got %d",
			domain.MaxEncodingDepth, c.Vectorize.Depth)
	}

	if c.Compare.Strategy == "" {
		return fmt.Errorf("compare.strategy cannot be empty")
	}

	if c.Compare.MinkowskiP <= 0 {
		return fmt.Errorf("compare.minkowski_p must be > 0, got %g", c.Compare.MinkowskiP)
	}

	if c.Rank.Workers < 0 {
		return fmt.Errorf("rank.workers cannot be negative, got %d", c.Rank.Workers)
	}

	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	return nil
}

// ToSettings converts the configuration into domain settings
func (c *Config) ToSettings() *domain.SimilaritySettings {
	format, err := domain.ParseOutputFormat(c.Output.Format)
	if err != nil {
		format = domain.DefaultOutputFormat
	}
	return &domain.SimilaritySettings{
		Options: domain.SimilarityOptions{
			Language:       strings.ToLower(c.Vectorize.Language),
			Depth:          c.Vectorize.Depth,
			WrapSnippets:   c.Vectorize.WrapSnippets,
			LabelsFile:     c.Vectorize.LabelsFile,
			ProjectionFile: c.Vectorize.ProjectionFile,
			Strategy:       c.Compare.Strategy,
			MinkowskiP:     c.Compare.MinkowskiP,
			CanberraNaN:    c.Compare.CanberraNaN,
		},
		Bulk:            c.Rank.Bulk,
		SkipInvalid:     c.Rank.SkipInvalid,
		Workers:         c.Rank.Workers,
		IncludePatterns: append([]string(nil), c.Rank.IncludePatterns...),
		ExcludePatterns: append([]string(nil), c.Rank.ExcludePatterns...),
		OutputFormat:    format,
		ShowVectors:     c.Output.ShowVectors,
	}
}

// WriteConfig encodes the configuration as TOML
func WriteConfig(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}
