package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/pelletier/go-toml/v2"

	"github.com/ludo-technologies/patchsim/domain"
)

// defaultConfigTmpl contains the embedded default configuration template
//
//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds all values used to render the default config template.
// All values are sourced from the domain package to ensure a single source of truth.
type DefaultConfigValues struct {
	Language     string
	Depth        int
	MaxDepth     int
	WrapSnippets bool

	Strategy   string
	Strategies string
	MinkowskiP float64

	SkipInvalid     bool
	Workers         int
	IncludePatterns []string
	ExcludePatterns []string

	Format   string
	LogLevel string
}

func newDefaultConfigValues(strategies []string) DefaultConfigValues {
	return DefaultConfigValues{
		Language:        domain.DefaultLanguage,
		Depth:           domain.DefaultEncodingDepth,
		MaxDepth:        domain.MaxEncodingDepth,
		WrapSnippets:    domain.DefaultWrapSnippets,
		Strategy:        domain.DefaultStrategy,
		Strategies:      strings.Join(strategies, ", "),
		MinkowskiP:      domain.DefaultMinkowskiP,
		SkipInvalid:     domain.DefaultSkipInvalid,
		Workers:         domain.DefaultWorkers,
		IncludePatterns: domain.DefaultIncludePatterns,
		ExcludePatterns: domain.DefaultExcludePatterns,
		Format:          string(domain.DefaultOutputFormat),
		LogLevel:        domain.DefaultLogLevel,
	}
}

// GenerateDefaultConfigTOML renders the commented default config. strategies
// is the list of strategy names mentioned in the compare section.
func GenerateDefaultConfigTOML(strategies []string) (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues(strategies)); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// ParseConfigTOML decodes TOML content on top of the defaults
func ParseConfigTOML(content string) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal([]byte(content), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
