package domain

import (
	"context"
	"io"
)

// Snippet is one version of a code unit
type Snippet struct {
	// Name identifies the snippet in reports, usually its file path
	Name   string
	Source []byte
}

// SimilarityOptions controls how snippets are vectorized and compared
type SimilarityOptions struct {
	Language       string
	Depth          int
	WrapSnippets   bool
	LabelsFile     string
	ProjectionFile string

	Strategy    string
	MinkowskiP  float64
	CanberraNaN bool
}

// SimilaritySettings holds every configurable setting of a scoring run
type SimilaritySettings struct {
	Options SimilarityOptions

	// Ranking
	Bulk            bool
	SkipInvalid     bool
	Workers         int
	IncludePatterns []string
	ExcludePatterns []string

	// Output
	OutputFormat OutputFormat
	ShowVectors  bool
}

// DefaultSimilaritySettings returns the built-in defaults
func DefaultSimilaritySettings() SimilaritySettings {
	return SimilaritySettings{
		Options: SimilarityOptions{
			Language:     DefaultLanguage,
			Depth:        DefaultEncodingDepth,
			WrapSnippets: DefaultWrapSnippets,
			Strategy:     DefaultStrategy,
			MinkowskiP:   DefaultMinkowskiP,
		},
		SkipInvalid:     DefaultSkipInvalid,
		Workers:         DefaultWorkers,
		IncludePatterns: append([]string(nil), DefaultIncludePatterns...),
		ExcludePatterns: append([]string(nil), DefaultExcludePatterns...),
		OutputFormat:    DefaultOutputFormat,
	}
}

// ScoreRequest asks for the similarity of one patched snippet to its original
type ScoreRequest struct {
	OriginalPath string
	PatchedPath  string

	// Original and Patched are read from the paths when empty
	Original Snippet
	Patched  Snippet

	Settings     SimilaritySettings
	OutputWriter io.Writer
	ConfigPath   string
}

// AlignedRegion describes the node pair where two trees diverge
type AlignedRegion struct {
	OriginalLabel string `json:"original_label" yaml:"original_label"`
	PatchedLabel  string `json:"patched_label" yaml:"patched_label"`
	Identical     bool   `json:"identical" yaml:"identical"`
}

// VectorizedPair holds the vectors of the divergent region of two snippets
type VectorizedPair struct {
	Original []float64     `json:"original" yaml:"original"`
	Patched  []float64     `json:"patched" yaml:"patched"`
	Region   AlignedRegion `json:"region" yaml:"region"`
}

// ScoreResponse is the result of a ScoreRequest
type ScoreResponse struct {
	Original string        `json:"original" yaml:"original"`
	Patched  string        `json:"patched" yaml:"patched"`
	Strategy string        `json:"strategy" yaml:"strategy"`
	Score    float64       `json:"score" yaml:"score"`
	Raw      float64       `json:"raw" yaml:"raw"`
	Region   AlignedRegion `json:"region" yaml:"region"`

	OriginalVector []float64 `json:"original_vector,omitempty" yaml:"original_vector,omitempty"`
	PatchedVector  []float64 `json:"patched_vector,omitempty" yaml:"patched_vector,omitempty"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// RankRequest asks for the candidates ordered by similarity to the original
type RankRequest struct {
	OriginalPath   string
	CandidatePaths []string

	// Original and Candidates are read from the paths when empty
	Original   Snippet
	Candidates []Snippet

	Settings     SimilaritySettings
	OutputWriter io.Writer
	ConfigPath   string

	// Progress is optional
	Progress ProgressManager
}

// RankedCandidate is the score of a single candidate
type RankedCandidate struct {
	Rank  int     `json:"rank" yaml:"rank"`
	Name  string  `json:"name" yaml:"name"`
	Index int     `json:"index" yaml:"index"`
	Score float64 `json:"score" yaml:"score"`

	Region *AlignedRegion `json:"region,omitempty" yaml:"region,omitempty"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
	Vector []float64      `json:"vector,omitempty" yaml:"vector,omitempty"`
}

// RankSummary aggregates a ranking
type RankSummary struct {
	Total     int     `json:"total" yaml:"total"`
	Scored    int     `json:"scored" yaml:"scored"`
	Failed    int     `json:"failed" yaml:"failed"`
	BestScore float64 `json:"best_score" yaml:"best_score"`
	MeanScore float64 `json:"mean_score" yaml:"mean_score"`
}

// RankResponse is the result of a RankRequest. Candidates are ordered by
// descending score; ties keep their input order.
type RankResponse struct {
	Original   string            `json:"original" yaml:"original"`
	Strategy   string            `json:"strategy" yaml:"strategy"`
	Bulk       bool              `json:"bulk" yaml:"bulk"`
	Candidates []RankedCandidate `json:"candidates" yaml:"candidates"`
	Summary    RankSummary       `json:"summary" yaml:"summary"`

	GeneratedAt string `json:"generated_at" yaml:"generated_at"`
	Version     string `json:"version" yaml:"version"`
}

// CompareRequest scores precomputed vectors
type CompareRequest struct {
	// Reference and Candidates hold loosely typed input such as decoded JSON
	Reference  any
	Candidates any

	Strategy    string
	MinkowskiP  float64
	CanberraNaN bool
	Bulk        bool
}

// CompareResponse holds scores positionally aligned with the request candidates
type CompareResponse struct {
	Strategy string    `json:"strategy" yaml:"strategy"`
	Bulk     bool      `json:"bulk" yaml:"bulk"`
	Scores   []float64 `json:"scores" yaml:"scores"`
}

// SimilarityService scores snippets and vectors
type SimilarityService interface {
	// Score compares one patched snippet with its original
	Score(ctx context.Context, req ScoreRequest) (*ScoreResponse, error)

	// Rank scores every candidate against the original
	Rank(ctx context.Context, req RankRequest) (*RankResponse, error)

	// Compare scores precomputed vectors
	Compare(ctx context.Context, req CompareRequest) (*CompareResponse, error)

	// Vectorize aligns two snippets and encodes their divergent region
	Vectorize(ctx context.Context, opts SimilarityOptions, original, patched Snippet) (*VectorizedPair, error)
}

// SourceReader reads snippets and collects candidate files
type SourceReader interface {
	// CollectSourceFiles expands files and directories into source files
	CollectSourceFiles(paths []string, includePatterns, excludePatterns []string) ([]string, error)

	// ReadFile reads the content of a file
	ReadFile(path string) ([]byte, error)

	// FileExists checks if a file exists
	FileExists(path string) (bool, error)
}

// SimilarityFormatter renders similarity results
type SimilarityFormatter interface {
	WriteScore(response *ScoreResponse, format OutputFormat, writer io.Writer) error
	WriteRank(response *RankResponse, format OutputFormat, writer io.Writer) error
	WriteCompare(response *CompareResponse, format OutputFormat, writer io.Writer) error
}

// SimilarityConfigurationLoader loads settings from configuration files
type SimilarityConfigurationLoader interface {
	// LoadConfig loads settings from the specified path
	LoadConfig(path string) (*SimilaritySettings, error)

	// LoadDefaultConfig loads settings from a discovered config file, or the defaults
	LoadDefaultConfig() *SimilaritySettings

	// MergeConfig applies explicitly set values of override on top of base
	MergeConfig(base *SimilaritySettings, override *SimilaritySettings) *SimilaritySettings
}
