package service

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/patchsim/domain"
)

// WriteJSON writes indented JSON for the given value to the writer.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode JSON", err)
	}
	return nil
}

// WriteYAML writes YAML for the given value to the writer.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return domain.NewOutputError("failed to encode YAML", err)
	}
	return nil
}

// Standard formatting constants
const (
	HeaderWidth    = 40
	LabelWidth     = 12
	SectionPadding = 2
)

// ANSI color codes for consistent color usage
const (
	ColorReset  = "\x1b[0m"
	ColorRed    = "\x1b[31m"
	ColorYellow = "\x1b[33m"
	ColorGreen  = "\x1b[32m"
)

// SimilarityBand buckets a 0..10 score for display
type SimilarityBand string

const (
	BandHigh   SimilarityBand = "High"
	BandMedium SimilarityBand = "Medium"
	BandLow    SimilarityBand = "Low"
)

// BandForScore returns the band of a score on the 0..10 scale
func BandForScore(score float64) SimilarityBand {
	switch {
	case score >= 7:
		return BandHigh
	case score >= 4:
		return BandMedium
	default:
		return BandLow
	}
}

// FormatUtils provides shared formatting utilities
type FormatUtils struct {
	color bool
}

// NewFormatUtils creates a new format utilities instance
func NewFormatUtils(color bool) *FormatUtils {
	return &FormatUtils{color: color}
}

// FormatMainHeader creates a standardized main header
func (f *FormatUtils) FormatMainHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(title + "\n")
	builder.WriteString(strings.Repeat("=", HeaderWidth) + "\n\n")
	return builder.String()
}

// FormatSectionHeader creates a standardized section header
func (f *FormatUtils) FormatSectionHeader(title string) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(title) + "\n")
	builder.WriteString(strings.Repeat("-", len(title)) + "\n")
	return builder.String()
}

// FormatLabel creates a consistently formatted label with right alignment
func (f *FormatUtils) FormatLabel(label string, value interface{}) string {
	padding := LabelWidth - len(label)
	if padding < 0 {
		padding = 0
	}
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", padding), label, value)
}

// FormatLabelWithIndent creates a formatted label with specific indentation
func (f *FormatUtils) FormatLabelWithIndent(indent int, label string, value interface{}) string {
	return fmt.Sprintf("%s%s: %v\n", strings.Repeat(" ", indent), label, value)
}

// FormatScore formats a score with its band, colored when enabled
func (f *FormatUtils) FormatScore(score float64) string {
	text := fmt.Sprintf("%.4f", score)
	if !f.color {
		return text
	}
	return fmt.Sprintf("%s%s%s", f.bandColor(BandForScore(score)), text, ColorReset)
}

func (f *FormatUtils) bandColor(band SimilarityBand) string {
	switch band {
	case BandHigh:
		return ColorGreen
	case BandMedium:
		return ColorYellow
	default:
		return ColorRed
	}
}

// FormatTableHeader creates a table header with consistent formatting
func (f *FormatUtils) FormatTableHeader(columns ...string) string {
	header := strings.Join(columns, "  ")
	separator := strings.Repeat("-", len(header))
	return header + "\n" + separator + "\n"
}

// FormatVector renders a vector compactly, eliding the middle of long ones
func (f *FormatUtils) FormatVector(v []float64) string {
	const edge = 8
	parts := make([]string, 0, 2*edge+1)
	if len(v) <= 2*edge {
		for _, x := range v {
			parts = append(parts, formatFloat(x))
		}
	} else {
		for _, x := range v[:edge] {
			parts = append(parts, formatFloat(x))
		}
		parts = append(parts, fmt.Sprintf("... (%d more)", len(v)-2*edge))
		for _, x := range v[len(v)-edge:] {
			parts = append(parts, formatFloat(x))
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatFloat(x float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.4f", x), "0"), ".")
}
