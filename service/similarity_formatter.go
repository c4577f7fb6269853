package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ludo-technologies/patchsim/domain"
)

// SimilarityFormatterImpl implements the SimilarityFormatter interface
type SimilarityFormatterImpl struct {
	// Color enables ANSI colors in text output
	Color bool
}

// NewSimilarityFormatter creates a new similarity formatter
func NewSimilarityFormatter() *SimilarityFormatterImpl {
	return &SimilarityFormatterImpl{}
}

// WriteScore writes a single score result
func (f *SimilarityFormatterImpl) WriteScore(response *domain.ScoreResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return writeString(writer, f.formatScoreText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		return writeCSV(writer,
			[]string{"original", "patched", "strategy", "score", "raw", "original_label", "patched_label", "identical"},
			[][]string{{
				response.Original,
				response.Patched,
				response.Strategy,
				formatCSVFloat(response.Score),
				formatCSVFloat(response.Raw),
				response.Region.OriginalLabel,
				response.Region.PatchedLabel,
				strconv.FormatBool(response.Region.Identical),
			}})
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteRank writes a ranking
func (f *SimilarityFormatterImpl) WriteRank(response *domain.RankResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return writeString(writer, f.formatRankText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		rows := make([][]string, 0, len(response.Candidates))
		for _, c := range response.Candidates {
			var origLabel, patchedLabel string
			if c.Region != nil {
				origLabel, patchedLabel = c.Region.OriginalLabel, c.Region.PatchedLabel
			}
			rows = append(rows, []string{
				strconv.Itoa(c.Rank),
				c.Name,
				strconv.Itoa(c.Index),
				formatCSVFloat(c.Score),
				origLabel,
				patchedLabel,
				c.Error,
			})
		}
		return writeCSV(writer,
			[]string{"rank", "name", "index", "score", "original_label", "patched_label", "error"}, rows)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

// WriteCompare writes scores of precomputed vectors
func (f *SimilarityFormatterImpl) WriteCompare(response *domain.CompareResponse, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatText:
		return writeString(writer, f.formatCompareText(response))
	case domain.OutputFormatJSON:
		return WriteJSON(writer, response)
	case domain.OutputFormatYAML:
		return WriteYAML(writer, response)
	case domain.OutputFormatCSV:
		rows := make([][]string, len(response.Scores))
		for i, s := range response.Scores {
			rows[i] = []string{strconv.Itoa(i), formatCSVFloat(s)}
		}
		return writeCSV(writer, []string{"index", "score"}, rows)
	default:
		return domain.NewUnsupportedFormatError(string(format))
	}
}

func (f *SimilarityFormatterImpl) formatScoreText(response *domain.ScoreResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.Color)

	builder.WriteString(utils.FormatMainHeader("Patch Similarity"))
	builder.WriteString(utils.FormatLabel("Original", response.Original))
	builder.WriteString(utils.FormatLabel("Patched", response.Patched))
	builder.WriteString(utils.FormatLabel("Strategy", response.Strategy))
	builder.WriteString(utils.FormatLabel("Score", utils.FormatScore(response.Score)))
	builder.WriteString(utils.FormatLabel("Raw", fmt.Sprintf("%.6f", response.Raw)))
	builder.WriteString(utils.FormatLabel("Region", formatRegion(response.Region)))

	if response.OriginalVector != nil {
		builder.WriteString("\n")
		builder.WriteString(utils.FormatSectionHeader("Vectors"))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "original", utils.FormatVector(response.OriginalVector)))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "patched", utils.FormatVector(response.PatchedVector)))
	}
	return builder.String()
}

func (f *SimilarityFormatterImpl) formatRankText(response *domain.RankResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.Color)

	builder.WriteString(utils.FormatMainHeader("Patch Ranking"))
	builder.WriteString(utils.FormatLabel("Original", response.Original))
	mode := "per candidate"
	if response.Bulk {
		mode = "bulk"
	}
	builder.WriteString(utils.FormatLabel("Strategy", fmt.Sprintf("%s (%s)", response.Strategy, mode)))
	builder.WriteString("\n")

	builder.WriteString(utils.FormatTableHeader(fmt.Sprintf("%4s", "Rank"), fmt.Sprintf("%10s", "Score"), "Candidate"))
	for _, c := range response.Candidates {
		line := fmt.Sprintf("%4d  %10s  %s", c.Rank, utils.FormatScore(c.Score), c.Name)
		if c.Error != "" {
			line += "  (" + c.Error + ")"
		} else if c.Region != nil {
			line += "  [" + formatRegion(*c.Region) + "]"
		}
		builder.WriteString(line + "\n")
	}
	builder.WriteString("\n")

	s := response.Summary
	builder.WriteString(utils.FormatSectionHeader("Summary"))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Total", s.Total))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Scored", s.Scored))
	builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Failed", s.Failed))
	if s.Scored > 0 {
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Best", fmt.Sprintf("%.4f", s.BestScore)))
		builder.WriteString(utils.FormatLabelWithIndent(SectionPadding, "Mean", fmt.Sprintf("%.4f", s.MeanScore)))
	}
	return builder.String()
}

func (f *SimilarityFormatterImpl) formatCompareText(response *domain.CompareResponse) string {
	var builder strings.Builder
	utils := NewFormatUtils(f.Color)

	title := "Vector Scores (" + response.Strategy
	if response.Bulk {
		title += ", bulk"
	}
	builder.WriteString(utils.FormatMainHeader(title + ")"))
	for i, s := range response.Scores {
		builder.WriteString(fmt.Sprintf("%4d  %s\n", i, utils.FormatScore(s)))
	}
	return builder.String()
}

func formatRegion(r domain.AlignedRegion) string {
	if r.Identical {
		return "identical"
	}
	if r.OriginalLabel == r.PatchedLabel {
		return r.OriginalLabel
	}
	return r.OriginalLabel + " -> " + r.PatchedLabel
}

func formatCSVFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return domain.NewOutputError("failed to write output", err)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return domain.NewOutputError("failed to write CSV header", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return domain.NewOutputError("failed to write CSV", err)
	}
	return nil
}
