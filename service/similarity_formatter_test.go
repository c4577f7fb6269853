package service

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/patchsim/domain"
)

func sampleScore() *domain.ScoreResponse {
	return &domain.ScoreResponse{
		Original: "Old.java",
		Patched:  "New.java",
		Strategy: "cossim",
		Score:    8.5,
		Raw:      0.7,
		Region:   domain.AlignedRegion{OriginalLabel: "block", PatchedLabel: "block"},
		Version:  "test",
	}
}

func sampleRank() *domain.RankResponse {
	return &domain.RankResponse{
		Original: "Old.java",
		Strategy: "canberra",
		Candidates: []domain.RankedCandidate{
			{Rank: 1, Name: "A.java", Index: 1, Score: 9, Region: &domain.AlignedRegion{OriginalLabel: "if_statement", PatchedLabel: "while_statement"}},
			{Rank: 2, Name: "B.java", Index: 0, Score: 0, Error: "syntax error"},
		},
		Summary: domain.RankSummary{Total: 2, Scored: 1, Failed: 1, BestScore: 9, MeanScore: 9},
	}
}

func TestSimilarityFormatter_Text(t *testing.T) {
	f := NewSimilarityFormatter()

	var buf bytes.Buffer
	require.NoError(t, f.WriteScore(sampleScore(), domain.OutputFormatText, &buf))
	out := buf.String()
	assert.Contains(t, out, "Patch Similarity")
	assert.Contains(t, out, "Score: 8.5000")
	assert.Contains(t, out, "Region: block")
	assert.NotContains(t, out, ColorReset)

	buf.Reset()
	require.NoError(t, f.WriteRank(sampleRank(), domain.OutputFormatText, &buf))
	out = buf.String()
	assert.Contains(t, out, "canberra (per candidate)")
	assert.Contains(t, out, "if_statement -> while_statement")
	assert.Contains(t, out, "(syntax error)")
	assert.Contains(t, out, "Failed: 1")

	buf.Reset()
	require.NoError(t, f.WriteCompare(&domain.CompareResponse{Strategy: "tsss", Bulk: true, Scores: []float64{1, 2}}, domain.OutputFormatText, &buf))
	assert.Contains(t, buf.String(), "Vector Scores (tsss, bulk)")
}

func TestSimilarityFormatter_Color(t *testing.T) {
	f := NewSimilarityFormatter()
	f.Color = true

	var buf bytes.Buffer
	require.NoError(t, f.WriteScore(sampleScore(), domain.OutputFormatText, &buf))
	assert.Contains(t, buf.String(), ColorGreen+"8.5000"+ColorReset)
}

func TestSimilarityFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSimilarityFormatter().WriteRank(sampleRank(), domain.OutputFormatJSON, &buf))

	var decoded domain.RankResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, *sampleRank(), decoded)
	assert.NotContains(t, buf.String(), `"vector"`)
}

func TestSimilarityFormatter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSimilarityFormatter().WriteScore(sampleScore(), domain.OutputFormatYAML, &buf))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "cossim", decoded["strategy"])
	assert.Equal(t, 8.5, decoded["score"])
}

func TestSimilarityFormatter_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSimilarityFormatter().WriteRank(sampleRank(), domain.OutputFormatCSV, &buf))

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"rank", "name", "index", "score", "original_label", "patched_label", "error"},
		{"1", "A.java", "1", "9", "if_statement", "while_statement", ""},
		{"2", "B.java", "0", "0", "", "", "syntax error"},
	}, records)

	buf.Reset()
	require.NoError(t, NewSimilarityFormatter().WriteCompare(&domain.CompareResponse{Scores: []float64{0.25}}, domain.OutputFormatCSV, &buf))
	assert.Equal(t, "index,score\n0,0.25\n", buf.String())
}

func TestSimilarityFormatter_UnsupportedFormat(t *testing.T) {
	err := NewSimilarityFormatter().WriteScore(sampleScore(), domain.OutputFormat("html"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeUnsupportedFormat, domain.ErrorCode(err))
}

func TestFormatUtils_FormatVector(t *testing.T) {
	utils := NewFormatUtils(false)
	assert.Equal(t, "[1 0 2.5]", utils.FormatVector([]float64{1, 0, 2.5}))

	long := make([]float64, 20)
	assert.Contains(t, utils.FormatVector(long), "... (4 more)")
}

func TestBandForScore(t *testing.T) {
	assert.Equal(t, BandHigh, BandForScore(10))
	assert.Equal(t, BandMedium, BandForScore(5))
	assert.Equal(t, BandLow, BandForScore(0.5))
}
