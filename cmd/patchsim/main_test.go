package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/patchsim/domain"
	"github.com/ludo-technologies/patchsim/internal/config"
	"github.com/ludo-technologies/patchsim/internal/version"
)

const (
	javaOriginal = `class Calc {
    int add(int a, int b) {
        return a + b;
    }
}
`
	javaPatched = `class Calc {
    int add(int a, int b) {
        int sum = a + b;
        return sum;
    }
}
`
)

func TestVersion(t *testing.T) {
	// Version package should provide version info
	if version.Short() == "" {
		t.Error("version should not be empty")
	}
}

// runCLI executes the command tree with args and returns stdout and stderr
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeConfig writes an empty configuration so tests never pick up a
// .patchsim.toml from the home directory
func writeConfig(t *testing.T, dir string) string {
	return writeFile(t, dir, "test.toml", "[vectorize]\nlanguage = \"java\"\n")
}

func TestCommandInterfaces(t *testing.T) {
	root := NewRootCmd()
	expected := map[string][]string{
		"score":      {"language", "depth", "strategy", "format", "json", "show-vectors"},
		"rank":       {"strategy", "bulk", "skip-invalid", "workers", "include", "exclude", "no-progress"},
		"compare":    {"strategy", "p", "bulk", "format"},
		"strategies": {"format", "json"},
		"init":       {"force", "output"},
		"config":     {},
		"version":    {"short", "json"},
	}

	for name, flags := range expected {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := root.Find([]string{name})
			require.NoError(t, err)
			require.Equal(t, name, cmd.Name())
			assert.NotEmpty(t, cmd.Short, "command should have a short description")
			for _, flag := range flags {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "expected flag %q", flag)
			}
		})
	}

	for _, flag := range []string{"config", "log-level", "verbose"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "expected persistent flag %q", flag)
	}
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	orig := writeFile(t, dir, "Original.java", javaOriginal)
	same := writeFile(t, dir, "Same.java", javaOriginal)
	patched := writeFile(t, dir, "Patched.java", javaPatched)

	t.Run("identical files score the maximum", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "score", "--config", cfg, "--json", orig, same)
		require.NoError(t, err)

		var resp domain.ScoreResponse
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, "cossim", resp.Strategy)
		assert.InDelta(t, 10.0, resp.Score, 1e-9)
		assert.True(t, resp.Region.Identical)
	})

	t.Run("text output", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "score", "-c", cfg, "-s", "euclidean", orig, patched)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Patch Similarity")
		assert.Contains(t, stdout, "euclidean")
	})

	t.Run("show vectors", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "score", "-c", cfg, "-d", "3", "--format", "json", "--show-vectors", orig, patched)
		require.NoError(t, err)

		var resp domain.ScoreResponse
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
		assert.Len(t, resp.OriginalVector, 8)
		assert.Len(t, resp.PatchedVector, 8)
	})

	t.Run("conflicting format flags", func(t *testing.T) {
		_, _, err := runCLI(t, "", "score", "-c", cfg, "--json", "--yaml", orig, patched)
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := runCLI(t, "", "score", "-c", cfg, orig, filepath.Join(dir, "Missing.java"))
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeFileNotFound, domain.ErrorCode(err))
	})

	t.Run("wrong argument count", func(t *testing.T) {
		_, _, err := runCLI(t, "", "score", orig)
		assert.Error(t, err)
	})
}

func TestRankCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	orig := writeFile(t, dir, "Original.java", javaOriginal)
	writeFile(t, dir, "candidates/Patched.java", javaPatched)
	writeFile(t, dir, "candidates/Same.java", javaOriginal)
	writeFile(t, dir, "candidates/notes.txt", "not a candidate")

	stdout, _, err := runCLI(t, "", "rank", "-c", cfg, "--no-progress", "--json",
		orig, filepath.Join(dir, "candidates"))
	require.NoError(t, err)

	var resp domain.RankResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	require.Len(t, resp.Candidates, 2)
	assert.Equal(t, 1, resp.Candidates[0].Rank)
	assert.True(t, strings.HasSuffix(resp.Candidates[0].Name, "Same.java"))
	assert.InDelta(t, 10.0, resp.Candidates[0].Score, 1e-9)
	assert.Equal(t, 2, resp.Summary.Total)
}

func TestRankCommand_InvalidCandidate(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	orig := writeFile(t, dir, "Original.java", javaOriginal)
	good := writeFile(t, dir, "Good.java", javaPatched)
	bad := writeFile(t, dir, "Bad.java", "class {{{")

	t.Run("skipped by default", func(t *testing.T) {
		stdout, _, err := runCLI(t, "", "rank", "-c", cfg, "--no-progress", "--csv", orig, good, bad)
		require.NoError(t, err)
		assert.Contains(t, stdout, "rank,name,index,score")
		assert.Contains(t, stdout, "Bad.java")
	})

	t.Run("fails when not skipping", func(t *testing.T) {
		_, _, err := runCLI(t, "", "rank", "-c", cfg, "--no-progress", "--skip-invalid=false", orig, good, bad)
		assert.Error(t, err)
	})
}

func TestCompareCommand(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)

	t.Run("stdin", func(t *testing.T) {
		input := `{"reference":[1,0,2],"candidates":[[1,0,2],[0,3,0]]}`
		stdout, _, err := runCLI(t, input, "compare", "-c", cfg, "-s", "jaccard", "--json")
		require.NoError(t, err)

		var resp domain.CompareResponse
		require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
		assert.Equal(t, "jaccard", resp.Strategy)
		assert.InDeltaSlice(t, []float64{1, 0}, resp.Scores, 1e-9)
	})

	t.Run("file", func(t *testing.T) {
		path := writeFile(t, dir, "vectors.json", `{"reference":[1,0],"candidates":[[0,1]]}`)
		stdout, _, err := runCLI(t, "", "compare", "-c", cfg, "--csv", path)
		require.NoError(t, err)
		assert.Equal(t, "index,score\n0,5\n", stdout)
	})

	t.Run("invalid reference", func(t *testing.T) {
		input := `{"reference":[],"candidates":[[1]]}`
		_, _, err := runCLI(t, input, "compare", "-c", cfg)
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidReference, domain.ErrorCode(err))
	})

	t.Run("malformed json", func(t *testing.T) {
		_, _, err := runCLI(t, "{", "compare", "-c", cfg)
		require.Error(t, err)
		assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
	})
}

func TestStrategiesCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", "strategies")
	require.NoError(t, err)
	assert.Contains(t, stdout, "COSSIM (DEFAULT)")
	assert.Contains(t, stdout, "CANBERRA")

	stdout, _, err = runCLI(t, "", "strategies", "--json")
	require.NoError(t, err)
	var infos []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	assert.NotEmpty(t, infos)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", config.ConfigFileName)

	stdout, _, err := runCLI(t, "", "init", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Configuration file created")

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultStrategy, cfg.Compare.Strategy)

	_, _, err = runCLI(t, "", "init", "--output", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCLI(t, "", "init", "--output", path, "--force")
	assert.NoError(t, err)
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "ci.toml", "[compare]\nstrategy = \"jaccard\"\n")

	stdout, _, err := runCLI(t, "", "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "[vectorize]")

	effective := writeFile(t, dir, "effective.toml", stdout)
	cfg, err := config.LoadConfig(effective)
	require.NoError(t, err)
	assert.Equal(t, "jaccard", cfg.Compare.Strategy)
	assert.Equal(t, domain.DefaultEncodingDepth, cfg.Vectorize.Depth)

	_, _, err = runCLI(t, "", "config", "--config", filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCLI(t, "", "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short()+"\n", stdout)

	stdout, _, err = runCLI(t, "", "version", "--json")
	require.NoError(t, err)
	var info version.BuildInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.NotEmpty(t, info.GoVersion)
}

func TestGetExplicitFlags(t *testing.T) {
	cmd := NewScoreCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--json", "--strategy", "jaccard"}))

	flags := GetExplicitFlags(cmd)
	assert.True(t, flags["json"])
	assert.True(t, flags["format"])
	assert.True(t, flags["strategy"])
	assert.False(t, flags["depth"])
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, domain.NewConfigError("bad config", nil))
	assert.Contains(t, buf.String(), "Configuration file or settings error")
	assert.Contains(t, buf.String(), "patchsim init")
}
