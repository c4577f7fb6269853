package app

import (
	"path/filepath"

	"github.com/ludo-technologies/patchsim/domain"
)

// ResolveCandidateFiles expands candidate paths into source files.
//
// When every path is already an existing file the paths are returned as
// given, so that callers passing explicit files keep their order. Otherwise
// directories are walked with the include and exclude patterns. The original
// file is never its own candidate and is removed from the result.
func ResolveCandidateFiles(
	reader domain.SourceReader,
	paths []string,
	includePatterns []string,
	excludePatterns []string,
	originalPath string,
) ([]string, error) {
	allFiles := true
	for _, path := range paths {
		exists, err := reader.FileExists(path)
		if err != nil || !exists {
			allFiles = false
			break
		}
	}

	files := paths
	if !allFiles {
		collected, err := reader.CollectSourceFiles(paths, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		files = collected
	}

	if originalPath == "" {
		return files, nil
	}

	original := cleanAbs(originalPath)
	result := make([]string, 0, len(files))
	for _, f := range files {
		if cleanAbs(f) != original {
			result = append(result, f)
		}
	}
	return result, nil
}

func cleanAbs(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// loadSettings resolves the effective settings: the configuration file named
// by configPath, or a discovered one, overridden by the request settings
func loadSettings(loader domain.SimilarityConfigurationLoader, configPath string, override domain.SimilaritySettings) (domain.SimilaritySettings, error) {
	if loader == nil {
		return override, nil
	}

	var base *domain.SimilaritySettings
	if configPath != "" {
		loaded, err := loader.LoadConfig(configPath)
		if err != nil {
			return override, err
		}
		base = loaded
	} else {
		base = loader.LoadDefaultConfig()
	}

	if base == nil {
		return override, nil
	}
	return *loader.MergeConfig(base, &override), nil
}
