package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/patchsim/domain"
)

// FileReaderImpl implements the SourceReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectSourceFiles expands the given paths into source files. Files named
// explicitly are kept when they are not excluded; directories are walked and
// filtered with the include and exclude globs. The result is sorted and free
// of duplicates.
func (f *FileReaderImpl) CollectSourceFiles(paths []string, includePatterns, excludePatterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if !info.IsDir() {
			if !matchesAny(excludePatterns, filepath.ToSlash(path)) {
				add(path)
			}
			continue
		}

		dirFiles, err := f.collectFromDirectory(path, includePatterns, excludePatterns)
		if err != nil {
			return nil, err
		}
		for _, file := range dirFiles {
			add(file)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) collectFromDirectory(dirPath string, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}

		// Skip hidden directories and files
		if path != dirPath && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		candidates := []string{filepath.ToSlash(path)}
		if rel, err := filepath.Rel(dirPath, path); err == nil {
			candidates = append(candidates, filepath.ToSlash(rel))
		}

		if d.IsDir() {
			// Patterns like "**/target/**" match the directory's contents,
			// so test a child path to prune the whole directory early.
			if path != dirPath && matchesAny(excludePatterns, childPaths(candidates)...) {
				return filepath.SkipDir
			}
			return nil
		}

		if shouldIncludeFile(candidates, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}
	return files, nil
}

// shouldIncludeFile checks if a file should be included based on patterns.
// paths holds alternative spellings of the same file.
func shouldIncludeFile(paths []string, includePatterns, excludePatterns []string) bool {
	if matchesAny(excludePatterns, paths...) {
		return false
	}
	if len(includePatterns) == 0 {
		return true
	}
	return matchesAny(includePatterns, paths...)
}

func childPaths(dirs []string) []string {
	out := make([]string, len(dirs))
	for i, d := range dirs {
		out[i] = d + "/x"
	}
	return out
}

// matchesAny matches each path and its base name against doublestar patterns
func matchesAny(patterns []string, paths ...string) bool {
	for _, pattern := range patterns {
		for _, path := range paths {
			if ok, _ := doublestar.Match(pattern, path); ok {
				return true
			}
			if ok, _ := doublestar.Match(pattern, filepath.Base(path)); ok {
				return true
			}
		}
	}
	return false
}
