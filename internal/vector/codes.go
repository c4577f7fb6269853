package vector

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/patchsim/internal/tree"
)

// NullCode is the code of the Null sentinel and of every unknown label.
// The two cases share a code; vectors produced so far depend on it.
const NullCode int32 = 0

// LabelCodeTable maps node labels to positive integer codes. It is built once
// from an ordered label enumeration and is read-only afterwards, so a single
// table may be shared by any number of goroutines.
type LabelCodeTable struct {
	codes  map[string]int32
	labels []string
}

// NewLabelCodeTable builds a table from an ordered list of labels. A label's
// code is its 1-based position in the list; lookups are case-insensitive and a
// repeated label keeps the code of its first occurrence.
func NewLabelCodeTable(labels []string) *LabelCodeTable {
	t := &LabelCodeTable{
		codes:  make(map[string]int32, len(labels)),
		labels: make([]string, len(labels)),
	}
	copy(t.labels, labels)

	for i, label := range labels {
		key := foldLabel(label)
		if _, exists := t.codes[key]; exists {
			continue
		}
		t.codes[key] = int32(i + 1)
	}
	return t
}

// LoadLabelCodeTable reads a label enumeration from a file. Files ending in
// .yaml or .yml hold a YAML sequence of labels, or a mapping with a "labels"
// sequence; any other file holds one label per line, where blank lines and
// lines starting with '#' are skipped.
func LoadLabelCodeTable(path string) (*LabelCodeTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label file: %w", err)
	}
	defer file.Close()

	read := ReadLabels
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		read = ReadLabelsYAML
	}

	labels, err := read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read label file %s: %w", path, err)
	}
	return NewLabelCodeTable(labels), nil
}

// ReadLabels reads one label per line from r
func ReadLabels(r io.Reader) ([]string, error) {
	var labels []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		labels = append(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return labels, nil
}

// ReadLabelsYAML decodes a YAML label enumeration from r
func ReadLabelsYAML(r io.Reader) ([]string, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}

	var labels []string
	if err := doc.Decode(&labels); err == nil {
		return labels, nil
	}

	var wrapped struct {
		Labels []string `yaml:"labels"`
	}
	if err := doc.Decode(&wrapped); err != nil {
		return nil, fmt.Errorf("expected a sequence of labels: %w", err)
	}
	return wrapped.Labels, nil
}

// Code returns the code of a label, or NullCode for the Null sentinel and for
// labels missing from the table.
func (t *LabelCodeTable) Code(label string) int32 {
	if label == tree.NullLabel {
		return NullCode
	}
	return t.codes[foldLabel(label)]
}

// Len returns the number of labels the table was built from
func (t *LabelCodeTable) Len() int {
	return len(t.labels)
}

// Labels returns a copy of the ordered label enumeration
func (t *LabelCodeTable) Labels() []string {
	labels := make([]string, len(t.labels))
	copy(labels, t.labels)
	return labels
}

// foldLabel normalizes a label for case-insensitive lookup. A Caser keeps
// internal state, so a fresh one is used per call.
func foldLabel(label string) string {
	return cases.Fold().String(label)
}
