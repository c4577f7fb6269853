package vector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludo-technologies/patchsim/internal/tree"
)

func TestLabelCodeTable_Codes(t *testing.T) {
	table := NewLabelCodeTable([]string{"program", "class_declaration", "method_declaration"})

	assert.Equal(t, int32(1), table.Code("program"))
	assert.Equal(t, int32(2), table.Code("class_declaration"))
	assert.Equal(t, int32(3), table.Code("method_declaration"))
	assert.Equal(t, 3, table.Len())
}

func TestLabelCodeTable_CaseInsensitive(t *testing.T) {
	table := NewLabelCodeTable([]string{"IfStatement", "Block"})

	assert.Equal(t, int32(1), table.Code("ifstatement"))
	assert.Equal(t, int32(1), table.Code("IFSTATEMENT"))
	assert.Equal(t, int32(2), table.Code("bLoCk"))
}

func TestLabelCodeTable_FirstOccurrenceWins(t *testing.T) {
	table := NewLabelCodeTable([]string{"a", "b", "A", "c"})

	assert.Equal(t, int32(1), table.Code("a"))
	assert.Equal(t, int32(4), table.Code("c"))
	assert.Equal(t, []string{"a", "b", "A", "c"}, table.Labels())
}

func TestLabelCodeTable_MissAndNull(t *testing.T) {
	table := NewLabelCodeTable([]string{"a"})

	assert.Equal(t, NullCode, table.Code("unknown"))
	assert.Equal(t, NullCode, table.Code(tree.NullLabel))
	assert.Equal(t, NullCode, table.Code(""))
}

func TestReadLabels(t *testing.T) {
	input := "# grammar symbols\nprogram\n\n  identifier  \n#comment\nblock\n"

	labels, err := ReadLabels(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []string{"program", "identifier", "block"}, labels)
}

func TestLoadLabelCodeTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n"), 0o644))

	table, err := LoadLabelCodeTable(path)

	require.NoError(t, err)
	assert.Equal(t, int32(2), table.Code("BETA"))

	_, err = LoadLabelCodeTable(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestLoadLabelCodeTable_YAML(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "labels.yaml")
	require.NoError(t, os.WriteFile(plain, []byte("- program\n- class_declaration\n- Program\n"), 0o644))
	table, err := LoadLabelCodeTable(plain)
	require.NoError(t, err)
	assert.Equal(t, []string{"program", "class_declaration", "Program"}, table.Labels())
	assert.Equal(t, int32(2), table.Code("CLASS_DECLARATION"))

	wrapped := filepath.Join(dir, "labels.yml")
	require.NoError(t, os.WriteFile(wrapped, []byte("labels:\n  - module\n  - block\n"), 0o644))
	table, err = LoadLabelCodeTable(wrapped)
	require.NoError(t, err)
	assert.Equal(t, int32(2), table.Code("block"))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("labels: 3\n"), 0o644))
	_, err = LoadLabelCodeTable(bad)
	assert.Error(t, err)
}

func TestReadLabelsYAML_Empty(t *testing.T) {
	labels, err := ReadLabelsYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, labels)
}
