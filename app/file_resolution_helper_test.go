package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestResolveCandidateFiles_ExplicitFiles(t *testing.T) {
	reader := &mockSourceReader{}
	reader.On("FileExists", "b.java").Return(true, nil)
	reader.On("FileExists", "a.java").Return(true, nil)
	reader.On("FileExists", "orig.java").Return(true, nil)

	files, err := ResolveCandidateFiles(reader, []string{"b.java", "a.java", "orig.java"}, nil, nil, "./orig.java")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.java", "a.java"}, files, "order is kept and the original removed")
	reader.AssertNotCalled(t, "CollectSourceFiles", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveCandidateFiles_Directories(t *testing.T) {
	reader := &mockSourceReader{}
	include := []string{"**/*.java"}
	exclude := []string{"**/target/**"}

	reader.On("FileExists", "src").Return(false, nil)
	reader.On("CollectSourceFiles", []string{"src"}, include, exclude).
		Return([]string{"src/A.java", "src/Orig.java"}, nil)

	files, err := ResolveCandidateFiles(reader, []string{"src"}, include, exclude, "src/Orig.java")
	require.NoError(t, err)
	assert.Equal(t, []string{"src/A.java"}, files)
}
