package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileScanner(t *testing.T) {
	scanner := NewFileScanner("/tmp/cases")

	assert.NotNil(t, scanner)
	assert.Equal(t, "/tmp/cases", scanner.baseDir)
	assert.Equal(t, ".jsonl", scanner.ext)
}

func TestFileScannerScanEmptyDirectory(t *testing.T) {
	files, err := NewFileScanner(t.TempDir()).Scan()

	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFileScannerScanNonExistentDirectory(t *testing.T) {
	files, err := NewFileScanner("/path/that/does/not/exist").Scan()

	require.NoError(t, err, "Scanner should skip a missing directory")
	assert.Empty(t, files)
}

func TestFileScannerScanFindsCaseFiles(t *testing.T) {
	tempDir := t.TempDir()

	testFiles := []struct {
		path   string
		isCase bool
	}{
		{"regression.jsonl", true},
		{"upper.JSONL", true},
		{"nested/deeper/more.jsonl", true},
		{"notes.txt", false},
		{"data.json", false},
	}

	var expected []string
	for _, tf := range testFiles {
		full := filepath.Join(tempDir, tf.path)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("[1,2]\n"), 0644))
		if tf.isCase {
			expected = append(expected, full)
		}
	}

	files, err := NewFileScanner(tempDir).Scan()

	require.NoError(t, err)
	assert.ElementsMatch(t, expected, files)
	assert.IsNonDecreasing(t, files)
}

func TestIsCaseFile(t *testing.T) {
	assert.True(t, IsCaseFile("a/b.jsonl"))
	assert.True(t, IsCaseFile("B.JsonL"))
	assert.False(t, IsCaseFile("b.json"))
	assert.False(t, IsCaseFile("jsonl"))
}
