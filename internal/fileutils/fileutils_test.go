package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/stmt-csv/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "missing")))

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestListFiles(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{
		"b.txt",
		"a.TXT",
		"export.xlsx",
		"notes.md",
		filepath.Join("2024", "05.csv"),
		filepath.Join(".cache", "old.txt"),
		".hidden.txt",
	} {
		path := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	}

	files, err := fileutils.ListFiles(tmpDir, ".txt", ".csv", ".xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "2024", "05.csv"),
		filepath.Join(tmpDir, "a.TXT"),
		filepath.Join(tmpDir, "b.txt"),
		filepath.Join(tmpDir, "export.xlsx"),
	}, files)

	_, err = fileutils.ListFiles(filepath.Join(tmpDir, "missing"), ".txt")
	assert.Error(t, err)
}
