package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempBook creates a temporary book directory structure for testing
func TempBook(t *testing.T, name string) string {
	tmpDir := t.TempDir()
	bookDir := filepath.Join(tmpDir, name)

	srcDir := filepath.Join(bookDir, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0755))

	return bookDir
}

// WriteFile writes content to a file in the test directory
func WriteFile(t *testing.T, dir, path, content string) {
	fullPath := filepath.Join(dir, filepath.FromSlash(path))
	require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0755))
	require.NoError(t, os.WriteFile(fullPath, []byte(content), 0644))
}

// WriteTree writes every slash-separated path -> content pair under dir.
// A path ending in "/" creates an empty directory.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		if p[len(p)-1] == '/' {
			require.NoError(t, os.MkdirAll(filepath.Join(dir, filepath.FromSlash(p)), 0755))
			continue
		}
		WriteFile(t, dir, p, files[p])
	}
}

// ReadFile reads content from a test file
func ReadFile(t *testing.T, dir, path string) string {
	fullPath := filepath.Join(dir, filepath.FromSlash(path))
	content, err := os.ReadFile(fullPath)
	require.NoError(t, err)
	return string(content)
}

// FileExists checks if a file exists
func FileExists(t *testing.T, path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
