package testhelpers

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root.
func RepoRoot() string {
	// this file lives at <repo>/test/helpers.go
	_, file, _, _ := runtime.Caller(0)
	testDir := filepath.Dir(file)
	repo := filepath.Dir(testDir)
	return repo
}

// IntegrationData joins under test/integration/testdata/...
func IntegrationData(parts ...string) string {
	base := []string{RepoRoot(), "test", "integration", "testdata"}
	return filepath.Join(append(base, parts...)...)
}

// TestsuitePath builds a path under test/integration/testdata/testsuite/...
func TestsuitePath(parts ...string) string {
	base := []string{"testsuite"}
	return IntegrationData(append(base, parts...)...)
}

// CopyTree copies the fixture at src into a fresh temp dir and returns it.
// Generation writes into the book, so fixtures are never used in place.
func CopyTree(t *testing.T, src string) string {
	t.Helper()
	dst := filepath.Join(t.TempDir(), filepath.Base(src))

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
	return dst
}
