package outline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geocine/gensummary/internal/testutil"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name   string
		exists bool
		create bool
		ignore bool
		want   Outcome
	}{
		{"exists", true, false, false, OutcomeFound},
		{"exists with create", true, true, false, OutcomeFound},
		{"exists with ignore", true, false, true, OutcomeFound},
		{"missing with create", false, true, false, OutcomeCreated},
		{"create wins over ignore", false, true, true, OutcomeCreated},
		{"missing with ignore", false, false, true, OutcomeSkipped},
		{"missing", false, false, false, OutcomeFailed},
	}

	for _, c := range cases {
		opts := DefaultOptions()
		opts.CreateMissing = c.create
		opts.IgnoreMissing = c.ignore
		assert.Equal(t, c.want, Decide(c.exists, opts), c.name)
	}
}

func TestPolicyResolveFound(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, "guide/README.md", "# Guide")

	res, err := NewPolicy(root, DefaultOptions()).Resolve(filepath.Join(root, "guide"))
	require.NoError(t, err)
	assert.Equal(t, OutcomeFound, res.Outcome)
	assert.Equal(t, filepath.Join(root, "guide", "README.md"), res.Path)
	assert.True(t, res.HasFile())
}

func TestPolicyResolveCreatesOnce(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "guide")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	opts := DefaultOptions()
	opts.CreateMissing = true
	policy := NewPolicy(root, opts)

	res, err := policy.Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, res.Outcome)
	assert.Empty(t, testutil.ReadFile(t, dir, "README.md"))

	// Content written afterwards must survive another run
	testutil.WriteFile(t, dir, "README.md", "# Written later")

	res, err = policy.Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, OutcomeFound, res.Outcome)
	assert.Equal(t, "# Written later", testutil.ReadFile(t, dir, "README.md"))
}

func TestPolicyResolveSkipped(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "guide")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	opts := DefaultOptions()
	opts.IgnoreMissing = true

	res, err := NewPolicy(root, opts).Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, res.Outcome)
	assert.Empty(t, res.Path)
	assert.False(t, res.HasFile())
	assert.NoFileExists(t, filepath.Join(dir, "README.md"))
}

func TestPolicyResolveFailedNamesDirectory(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "part", "guide")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	res, err := NewPolicy(root, DefaultOptions()).Resolve(dir)
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)

	var missing *MissingChapterFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "part/guide", missing.Dir)
	assert.Equal(t, filepath.Join(dir, "README.md"), missing.File)
}

func TestPolicyResolveRootIsDot(t *testing.T) {
	root := t.TempDir()

	_, err := NewPolicy(root, DefaultOptions()).Resolve(root)

	var missing *MissingChapterFileError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, ".", missing.Dir)
}

func TestPolicyResolveCreateFailure(t *testing.T) {
	root := t.TempDir()
	// A directory squatting on the chapter file name cannot be replaced
	require.NoError(t, os.MkdirAll(filepath.Join(root, "guide", "README.md"), 0o755))

	opts := DefaultOptions()
	opts.CreateMissing = true

	res, err := NewPolicy(root, opts).Resolve(filepath.Join(root, "guide"))
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.ErrorIs(t, err, ErrCreateChapterFile)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "found", OutcomeFound.String())
	assert.Equal(t, "created", OutcomeCreated.String())
	assert.Equal(t, "skipped", OutcomeSkipped.String())
	assert.Equal(t, "failed", OutcomeFailed.String())
}
