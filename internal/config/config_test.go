package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromString(t *testing.T) {
	toml := `
[book]
title = "My Book"
language = "en"
src = "docs"

[build]
build-dir = "out"

[preprocessor.generate-summary]
get_chapter_name_from_file = true
chapter_file_name = "index"
`

	cfg, err := LoadFromString(toml)
	require.NoError(t, err)

	assert.Equal(t, "My Book", cfg.Book.Title)
	assert.Equal(t, "out", cfg.Build.BuildDir)
	assert.Equal(t, filepath.Join("root", "docs"), cfg.SourceDir("root"))

	table := cfg.PreprocessorTable(PreprocessorName)
	require.NotNil(t, table)
	assert.Equal(t, true, table["get_chapter_name_from_file"])
	assert.Equal(t, "index", table["chapter_file_name"])
	assert.Nil(t, cfg.PreprocessorTable("other"))
}

func TestLoadFromStringInvalid(t *testing.T) {
	_, err := LoadFromString("[book\ntitle=")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestDefaultsWithoutTables(t *testing.T) {
	cfg, err := LoadFromString("")
	require.NoError(t, err)

	assert.Equal(t, "src", cfg.Book.Src)
	assert.NotNil(t, cfg.Preprocessor)
	assert.Equal(t, filepath.Join("root", "src"), cfg.SourceDir("root"))
}

func TestUpdateFromEnv(t *testing.T) {
	t.Setenv("GENSUMMARY_BOOK__TITLE", "Env Title")
	t.Setenv("GENSUMMARY_BUILD__BUILD-DIR", "env-book")
	t.Setenv("GENSUMMARY_PREPROCESSOR__GENERATE_SUMMARY__IGNORE_MISSING_CHAPTER_FILES", "true")

	cfg := NewDefaultConfig()
	cfg.UpdateFromEnv()

	assert.Equal(t, "Env Title", cfg.Book.Title)
	assert.Equal(t, "env-book", cfg.Build.BuildDir)

	sc, err := cfg.SummaryConfig()
	require.NoError(t, err)
	assert.True(t, sc.Options.IgnoreMissing)
}

func TestUpdateFromEnvOverridesBookToml(t *testing.T) {
	t.Setenv("GENSUMMARY_PREPROCESSOR__GENERATE_SUMMARY__CREATE_MISSING_CHAPTER_FILES", "true")
	t.Setenv("GENSUMMARY_PREPROCESSOR__GENERATE_SUMMARY__HEADER", "# Contents")

	cfg, err := LoadFromString(`
[preprocessor.generate-summary]
create_missing_chapter_files = false
header = "# Summary"
`)
	require.NoError(t, err)

	table := cfg.PreprocessorTable(PreprocessorName)
	assert.Equal(t, "true", table["create_missing_chapter_files"])
	assert.NotContains(t, table, "create-missing-chapter-files")

	sc, err := cfg.SummaryConfig()
	require.NoError(t, err)
	assert.True(t, sc.Options.CreateMissing)
	assert.Equal(t, "# Contents", sc.Header)
}

func TestLoadFromFileReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book.toml"), []byte("[book]\ntitle = \"File Title\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GENSUMMARY_BOOK__SRC=pages\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("GENSUMMARY_BOOK__SRC") })

	cfg, err := LoadFromFile(filepath.Join(dir, "book.toml"))
	require.NoError(t, err)

	assert.Equal(t, "File Title", cfg.Book.Title)
	assert.Equal(t, "pages", cfg.Book.Src)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "book.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
