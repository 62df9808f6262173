package sdk

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geocine/gensummary/internal/preprocessor/runner"
)

func TestReadWriteContext(t *testing.T) {
	in := `{"root":"/book","book":{"sections":[]},"config":{"book":{"title":"T"}},"renderer":"html","version":"0.1"}`

	ctx, err := ReadContext(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "/book", ctx.BookRoot())
	assert.Equal(t, "html", ctx.Renderer)

	ctx.Book.Sections = append(ctx.Book.Sections, runner.JsonSection{Chapter: &runner.JsonChapter{
		Name:        "Intro",
		Path:        "README.md",
		SubItems:    []runner.JsonSection{},
		ParentNames: []string{},
	}})

	var out bytes.Buffer
	require.NoError(t, WriteContext(&out, ctx))

	back, err := ReadContext(&out)
	require.NoError(t, err)
	require.Len(t, back.Book.Sections, 1)
	assert.Equal(t, "Intro", back.Book.Sections[0].Chapter.Name)
	assert.Equal(t, "T", back.BookConfig().Book.Title)
}

func TestReadContextMalformed(t *testing.T) {
	_, err := ReadContext(strings.NewReader("[1, 2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal context")
}
