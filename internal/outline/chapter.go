// Package outline builds a book's table of contents from the layout of its
// source directory and renders it as a SUMMARY.md document.
//
// Every directory contributes a chapter whose page is its representative file
// (README.md by default). Markdown files become leaf chapters. Entries are
// visited in byte-wise lexicographic order of their names, files and
// directories interleaved.
package outline

// Chapter is one entry of the generated outline
type Chapter struct {
	Title    string
	Link     string // Slash-separated path relative to the source root, empty for draft entries
	Depth    int    // Nesting level in the emitted list, -1 for an implicit root
	Children []*Chapter
}

// IsDraft reports whether the chapter has no backing file
func (c *Chapter) IsDraft() bool {
	return c.Link == ""
}

// IsImplicit reports whether the chapter is a root container that emits no entry of its own
func (c *Chapter) IsImplicit() bool {
	return c.Depth < 0
}

// Walk visits the chapter and its descendants depth-first, parents before children
func (c *Chapter) Walk(fn func(*Chapter)) {
	fn(c)
	for _, child := range c.Children {
		child.Walk(fn)
	}
}

// Entries returns every chapter that is emitted as a line, in output order
func (c *Chapter) Entries() []*Chapter {
	var entries []*Chapter
	c.Walk(func(ch *Chapter) {
		if !ch.IsImplicit() {
			entries = append(entries, ch)
		}
	})
	return entries
}

// Options configures outline generation.
type Options struct {
	// ChapterNameFromFile takes titles from a leading "# Title" line.
	ChapterNameFromFile bool
	// ChapterFileName is the base name, without extension, of a directory's own page.
	ChapterFileName string
	// CreateMissing creates an empty representative file when one is absent.
	CreateMissing bool
	// IgnoreMissing turns a missing representative file into a draft entry instead of an error.
	IgnoreMissing bool
	// Extensions lists the file extensions treated as chapters.
	Extensions []string
	// FrontmatterTitle lets a "title" key of leading YAML or TOML frontmatter name the chapter.
	FrontmatterTitle bool
	// SummaryFile is the generated document's name, skipped at the source root.
	SummaryFile string
}

const (
	DefaultChapterFileName = "README"
	DefaultSummaryFile     = "SUMMARY.md"
	ChapterFileExtension   = ".md"
)

// DefaultOptions returns options with the documented defaults
func DefaultOptions() Options {
	return Options{
		ChapterNameFromFile: false,
		ChapterFileName:     DefaultChapterFileName,
		CreateMissing:       false,
		IgnoreMissing:       false,
		Extensions:          []string{".md"},
		FrontmatterTitle:    false,
		SummaryFile:         DefaultSummaryFile,
	}
}

// RepresentativeName returns the file name of a directory's own chapter page
func (o Options) RepresentativeName() string {
	return o.ChapterFileName + ChapterFileExtension
}
