package models

import (
	"strconv"
	"strings"
)

// SectionNumber represents a chapter's section number (e.g., "1.2.3")
type SectionNumber struct {
	Parts []int
}

// String returns the string representation of a section number
func (sn *SectionNumber) String() string {
	if sn == nil || len(sn.Parts) == 0 {
		return ""
	}
	parts := make([]string, len(sn.Parts))
	for i, part := range sn.Parts {
		parts[i] = strconv.Itoa(part)
	}
	return strings.Join(parts, ".")
}

// Book represents a collection of chapters
type Book struct {
	Items []*Chapter
}

// NewBook creates an empty book
func NewBook() *Book {
	return &Book{
		Items: make([]*Chapter, 0),
	}
}

// PushItem appends a chapter to the book
func (b *Book) PushItem(ch *Chapter) {
	b.Items = append(b.Items, ch)
}

// Chapters returns every non-draft chapter, depth-first
func (b *Book) Chapters() []*Chapter {
	var chapters []*Chapter
	for _, ch := range b.IterAll() {
		if !ch.IsDraftChapter() {
			chapters = append(chapters, ch)
		}
	}
	return chapters
}

// IterAll iterates over all items depth-first (including nested)
func (b *Book) IterAll() []*Chapter {
	var result []*Chapter
	for _, item := range b.Items {
		result = append(result, item)
		result = append(result, item.IterSubItems()...)
	}
	return result
}

// AssignSectionNumbers numbers chapters 1-based in outline order: top-level
// items get 1, 2, ... and their children extend the parent's number.
func (b *Book) AssignSectionNumbers() {
	for i, item := range b.Items {
		item.assignNumber([]int{i + 1})
	}
}

func (c *Chapter) assignNumber(number []int) {
	c.Number = &SectionNumber{Parts: number}
	for i, sub := range c.SubItems {
		childNum := append(append([]int{}, number...), i+1)
		sub.assignNumber(childNum)
	}
}

// Chapter represents a single chapter/section
type Chapter struct {
	Name        string         // Chapter name/title
	Content     string         // Markdown content
	Number      *SectionNumber // Section number (e.g., 1.2.3)
	SubItems    []*Chapter     // Nested chapters
	Path        *string        // Relative path to the markdown file (relative to src/)
	SourcePath  *string        // Actual path on disk
	ParentNames []string       // Names of parent chapters
	IsDraft     bool           // Is this a draft chapter?
}

// NewChapter creates a new chapter with content
func NewChapter(name, content string, path string, parentNames []string) *Chapter {
	return &Chapter{
		Name:        name,
		Content:     content,
		Path:        &path,
		SubItems:    make([]*Chapter, 0),
		ParentNames: parentNames,
		IsDraft:     false,
	}
}

// NewDraftChapter creates a draft chapter (no file)
func NewDraftChapter(name string, parentNames []string) *Chapter {
	return &Chapter{
		Name:        name,
		Content:     "",
		SubItems:    make([]*Chapter, 0),
		ParentNames: parentNames,
		IsDraft:     true,
	}
}

// IsDraftChapter returns true if this is a draft chapter
func (c *Chapter) IsDraftChapter() bool {
	return c.IsDraft
}

// IterSubItems recursively iterates over sub-items
func (c *Chapter) IterSubItems() []*Chapter {
	var result []*Chapter
	for _, item := range c.SubItems {
		result = append(result, item)
		result = append(result, item.IterSubItems()...)
	}
	return result
}
