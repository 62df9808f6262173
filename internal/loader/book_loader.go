package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/geocine/gensummary/internal/models"
	"github.com/geocine/gensummary/internal/outline"
	"github.com/geocine/gensummary/internal/utils"
)

// BookLoader turns a generated outline into a book with chapter contents
type BookLoader struct {
	srcDir string
}

// NewBookLoader creates a loader for chapters under srcDir
func NewBookLoader(srcDir string) *BookLoader {
	return &BookLoader{srcDir: srcDir}
}

// Load reads every linked chapter and numbers the result. An implicit root
// contributes its children as top-level items.
func (bl *BookLoader) Load(root *outline.Chapter) (*models.Book, error) {
	book := models.NewBook()
	if root == nil {
		return book, nil
	}

	top := []*outline.Chapter{root}
	if root.IsImplicit() {
		top = root.Children
	}

	for _, node := range top {
		ch, err := bl.loadChapter(node, []string{})
		if err != nil {
			return nil, err
		}
		book.PushItem(ch)
	}

	book.AssignSectionNumbers()
	return book, nil
}

func (bl *BookLoader) loadChapter(node *outline.Chapter, parentNames []string) (*models.Chapter, error) {
	var ch *models.Chapter

	if !node.IsDraft() {
		filePath := filepath.Join(bl.srcDir, filepath.FromSlash(node.Link))

		content, err := utils.ReadToString(filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read chapter '%s': %w", node.Title, err)
		}

		// Strip BOM if present
		content = strings.TrimPrefix(content, "\ufeff")

		ch = models.NewChapter(node.Title, content, node.Link, parentNames)
		ch.SourcePath = &filePath
	} else {
		// Draft chapter
		ch = models.NewDraftChapter(node.Title, parentNames)
	}

	// Load nested items
	newParentNames := append(append([]string{}, parentNames...), node.Title)
	for _, child := range node.Children {
		sub, err := bl.loadChapter(child, newParentNames)
		if err != nil {
			return nil, err
		}
		ch.SubItems = append(ch.SubItems, sub)
	}

	return ch, nil
}
