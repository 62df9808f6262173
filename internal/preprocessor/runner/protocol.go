package runner

import (
	"encoding/json"

	"github.com/geocine/gensummary/internal/config"
	"github.com/geocine/gensummary/internal/models"
)

// ProtocolVersion is reported in contexts built by NewPreprocessorContext
const ProtocolVersion = "0.1"

// PreprocessorContext is the JSON structure received from and sent back to the book builder
// It matches the mdBook preprocessor protocol
type PreprocessorContext struct {
	Root     string                 `json:"root,omitempty"`
	Book     *JsonBook              `json:"book"`
	Config   map[string]interface{} `json:"config"`
	Renderer string                 `json:"renderer"`
	Version  string                 `json:"version"`
}

// JsonBook represents a book in the preprocessor protocol
type JsonBook struct {
	Sections []JsonSection `json:"sections"`
	// Root path to the book (for context)
	Root string `json:"root,omitempty"`
}

// JsonSection represents a section in the preprocessor protocol
type JsonSection struct {
	Chapter *JsonChapter `json:"chapter,omitempty"`
}

// JsonChapter represents a chapter in the preprocessor protocol
type JsonChapter struct {
	Name        string        `json:"name"`
	Content     string        `json:"content"`
	Number      []int         `json:"number,omitempty"`
	SubItems    []JsonSection `json:"sub_items"`
	Path        string        `json:"path,omitempty"`
	ParentNames []string      `json:"parent_names"`
}

// BookToJson converts a loaded book to the JSON representation of the protocol
func BookToJson(book *models.Book) *JsonBook {
	jsonBook := &JsonBook{
		Sections: []JsonSection{},
	}

	for _, item := range book.Items {
		jsonBook.Sections = append(jsonBook.Sections, chapterToJsonSection(item))
	}

	return jsonBook
}

// chapterToJsonSection converts a chapter to a JSON section
func chapterToJsonSection(ch *models.Chapter) JsonSection {
	jsonCh := &JsonChapter{
		Name:        ch.Name,
		Content:     ch.Content,
		SubItems:    []JsonSection{},
		ParentNames: []string{},
	}

	// Convert section number
	if ch.Number != nil && len(ch.Number.Parts) > 0 {
		jsonCh.Number = ch.Number.Parts
	}

	// Drafts have no path
	if ch.Path != nil {
		jsonCh.Path = *ch.Path
	}

	if len(ch.ParentNames) > 0 {
		jsonCh.ParentNames = append(jsonCh.ParentNames, ch.ParentNames...)
	}

	for _, sub := range ch.SubItems {
		jsonCh.SubItems = append(jsonCh.SubItems, chapterToJsonSection(sub))
	}

	return JsonSection{Chapter: jsonCh}
}

// NewPreprocessorContext creates a context as the book builder would send it
func NewPreprocessorContext(root string, book *models.Book, cfg *config.Config, renderer string) *PreprocessorContext {
	// Convert config to map for JSON marshaling
	configMap := make(map[string]interface{})
	if cfg != nil {
		configMap["book"] = map[string]interface{}{
			"title":       cfg.Book.Title,
			"authors":     cfg.Book.Authors,
			"description": cfg.Book.Description,
			"language":    cfg.Book.Language,
			"src":         cfg.Book.Src,
		}
		configMap["build"] = map[string]interface{}{
			"build-dir":      cfg.Build.BuildDir,
			"create-missing": cfg.Build.CreateMissing,
		}
		configMap["preprocessor"] = cfg.Preprocessor
	}

	if book == nil {
		book = models.NewBook()
	}

	return &PreprocessorContext{
		Root:     root,
		Book:     BookToJson(book),
		Config:   configMap,
		Renderer: renderer,
		Version:  ProtocolVersion,
	}
}

// UnmarshalContext unmarshals a context from JSON
func UnmarshalContext(data []byte) (*PreprocessorContext, error) {
	var ctx PreprocessorContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, err
	}
	if ctx.Book == nil {
		ctx.Book = &JsonBook{Sections: []JsonSection{}}
	}
	if ctx.Config == nil {
		ctx.Config = make(map[string]interface{})
	}
	return &ctx, nil
}

// BookRoot returns the book root named by the context, or "" when absent
func (ctx *PreprocessorContext) BookRoot() string {
	if ctx.Root != "" {
		return ctx.Root
	}
	if ctx.Book != nil {
		return ctx.Book.Root
	}
	return ""
}

// BookConfig reads the builder configuration carried by the context back
// into a config.Config. Only [book] and [preprocessor] are honoured: builders
// always send build.create-missing, which must not switch on file creation.
func (ctx *PreprocessorContext) BookConfig() *config.Config {
	cfg := config.NewDefaultConfig()

	if book, ok := ctx.Config["book"].(map[string]interface{}); ok {
		if title, ok := book["title"].(string); ok {
			cfg.Book.Title = title
		}
		if src, ok := book["src"].(string); ok && src != "" {
			cfg.Book.Src = src
		}
	}
	if pre, ok := ctx.Config["preprocessor"].(map[string]interface{}); ok {
		cfg.Preprocessor = pre
	}

	return cfg
}
