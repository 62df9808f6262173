package runner

import (
	"encoding/json"
	"testing"

	"github.com/geocine/gensummary/internal/config"
	"github.com/geocine/gensummary/internal/models"
)

func TestBookToJson(t *testing.T) {
	ch1 := models.NewChapter("Chapter 1", "Content 1", "ch1.md", []string{})
	draft := models.NewDraftChapter("Part", []string{})
	sub := models.NewChapter("Sub", "Content 2", "part/sub.md", []string{"Part"})
	draft.SubItems = append(draft.SubItems, sub)

	book := models.NewBook()
	book.PushItem(ch1)
	book.PushItem(draft)
	book.AssignSectionNumbers()

	jsonBook := BookToJson(book)

	if jsonBook == nil {
		t.Fatal("BookToJson returned nil")
	}
	if len(jsonBook.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(jsonBook.Sections))
	}

	first := jsonBook.Sections[0].Chapter
	if first == nil {
		t.Fatal("expected first section to be a chapter")
	}
	if first.Name != "Chapter 1" || first.Content != "Content 1" || first.Path != "ch1.md" {
		t.Fatalf("unexpected first chapter: %+v", first)
	}
	if len(first.Number) != 1 || first.Number[0] != 1 {
		t.Fatalf("expected number [1], got %v", first.Number)
	}

	part := jsonBook.Sections[1].Chapter
	if part.Path != "" {
		t.Fatalf("draft chapter should have no path, got '%s'", part.Path)
	}
	if len(part.SubItems) != 1 {
		t.Fatalf("expected 1 sub item, got %d", len(part.SubItems))
	}
	nested := part.SubItems[0].Chapter
	if nested.Path != "part/sub.md" {
		t.Fatalf("expected 'part/sub.md', got '%s'", nested.Path)
	}
	if len(nested.ParentNames) != 1 || nested.ParentNames[0] != "Part" {
		t.Fatalf("expected parent names [Part], got %v", nested.ParentNames)
	}
	if len(nested.Number) != 2 || nested.Number[0] != 2 || nested.Number[1] != 1 {
		t.Fatalf("expected number [2 1], got %v", nested.Number)
	}
}

func TestDraftChapterJsonOmitsPath(t *testing.T) {
	book := models.NewBook()
	book.PushItem(models.NewDraftChapter("Draft", nil))

	data, err := json.Marshal(BookToJson(book))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var raw map[string][]map[string]map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	ch := raw["sections"][0]["chapter"]
	if _, ok := ch["path"]; ok {
		t.Fatalf("draft chapter should not carry a path: %s", data)
	}
	if _, ok := ch["sub_items"]; !ok {
		t.Fatalf("sub_items should always be present: %s", data)
	}
}

func TestContextRoundTrip(t *testing.T) {
	cfg, err := config.LoadFromString(`
[book]
title = "Round Trip"
src = "docs"

[preprocessor.generate-summary]
chapter_file_name = "index"
`)
	if err != nil {
		t.Fatalf("LoadFromString() error: %v", err)
	}

	ctx := NewPreprocessorContext("/books/rt", nil, cfg, "html")
	data, err := json.Marshal(ctx)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	decoded, err := UnmarshalContext(data)
	if err != nil {
		t.Fatalf("UnmarshalContext() error: %v", err)
	}
	if decoded.Renderer != "html" || decoded.Version != ProtocolVersion {
		t.Fatalf("unexpected renderer/version: %s/%s", decoded.Renderer, decoded.Version)
	}
	if decoded.BookRoot() != "/books/rt" {
		t.Fatalf("expected root '/books/rt', got '%s'", decoded.BookRoot())
	}

	back := decoded.BookConfig()
	if back.Book.Title != "Round Trip" || back.Book.Src != "docs" {
		t.Fatalf("unexpected book config: %+v", back.Book)
	}
	sc, err := back.SummaryConfig()
	if err != nil {
		t.Fatalf("SummaryConfig() error: %v", err)
	}
	if sc.Options.ChapterFileName != "index" {
		t.Fatalf("expected chapter_file_name 'index', got '%s'", sc.Options.ChapterFileName)
	}
}

func TestBookRootFallsBackToBook(t *testing.T) {
	ctx, err := UnmarshalContext([]byte(`{"book":{"sections":[],"root":"/legacy"},"config":{},"renderer":"html","version":"0.1"}`))
	if err != nil {
		t.Fatalf("UnmarshalContext() error: %v", err)
	}
	if ctx.BookRoot() != "/legacy" {
		t.Fatalf("expected '/legacy', got '%s'", ctx.BookRoot())
	}
}

func TestUnmarshalContextDefaults(t *testing.T) {
	ctx, err := UnmarshalContext([]byte(`{"renderer":"html"}`))
	if err != nil {
		t.Fatalf("UnmarshalContext() error: %v", err)
	}
	if ctx.Book == nil || ctx.Config == nil {
		t.Fatal("book and config should be initialised")
	}
	if ctx.BookRoot() != "" {
		t.Fatalf("expected empty root, got '%s'", ctx.BookRoot())
	}
	if cfg := ctx.BookConfig(); cfg.Book.Src != "src" {
		t.Fatalf("expected default src, got '%s'", cfg.Book.Src)
	}
}

func TestUnmarshalContextInvalid(t *testing.T) {
	if _, err := UnmarshalContext([]byte(`{not json`)); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestBuilderCreateMissingIsIgnored(t *testing.T) {
	ctx, err := UnmarshalContext([]byte(`{"config":{"build":{"create-missing":true}}}`))
	if err != nil {
		t.Fatalf("UnmarshalContext() error: %v", err)
	}
	sc, err := ctx.BookConfig().SummaryConfig()
	if err != nil {
		t.Fatalf("SummaryConfig() error: %v", err)
	}
	if sc.Options.CreateMissing {
		t.Fatal("build.create-missing from the builder must not enable file creation")
	}
}
