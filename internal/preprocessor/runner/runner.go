package runner

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/geocine/gensummary/internal/config"
	"github.com/geocine/gensummary/internal/loader"
	"github.com/geocine/gensummary/internal/outline"
	"github.com/geocine/gensummary/internal/utils"
)

// Runner generates the summary document of one book
type Runner struct {
	cfg    *config.Config
	root   string
	logger *zap.Logger
}

// NewRunner creates a runner for the book rooted at root
func NewRunner(cfg *config.Config, root string, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		root:   root,
		logger: logger,
	}
}

// Result is one generated summary
type Result struct {
	Outline  *outline.Chapter
	Document string
	Path     string // Location of the summary document
	Written  bool   // False when the file already had this content
}

// SourceDir returns the directory the outline is built from
func (r *Runner) SourceDir() string {
	return r.cfg.SourceDir(r.root)
}

// Render builds the outline and its document without writing the summary.
// Missing chapter files are still created when the options ask for it.
func (r *Runner) Render() (*Result, error) {
	sc, err := r.cfg.SummaryConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read summary options: %w", err)
	}

	srcDir := r.SourceDir()
	tree, err := outline.NewBuilder(sc.Options, r.logger).Build(srcDir)
	if err != nil {
		return nil, err
	}

	doc, err := outline.Document(tree, sc.Header, outline.HeaderData{
		Title:    r.cfg.Book.Title,
		Chapters: len(tree.Entries()),
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Outline:  tree,
		Document: doc,
		Path:     filepath.Join(srcDir, sc.Options.SummaryFile),
	}, nil
}

// Generate renders the summary and writes it over the previous one
func (r *Runner) Generate() (*Result, error) {
	res, err := r.Render()
	if err != nil {
		return nil, err
	}

	written, err := utils.WriteFileLocked(res.Path, []byte(res.Document))
	if err != nil {
		return nil, fmt.Errorf("failed to write summary: %w", err)
	}
	res.Written = written

	if written {
		r.logger.Info("summary written", zap.String("path", res.Path), zap.Int("chapters", len(res.Outline.Entries())))
	} else {
		r.logger.Debug("summary unchanged", zap.String("path", res.Path))
	}
	return res, nil
}

// Process answers one preprocessor request: the summary of the book named
// by the context is regenerated and the context's sections are replaced by
// the chapters of the new outline. cwd is the book root when the context
// names none.
func Process(pctx *PreprocessorContext, cwd string, logger *zap.Logger) error {
	root := pctx.BookRoot()
	if root == "" {
		root = cwd
	}

	cfg := pctx.BookConfig()
	cfg.UpdateFromEnv()

	r := NewRunner(cfg, root, logger)
	res, err := r.Generate()
	if err != nil {
		return err
	}

	book, err := loader.NewBookLoader(r.SourceDir()).Load(res.Outline)
	if err != nil {
		return err
	}

	if pctx.Book == nil {
		pctx.Book = &JsonBook{}
	}
	pctx.Book.Sections = BookToJson(book).Sections
	return nil
}

// SupportsRenderer reports whether the preprocessor runs for renderer.
// Every renderer is supported; "not-supported" exists so builders can probe
// the negative answer.
func SupportsRenderer(renderer string) bool {
	return renderer != "not-supported"
}
