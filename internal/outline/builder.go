package outline

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// RootFallbackTitle names the root chapter when its page carries no title
const RootFallbackTitle = "Introduction"

// Builder walks a source tree and produces its outline
type Builder struct {
	opts       Options
	classifier *Classifier
	titles     *TitleResolver
	logger     *zap.Logger
}

// NewBuilder creates a builder. A nil logger discards log output.
func NewBuilder(opts Options, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		opts:       opts,
		classifier: NewClassifier(opts),
		titles:     NewTitleResolver(opts),
		logger:     logger,
	}
}

// Build returns the outline of the tree rooted at root. If the root has a
// representative file it becomes the single top-level chapter; otherwise the
// returned chapter is an implicit container. Any error aborts the whole build.
func (b *Builder) Build(root string) (*Chapter, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &UnreadableFileError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source root '%s' is not a directory", root)
	}

	policy := NewPolicy(root, b.opts)
	res, err := policy.Resolve(root)
	if err != nil {
		return nil, err
	}
	b.logResolution(".", res)

	node := &Chapter{Depth: -1}
	if res.HasFile() {
		title, err := b.titles.Resolve(res.Path, RootFallbackTitle)
		if err != nil {
			return nil, err
		}
		node = &Chapter{Title: title, Link: filepath.Base(res.Path), Depth: 0}
	}

	children, err := b.children(policy, root, "", node.Depth+1)
	if err != nil {
		return nil, err
	}
	node.Children = children

	return node, nil
}

// group builds the chapter for a subdirectory. A directory whose file was
// skipped becomes a draft entry, or nothing at all when it holds no chapters.
func (b *Builder) group(policy *Policy, dir, rel string, depth int) (*Chapter, error) {
	res, err := policy.Resolve(dir)
	if err != nil {
		return nil, err
	}
	b.logResolution(rel, res)

	name := filepath.Base(dir)
	node := &Chapter{Title: TitleFromName(name), Depth: depth}
	if res.HasFile() {
		node.Link = path.Join(rel, filepath.Base(res.Path))
		if node.Title, err = b.titles.Resolve(res.Path, TitleFromName(name)); err != nil {
			return nil, err
		}
	}

	if node.Children, err = b.children(policy, dir, rel, depth+1); err != nil {
		return nil, err
	}

	if node.IsDraft() && len(node.Children) == 0 {
		b.logger.Debug("Dropping empty directory without chapter file", zap.String("dir", rel))
		return nil, nil
	}

	return node, nil
}

// children builds the chapters for the entries of dir
func (b *Builder) children(policy *Policy, dir, rel string, depth int) ([]*Chapter, error) {
	entries, err := listEntries(dir)
	if err != nil {
		return nil, err
	}

	b.logger.Debug("Processing directory", zap.String("dir", displayRel(rel)), zap.Int("entries", len(entries)), zap.Int("depth", depth))

	chapters := make([]*Chapter, 0, len(entries))
	for _, e := range entries {
		entryPath := filepath.Join(dir, e.Name)
		entryRel := path.Join(rel, e.Name)

		switch b.classifier.Classify(e, rel == "") {
		case KindChapter:
			title, err := b.titles.Resolve(entryPath, TitleFromName(Stem(e.Name)))
			if err != nil {
				return nil, err
			}
			chapters = append(chapters, &Chapter{Title: title, Link: entryRel, Depth: depth, Children: []*Chapter{}})
		case KindGroup:
			child, err := b.group(policy, entryPath, entryRel, depth)
			if err != nil {
				return nil, err
			}
			if child != nil {
				chapters = append(chapters, child)
			}
		default:
			b.logger.Debug("Skipping entry", zap.String("path", entryRel))
		}
	}

	return chapters, nil
}

func (b *Builder) logResolution(rel string, res Resolution) {
	switch res.Outcome {
	case OutcomeCreated:
		b.logger.Info("Created missing chapter file", zap.String("dir", displayRel(rel)), zap.String("path", res.Path))
	case OutcomeSkipped:
		b.logger.Debug("Directory has no chapter file", zap.String("dir", displayRel(rel)))
	}
}

// listEntries reads dir sorted byte-wise by name
func listEntries(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &UnreadableFileError{Path: dir, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, d := range dirEntries {
		entries = append(entries, entryFromDirEntry(dir, d, os.Stat))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})

	return entries, nil
}

func displayRel(rel string) string {
	if rel == "" {
		return "."
	}
	return rel
}
