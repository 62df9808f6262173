package outline

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Kind is the outline role of a directory entry
type Kind int

const (
	KindIgnored Kind = iota
	KindChapter
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindChapter:
		return "chapter"
	case KindGroup:
		return "group"
	default:
		return "ignored"
	}
}

// Entry is the part of a directory entry classification looks at.
// Symlinks are resolved by the caller: a link to a regular file is Regular,
// a link to a directory is neither, so it never recurses.
type Entry struct {
	Name    string
	Dir     bool
	Regular bool
}

// Classifier decides which directory entries become chapters
type Classifier struct {
	extensions     map[string]struct{}
	representative string
	summaryFile    string
}

// NewClassifier creates a classifier for the given options
func NewClassifier(opts Options) *Classifier {
	exts := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts[ext] = struct{}{}
	}
	return &Classifier{
		extensions:     exts,
		representative: opts.RepresentativeName(),
		summaryFile:    opts.SummaryFile,
	}
}

// Classify returns the role of an entry. atRoot is set for entries of the
// source root, where the summary document itself lives.
func (c *Classifier) Classify(e Entry, atRoot bool) Kind {
	if e.Name == "" || strings.HasPrefix(e.Name, ".") {
		return KindIgnored
	}

	if e.Dir {
		return KindGroup
	}

	if !e.Regular {
		return KindIgnored
	}

	// Consumed as the directory's own chapter
	if e.Name == c.representative {
		return KindIgnored
	}

	if atRoot && c.summaryFile != "" && e.Name == c.summaryFile {
		return KindIgnored
	}

	if _, ok := c.extensions[strings.ToLower(filepath.Ext(e.Name))]; ok {
		return KindChapter
	}

	return KindIgnored
}

// entryFromDirEntry converts a listing entry, following symlinks with stat
func entryFromDirEntry(dir string, d fs.DirEntry, stat func(string) (fs.FileInfo, error)) Entry {
	e := Entry{Name: d.Name(), Dir: d.IsDir(), Regular: d.Type().IsRegular()}
	if d.Type()&fs.ModeSymlink == 0 {
		return e
	}

	info, err := stat(filepath.Join(dir, d.Name()))
	if err != nil {
		// Dangling links are not chapters
		return Entry{Name: d.Name()}
	}
	return Entry{Name: d.Name(), Regular: info.Mode().IsRegular()}
}
