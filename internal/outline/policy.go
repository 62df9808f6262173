package outline

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Outcome is the result of resolving a directory's representative file
type Outcome int

const (
	OutcomeFound Outcome = iota
	OutcomeCreated
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeCreated:
		return "created"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Resolution is a resolved representative file. Path is set for Found and Created.
type Resolution struct {
	Outcome Outcome
	Path    string
}

// HasFile reports whether the directory has its own chapter page
func (r Resolution) HasFile() bool {
	return r.Outcome == OutcomeFound || r.Outcome == OutcomeCreated
}

// Decide maps the existence of a representative file to an outcome.
// It never touches the filesystem.
func Decide(exists bool, opts Options) Outcome {
	switch {
	case exists:
		return OutcomeFound
	case opts.CreateMissing:
		return OutcomeCreated
	case opts.IgnoreMissing:
		return OutcomeSkipped
	default:
		return OutcomeFailed
	}
}

// Policy resolves representative files under one source root
type Policy struct {
	root string
	opts Options
}

// NewPolicy creates a policy for the tree rooted at root
func NewPolicy(root string, opts Options) *Policy {
	return &Policy{root: root, opts: opts}
}

// Resolve finds, creates or skips the representative file of dir.
// An existing file is never rewritten.
func (p *Policy) Resolve(dir string) (Resolution, error) {
	candidate := filepath.Join(dir, p.opts.RepresentativeName())

	exists, err := regularFileExists(candidate)
	if err != nil {
		return Resolution{Outcome: OutcomeFailed}, &UnreadableFileError{Path: candidate, Err: err}
	}

	outcome := Decide(exists, p.opts)
	switch outcome {
	case OutcomeFound:
		return Resolution{Outcome: outcome, Path: candidate}, nil
	case OutcomeCreated:
		created, err := createEmpty(candidate)
		if err != nil {
			return Resolution{Outcome: OutcomeFailed}, &CreateChapterFileError{Path: candidate, Err: err}
		}
		if !created {
			outcome = OutcomeFound
		}
		return Resolution{Outcome: outcome, Path: candidate}, nil
	case OutcomeSkipped:
		return Resolution{Outcome: outcome}, nil
	default:
		return Resolution{Outcome: OutcomeFailed}, &MissingChapterFileError{Dir: p.rel(dir), File: candidate}
	}
}

// rel returns dir relative to the policy root in slash form
func (p *Policy) rel(dir string) string {
	rel, err := filepath.Rel(p.root, dir)
	if err != nil {
		return filepath.ToSlash(dir)
	}
	return filepath.ToSlash(rel)
}

func regularFileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// createEmpty creates an empty file, reporting false if one appeared meanwhile
func createEmpty(path string) (bool, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			if ok, _ := regularFileExists(path); ok {
				return false, nil
			}
		}
		return false, err
	}
	return true, f.Close()
}
