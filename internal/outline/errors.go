package outline

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingChapterFile matches a directory without its representative file.
	ErrMissingChapterFile = errors.New("missing chapter file")
	// ErrUnreadableFile matches a file or directory that could not be read or decoded.
	ErrUnreadableFile = errors.New("unreadable file")
	// ErrCreateChapterFile matches a placeholder chapter file that could not be created.
	ErrCreateChapterFile = errors.New("chapter file creation failed")
)

// MissingChapterFileError names a directory whose representative file is absent
// while neither creation nor skipping is enabled.
type MissingChapterFileError struct {
	Dir  string // Directory relative to the source root, "." for the root itself
	File string // Expected file path on disk
}

func (e *MissingChapterFileError) Error() string {
	return fmt.Sprintf("missing chapter file '%s' for directory '%s/' (set create_missing_chapter_files or ignore_missing_chapter_files)", e.File, e.Dir)
}

func (e *MissingChapterFileError) Is(target error) bool {
	return target == ErrMissingChapterFile
}

// UnreadableFileError wraps an I/O or decoding failure on a source path.
type UnreadableFileError struct {
	Path string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	return fmt.Sprintf("failed to read '%s': %v", e.Path, e.Err)
}

func (e *UnreadableFileError) Unwrap() error {
	return e.Err
}

func (e *UnreadableFileError) Is(target error) bool {
	return target == ErrUnreadableFile
}

// CreateChapterFileError wraps a failure to create a placeholder chapter file.
type CreateChapterFileError struct {
	Path string
	Err  error
}

func (e *CreateChapterFileError) Error() string {
	return fmt.Sprintf("failed to create chapter file '%s': %v", e.Path, e.Err)
}

func (e *CreateChapterFileError) Unwrap() error {
	return e.Err
}

func (e *CreateChapterFileError) Is(target error) bool {
	return target == ErrCreateChapterFile
}
