package outline

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/geocine/gensummary/internal/frontmatter"
)

// headingMarker opens a first-line chapter title
const headingMarker = "# "

var errInvalidUTF8 = errors.New("invalid UTF-8")

// TitleResolver derives display titles for chapter files
type TitleResolver struct {
	opts Options
}

// NewTitleResolver creates a resolver for the given options
func NewTitleResolver(opts Options) *TitleResolver {
	return &TitleResolver{opts: opts}
}

// Resolve returns the title of the file at path. fallback is used when the
// options don't read titles from files or the file carries none.
func (r *TitleResolver) Resolve(path, fallback string) (string, error) {
	if !r.opts.ChapterNameFromFile && !r.opts.FrontmatterTitle {
		return fallback, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &UnreadableFileError{Path: path, Err: err}
	}
	defer f.Close()

	br := bufio.NewReader(f)
	line, err := readLine(br, true)
	if err != nil {
		return "", &UnreadableFileError{Path: path, Err: err}
	}

	if r.opts.FrontmatterTitle {
		if delim, ok := frontmatter.Delimiter(line); ok {
			// A broken block only costs the frontmatter title
			if body, err := frontmatter.ReadBlock(br, delim); err == nil {
				if meta, err := frontmatter.Parse(delim, body); err == nil {
					if title := frontmatter.Title(meta); title != "" {
						return title, nil
					}
				}
			}
			if line, err = readLine(br, false); err != nil {
				return "", &UnreadableFileError{Path: path, Err: err}
			}
		}
	}

	if r.opts.ChapterNameFromFile {
		if title, ok := ParseHeading(line); ok {
			return title, nil
		}
	}

	return fallback, nil
}

// ParseHeading extracts the title of a "# Title" line
func ParseHeading(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, headingMarker)
	if !ok {
		return "", false
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", false
	}
	return rest, true
}

// TitleFromName turns a file stem or directory name into a display title:
// hyphens and underscores become spaces, runs of whitespace collapse, and
// every word is title-cased. Existing capitals are kept, so "API-guide"
// becomes "API Guide".
func TitleFromName(name string) string {
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	words := strings.Fields(name)
	if len(words) == 0 {
		return ""
	}
	return cases.Title(language.Und, cases.NoLower).String(strings.Join(words, " "))
}

// Stem strips the last extension from a file name
func Stem(name string) string {
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}
	return name
}

// readLine reads one line without its terminator. The first line of a file
// also loses a UTF-8 byte order mark.
func readLine(r *bufio.Reader, first bool) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if first {
		line = strings.TrimPrefix(line, "\ufeff")
	}
	if !utf8.ValidString(line) {
		return "", errInvalidUTF8
	}
	return line, nil
}
