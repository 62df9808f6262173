// Package frontmatter reads YAML and TOML frontmatter blocks at the start of a chapter.
//
// Formats:
//   - YAML: between --- delimiters
//   - TOML: between +++ delimiters
//
// The block must open on the very first line of the file.
package frontmatter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const (
	YAMLDelimiter = "---"
	TOMLDelimiter = "+++"
)

// Delimiter reports whether line opens a frontmatter block and which delimiter closes it
func Delimiter(line string) (string, bool) {
	switch strings.TrimSpace(line) {
	case YAMLDelimiter:
		return YAMLDelimiter, true
	case TOMLDelimiter:
		return TOMLDelimiter, true
	}
	return "", false
}

// ReadBlock consumes lines up to and including the closing delimiter and
// returns the block body. A block that never closes is an error.
func ReadBlock(r *bufio.Reader, delim string) ([]byte, error) {
	var body strings.Builder
	for {
		line, err := r.ReadString('\n')
		if strings.TrimSpace(line) == delim {
			return []byte(body.String()), nil
		}
		body.WriteString(line)
		if err == io.EOF {
			return nil, fmt.Errorf("unterminated frontmatter block")
		}
		if err != nil {
			return nil, err
		}
	}
}

// Parse decodes a block body according to its delimiter
func Parse(delim string, body []byte) (map[string]interface{}, error) {
	meta := make(map[string]interface{})
	switch delim {
	case YAMLDelimiter:
		if err := yaml.Unmarshal(body, &meta); err != nil {
			return nil, fmt.Errorf("failed to parse YAML frontmatter: %w", err)
		}
	case TOMLDelimiter:
		if err := toml.Unmarshal(body, &meta); err != nil {
			return nil, fmt.Errorf("failed to parse TOML frontmatter: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown frontmatter delimiter %q", delim)
	}
	return meta, nil
}

// Title returns the "title" value on a single line with runs of whitespace
// collapsed, or "" when absent or not a string
func Title(meta map[string]interface{}) string {
	if s, ok := meta["title"].(string); ok {
		return strings.Join(strings.Fields(s), " ")
	}
	return ""
}
