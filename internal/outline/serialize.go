package outline

import (
	"fmt"
	"strings"

	"github.com/aymerick/raymond"
)

// DefaultHeader is the document heading written above the chapter list
const DefaultHeader = "# Summary"

const indentUnit = "  "

var titleEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)

// Serialize renders the outline as a nested markdown list. Each entry is
// indented two spaces per level and written as "- [Title](link)"; draft
// entries get an empty link. An implicit root emits no line of its own.
// The same tree always yields the same bytes.
func Serialize(root *Chapter) string {
	var sb strings.Builder
	if root == nil {
		return ""
	}
	if root.IsImplicit() {
		for _, child := range root.Children {
			writeEntry(&sb, child, 0)
		}
	} else {
		writeEntry(&sb, root, 0)
	}
	return sb.String()
}

func writeEntry(sb *strings.Builder, c *Chapter, level int) {
	sb.WriteString(strings.Repeat(indentUnit, level))
	sb.WriteString("- [")
	sb.WriteString(titleEscaper.Replace(c.Title))
	sb.WriteString("](")
	sb.WriteString(formatLink(c.Link))
	sb.WriteString(")\n")

	for _, child := range c.Children {
		writeEntry(sb, child, level+1)
	}
}

// formatLink wraps destinations that a bare markdown link can't carry in angle brackets
func formatLink(link string) string {
	if strings.ContainsAny(link, " ()<>") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(link) + ">"
	}
	return link
}

// HeaderData is the template context of the document header
type HeaderData struct {
	Title    string `json:"title"`
	Chapters int    `json:"chapters"`
}

// Document renders the header template followed by the serialized outline.
// The header is a handlebars template receiving HeaderData; an empty
// template leaves the outline alone.
func Document(root *Chapter, header string, data HeaderData) (string, error) {
	body := Serialize(root)
	if strings.TrimSpace(header) == "" {
		return body, nil
	}

	rendered, err := raymond.Render(header, map[string]interface{}{
		"title":    data.Title,
		"chapters": data.Chapters,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render summary header: %w", err)
	}

	rendered = strings.TrimRight(rendered, "\n")
	if body == "" {
		return rendered + "\n", nil
	}
	return rendered + "\n\n" + body, nil
}
