package parser

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SummaryItem represents a link entry in SUMMARY.md
type SummaryItem struct {
	Title       string
	Location    *string // Relative path to markdown file, nil for draft chapters
	NestedItems []*SummaryItem
}

// Summary represents parsed SUMMARY.md
type Summary struct {
	Title string // Text of the first level-1 heading
	Items []*SummaryItem
}

var (
	titleUnescaper = strings.NewReplacer(`\\`, `\`, `\[`, `[`, `\]`, `]`)
	linkUnescaper  = strings.NewReplacer(`\<`, `<`, `\>`, `>`)
)

// ParseSummary parses SUMMARY.md content. Every list item that starts with
// a link becomes an item; nested lists become its children. Other blocks
// are ignored.
func ParseSummary(content string) (*Summary, error) {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	summary := &Summary{Items: make([]*SummaryItem, 0)}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			if summary.Title == "" && node.Level == 1 {
				summary.Title = inlineText(node, source)
			}
		case *ast.List:
			items, err := parseList(node, source)
			if err != nil {
				return nil, err
			}
			summary.Items = append(summary.Items, items...)
		}
	}

	return summary, nil
}

func parseList(list *ast.List, source []byte) ([]*SummaryItem, error) {
	items := make([]*SummaryItem, 0)
	for n := list.FirstChild(); n != nil; n = n.NextSibling() {
		li, ok := n.(*ast.ListItem)
		if !ok {
			continue
		}

		var item *SummaryItem
		var nested []*SummaryItem
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			switch block := c.(type) {
			case *ast.List:
				children, err := parseList(block, source)
				if err != nil {
					return nil, err
				}
				nested = append(nested, children...)
			default:
				if item == nil {
					item = linkItem(block, source)
				}
			}
		}

		if item == nil {
			if len(nested) > 0 {
				return nil, fmt.Errorf("nested list under a list item without a link")
			}
			continue
		}
		item.NestedItems = append(item.NestedItems, nested...)
		items = append(items, item)
	}
	return items, nil
}

// linkItem builds an item from the first link of a paragraph or text block
func linkItem(block ast.Node, source []byte) *SummaryItem {
	for c := block.FirstChild(); c != nil; c = c.NextSibling() {
		link, ok := c.(*ast.Link)
		if !ok {
			continue
		}
		item := &SummaryItem{
			Title:       titleUnescaper.Replace(inlineText(link, source)),
			NestedItems: make([]*SummaryItem, 0),
		}
		if dest := linkUnescaper.Replace(string(link.Destination)); dest != "" {
			item.Location = &dest
		}
		return item
	}
	return nil
}

// inlineText concatenates the text below n
func inlineText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Value(source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}

// ValidateSummaryStructure validates the summary structure
func ValidateSummaryStructure(summary *Summary) error {
	// Ensure at least some chapters
	if len(summary.Items) == 0 {
		return fmt.Errorf("SUMMARY.md contains no chapters")
	}

	return nil
}

// Flatten returns every item depth-first with its nesting level
func (s *Summary) Flatten() []FlatItem {
	var flat []FlatItem
	var walk func(items []*SummaryItem, level int)
	walk = func(items []*SummaryItem, level int) {
		for _, item := range items {
			flat = append(flat, FlatItem{Item: item, Level: level})
			walk(item.NestedItems, level+1)
		}
	}
	walk(s.Items, 0)
	return flat
}

// FlatItem is an item with its nesting level
type FlatItem struct {
	Item  *SummaryItem
	Level int
}

// String renders the item as a comparable one-line description
func (f FlatItem) String() string {
	location := ""
	if f.Item.Location != nil {
		location = *f.Item.Location
	}
	return fmt.Sprintf("%s- [%s](%s)", strings.Repeat("  ", f.Level), f.Item.Title, location)
}
