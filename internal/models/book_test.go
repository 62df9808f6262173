package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionNumberString(t *testing.T) {
	var nilNum *SectionNumber
	assert.Equal(t, "", nilNum.String())
	assert.Equal(t, "", (&SectionNumber{}).String())
	assert.Equal(t, "1", (&SectionNumber{Parts: []int{1}}).String())
	assert.Equal(t, "1.12.3", (&SectionNumber{Parts: []int{1, 12, 3}}).String())
}

func TestAssignSectionNumbers(t *testing.T) {
	intro := NewChapter("Intro", "", "README.md", nil)
	guide := NewDraftChapter("Guide", []string{"Intro"})
	install := NewChapter("Install", "", "guide/install.md", []string{"Intro", "Guide"})
	usage := NewChapter("Usage", "", "guide/usage.md", []string{"Intro", "Guide"})
	guide.SubItems = append(guide.SubItems, install, usage)
	intro.SubItems = append(intro.SubItems, guide)

	appendix := NewChapter("Appendix", "", "appendix.md", nil)

	book := NewBook()
	book.PushItem(intro)
	book.PushItem(appendix)
	book.AssignSectionNumbers()

	assert.Equal(t, "1", intro.Number.String())
	assert.Equal(t, "1.1", guide.Number.String())
	assert.Equal(t, "1.1.1", install.Number.String())
	assert.Equal(t, "1.1.2", usage.Number.String())
	assert.Equal(t, "2", appendix.Number.String())
}

func TestChaptersSkipsDrafts(t *testing.T) {
	guide := NewDraftChapter("Guide", nil)
	guide.SubItems = append(guide.SubItems, NewChapter("Install", "", "guide/install.md", []string{"Guide"}))

	book := NewBook()
	book.PushItem(NewChapter("Intro", "", "intro.md", nil))
	book.PushItem(guide)

	all := book.IterAll()
	require.Len(t, all, 3)

	chapters := book.Chapters()
	require.Len(t, chapters, 2)
	assert.Equal(t, "Intro", chapters[0].Name)
	assert.Equal(t, "Install", chapters[1].Name)
}
