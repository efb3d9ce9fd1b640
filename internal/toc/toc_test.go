package toc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// regenerate runs one full pass over lines in memory.
func regenerate(lines []string, opts Options) []string {
	doc := Scan(lines)
	plan := Synthesize(doc.Headings, opts)
	var remove *Range
	if opts.Override {
		remove = Locate(doc, plan)
	}
	return Rewrite(lines, plan, remove)
}

func TestScan(t *testing.T) {
	lines := []string{
		"# Title",
		"",
		"   ",
		"  ## Indented heading",
		"- item",
		"* other",
		"-not a list",
		"####### nope",
		"plain text",
	}
	doc := Scan(lines)

	assert.Equal(t, []Heading{
		{Line: 1, Level: 1, Text: "Title"},
		{Line: 4, Level: 2, Text: "Indented heading"},
	}, doc.Headings)
	assert.Equal(t, []int{5, 6}, doc.ListLines)
	assert.Equal(t, map[int]bool{2: true, 3: true}, doc.EmptyLines)
}

func TestSynthesize_IndentClamp(t *testing.T) {
	headings := []Heading{
		{Line: 1, Level: 1, Text: "One"},
		{Line: 2, Level: 4, Text: "Four"},
		{Line: 3, Level: 2, Text: "Two"},
	}
	plan := Synthesize(headings, Options{})

	require.Len(t, plan.Entries, 3)
	assert.Equal(t, 1, plan.TopLevel)
	indents := []int{plan.Entries[0].Indent, plan.Entries[1].Indent, plan.Entries[2].Indent}
	assert.Equal(t, []int{0, 1, 1}, indents)
}

func TestSynthesize_TitleAndHeaderExclusion(t *testing.T) {
	headings := []Heading{
		{Line: 1, Level: 1, Text: "Title"},
		{Line: 3, Level: 2, Text: "Contents"},
		{Line: 7, Level: 2, Text: "Usage"},
	}

	plan := Synthesize(headings, Options{HasTitle: true, HasTOCHeader: true})
	assert.Equal(t, 1, plan.TitleLine)
	assert.Equal(t, 3, plan.HeaderLine)
	assert.Equal(t, 3, plan.AnchorLine)
	require.Len(t, plan.Entries, 1)
	assert.Equal(t, "Usage", plan.Entries[0].Text)

	plan = Synthesize(headings[:1], Options{HasTitle: true, HasTOCHeader: true})
	assert.Empty(t, plan.Entries)
	assert.Equal(t, 1, plan.AnchorLine)
	assert.Zero(t, plan.HeaderLine)
	assert.Equal(t, 1, plan.TopLevel)
}

func TestSynthesize_AnchorsAndHeader(t *testing.T) {
	headings := []Heading{
		{Line: 2, Level: 3, Text: "Getting  Started\tNow  "},
		{Line: 5, Level: 3, Text: "FAQ?"},
	}
	plan := Synthesize(headings, Options{Header: "Table of Contents"})

	assert.Equal(t, "### Table of Contents", plan.Header)
	assert.Equal(t, Entry{Indent: 0, Text: "Getting  Started\tNow", Anchor: "#user-content-getting-started-now"}, plan.Entries[0])
	assert.Equal(t, "#user-content-faq?", plan.Entries[1].Anchor)
	assert.Equal(t, []string{
		"- [Getting  Started\tNow](#user-content-getting-started-now)",
		"",
		"- [FAQ?](#user-content-faq?)",
	}, plan.Lines())
}

func TestEntryMarkdown(t *testing.T) {
	e := Entry{Indent: 2, Text: "Deep", Anchor: "#user-content-deep"}
	assert.Equal(t, "        - [Deep](#user-content-deep)", e.Markdown())
}

func TestPipeline_ListBeforeFirstHeading(t *testing.T) {
	lines := []string{"# Title", "## Intro", "- item", "### Details"}
	opts := Options{HasTitle: true, Override: true}

	doc := Scan(lines)
	plan := Synthesize(doc.Headings, opts)
	assert.Equal(t, 1, plan.TitleLine)
	assert.Equal(t, 1, plan.AnchorLine)
	assert.Equal(t, 2, plan.TopLevel)
	assert.Equal(t, []Entry{
		{Indent: 0, Text: "Intro", Anchor: "#user-content-intro"},
		{Indent: 1, Text: "Details", Anchor: "#user-content-details"},
	}, plan.Entries)

	// line 3 is past the first listed heading (line 2), so nothing is removed
	assert.Nil(t, Locate(doc, plan))

	assert.Equal(t, []string{
		"# Title",
		"",
		"- [Intro](#user-content-intro)",
		"",
		"    - [Details](#user-content-details)",
		"",
		"## Intro",
		"- item",
		"### Details",
	}, Rewrite(lines, plan, nil))
}

func TestLocate_ExistingTOC(t *testing.T) {
	lines := []string{
		"# Title",
		"",
		"## Contents",
		"",
		"- [Old](#user-content-old)",
		"",
		"- [Gone](#user-content-gone)",
		"",
		"",
		"## Usage",
		"text",
		"- bullet",
	}
	opts := Options{HasTitle: true, HasTOCHeader: true, Override: true}
	doc := Scan(lines)
	plan := Synthesize(doc.Headings, opts)

	assert.Equal(t, &Range{Begin: 5, End: 9}, Locate(doc, plan))

	out := regenerate(lines, opts)
	assert.Equal(t, []string{
		"# Title",
		"",
		"## Contents",
		"",
		"- [Usage](#user-content-usage)",
		"",
		"## Usage",
		"text",
		"- bullet",
	}, out)
	assert.Equal(t, out, regenerate(out, opts))
}

func TestLocate_NewHeaderReplacesOldHeader(t *testing.T) {
	lines := []string{
		"# Title",
		"",
		"## Contents",
		"",
		"- [Old](#user-content-old)",
		"",
		"## Usage",
	}
	opts := Options{HasTitle: true, HasTOCHeader: true, Override: true, Header: "Table of Contents"}
	doc := Scan(lines)
	plan := Synthesize(doc.Headings, opts)

	assert.Equal(t, &Range{Begin: 3, End: 6}, Locate(doc, plan))

	out := regenerate(lines, opts)
	assert.Equal(t, []string{
		"# Title",
		"",
		"## Table of Contents",
		"",
		"- [Usage](#user-content-usage)",
		"",
		"## Usage",
	}, out)
	assert.Equal(t, out, regenerate(out, opts))
}

func TestLocate_HeaderWithoutTOCHeaderKeepsTitle(t *testing.T) {
	lines := []string{"# Title", "", "## Usage"}
	opts := Options{HasTitle: true, Override: true, Header: "Contents"}
	doc := Scan(lines)
	plan := Synthesize(doc.Headings, opts)

	assert.Nil(t, Locate(doc, plan))
	assert.Equal(t, []string{
		"# Title",
		"## Contents",
		"",
		"- [Usage](#user-content-usage)",
		"",
		"## Usage",
	}, Rewrite(lines, plan, nil))
}

func TestRewrite_InsertAtTop(t *testing.T) {
	lines := []string{"Intro text", "", "## A", "### B"}
	opts := Options{Override: true}

	out := regenerate(lines, opts)
	assert.Equal(t, []string{
		"- [A](#user-content-a)",
		"",
		"    - [B](#user-content-b)",
		"",
		"Intro text",
		"",
		"## A",
		"### B",
	}, out)
	assert.Equal(t, out, regenerate(out, opts))
}

func TestRewrite_InsertAtTopWithHeader(t *testing.T) {
	lines := []string{"Intro text", "", "## A"}

	first := regenerate(lines, Options{Override: true, Header: "Contents"})
	assert.Equal(t, []string{
		"## Contents",
		"",
		"- [A](#user-content-a)",
		"",
		"Intro text",
		"",
		"## A",
	}, first)

	// once written, the header is picked up as the TOC header heading
	opts := Options{HasTOCHeader: true, Override: true, Header: "Contents"}
	second := regenerate(first, opts)
	assert.Equal(t, first, second)
	assert.Equal(t, second, regenerate(second, opts))
}

func TestRewrite_SeparatesBlockFromFollowingText(t *testing.T) {
	lines := []string{"# Title", "Body right below."}
	out := regenerate([]string{"# Title", "Body right below.", "## A"}, Options{HasTitle: true, Override: true})
	assert.Equal(t, []string{
		"# Title",
		"",
		"- [A](#user-content-a)",
		"",
		"Body right below.",
		"## A",
	}, out)

	plan := Synthesize(Scan(lines).Headings, Options{HasTitle: true})
	assert.Equal(t, lines, Rewrite(lines, plan, nil), "nothing to insert, nothing added")
}

func TestRewrite_WithoutOverrideKeepsOldLines(t *testing.T) {
	lines := []string{"# Title", "- [Old](#x)", "## A"}
	out := regenerate(lines, Options{HasTitle: true})
	assert.Equal(t, []string{
		"# Title",
		"",
		"- [A](#user-content-a)",
		"",
		"- [Old](#x)",
		"## A",
	}, out)
}

func TestRewrite_StripsTrailingWhitespace(t *testing.T) {
	lines := []string{"# Title  ", "text\t ", "## A"}
	out := regenerate(lines, Options{HasTitle: true, Override: true})
	assert.Equal(t, "# Title", out[0])
	assert.Equal(t, "text", out[4])
}

func TestPipeline_NoHeadings(t *testing.T) {
	lines := []string{"just text", "", "- a list"}
	opts := Options{HasTitle: true, HasTOCHeader: true, Override: true}

	doc := Scan(lines)
	assert.Empty(t, doc.Headings)
	plan := Synthesize(doc.Headings, opts)
	assert.Empty(t, plan.Entries)
	assert.Empty(t, plan.Lines())
	assert.Zero(t, plan.AnchorLine)
	assert.Nil(t, Locate(doc, plan))

	assert.Equal(t, lines, regenerate(lines, opts))
}

func TestLocate_StaleTOCWithoutSections(t *testing.T) {
	lines := []string{"# Title", "", "## Contents", "", "- [Gone](#user-content-gone)", "", "text"}
	opts := Options{HasTitle: true, HasTOCHeader: true, Override: true}
	doc := Scan(lines)
	plan := Synthesize(doc.Headings, opts)
	require.Empty(t, plan.Entries)

	assert.Equal(t, &Range{Begin: 5, End: 6}, Locate(doc, plan))

	out := regenerate(lines, opts)
	assert.Equal(t, []string{"# Title", "", "## Contents", "", "text"}, out)
	assert.Equal(t, out, regenerate(out, opts))
}

func TestPipeline_EmptyDocument(t *testing.T) {
	doc := Scan(nil)
	plan := Synthesize(doc.Headings, Options{HasTitle: true, Override: true})
	assert.Nil(t, Locate(doc, plan))
	assert.Empty(t, Rewrite(nil, plan, nil))
}

func TestRange(t *testing.T) {
	var r *Range
	assert.False(t, r.Contains(1))
	assert.Zero(t, r.Len())

	r = &Range{Begin: 2, End: 4}
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
	assert.Equal(t, 3, r.Len())
}
