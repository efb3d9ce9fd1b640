package toc

import (
	"fmt"
	"strings"
	"unicode"
)

const anchorPrefix = "#user-content-"

// Entry is one line of a generated table of contents.
type Entry struct {
	Indent int
	Text   string
	Anchor string
}

// Markdown renders the entry as a list item, four spaces per indent level.
func (e Entry) Markdown() string {
	return fmt.Sprintf("%s- [%s](%s)", strings.Repeat("    ", e.Indent), e.Text, e.Anchor)
}

// Plan is everything derived from the outline that the rewrite needs.
type Plan struct {
	// TitleLine is the line of the document title, 0 when there is none.
	TitleLine int
	// HeaderLine is the line of the existing TOC header heading, 0 when there is none.
	HeaderLine int
	// AnchorLine is the line the TOC is inserted after. 0 means the top of the file.
	AnchorLine int
	TopLevel   int
	// Headings are the headings listed in the TOC, title and TOC header excluded.
	Headings []Heading
	Entries  []Entry
	// Header is the rendered TOC header line, empty when none was supplied.
	Header string
}

// Slug lowercases text and joins its words with hyphens.
// Punctuation is kept, so the result can differ from the anchors GitHub renders.
func Slug(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), "-")
}

// Synthesize turns the scanned headings into TOC entries.
func Synthesize(headings []Heading, opts Options) Plan {
	var plan Plan
	if opts.HasTitle && len(headings) > 0 {
		plan.TitleLine = headings[0].Line
		headings = headings[1:]
	}

	plan.AnchorLine = plan.TitleLine
	if opts.HasTOCHeader && len(headings) > 0 {
		plan.HeaderLine = headings[0].Line
		plan.AnchorLine = plan.HeaderLine
		headings = headings[1:]
	}

	plan.TopLevel = 1
	if len(headings) > 0 {
		plan.TopLevel = headings[0].Level
		for _, h := range headings[1:] {
			plan.TopLevel = min(plan.TopLevel, h.Level)
		}
	}

	plan.Headings = headings
	plan.Entries = make([]Entry, 0, len(headings))
	lastIndent := 0
	for _, h := range headings {
		// deeper jumps flatten to one level below the previous entry
		indent := min(h.Level-plan.TopLevel, lastIndent+1)
		plan.Entries = append(plan.Entries, Entry{
			Indent: indent,
			Text:   strings.TrimRightFunc(h.Text, unicode.IsSpace),
			Anchor: anchorPrefix + Slug(h.Text),
		})
		lastIndent = indent
	}

	if opts.Header != "" {
		plan.Header = strings.Repeat("#", plan.TopLevel) + " " + opts.Header
	}
	return plan
}

// Lines renders the entries as the TOC block body, entries separated by blank lines.
func (p Plan) Lines() []string {
	out := make([]string, 0, 2*len(p.Entries))
	for i, e := range p.Entries {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, e.Markdown())
	}
	return out
}
