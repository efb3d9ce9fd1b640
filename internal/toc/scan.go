package toc

import (
	"strings"
	"unicode"
)

// Heading is an ATX heading found while scanning a document.
type Heading struct {
	Line  int
	Level int
	Text  string
}

// Document is the outline of a markdown file as seen by the scanner.
// Line numbers are 1-based.
type Document struct {
	Headings   []Heading
	ListLines  []int
	EmptyLines map[int]bool
}

// Scan walks the lines once and records headings, list items and blank lines.
func Scan(lines []string) Document {
	doc := Document{EmptyLines: make(map[int]bool)}
	for i, line := range lines {
		n := i + 1
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			doc.EmptyLines[n] = true
			continue
		}
		switch trimmed[0] {
		case '#':
			if level, text := ParseHeading(trimmed); level > 0 {
				doc.Headings = append(doc.Headings, Heading{Line: n, Level: level, Text: text})
			}
		case '-', '*':
			if IsListItem(trimmed) {
				doc.ListLines = append(doc.ListLines, n)
			}
		}
	}
	return doc
}
