package toc

import (
	"strings"
	"unicode"
)

const maxHeadingLevel = 6

// splitFirst splits a left-trimmed line on its first run of whitespace.
// The remainder keeps its trailing whitespace.
func splitFirst(line string) (token, rest string, ok bool) {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if line == "" {
		return "", "", false
	}
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, "", true
	}
	return line[:i], strings.TrimLeftFunc(line[i:], unicode.IsSpace), true
}

// ParseHeading reports the level and text of an ATX heading line.
// A line that is not a heading yields level 0.
func ParseHeading(line string) (int, string) {
	token, rest, ok := splitFirst(line)
	if !ok || rest == "" {
		return 0, ""
	}
	if len(token) > maxHeadingLevel || strings.Trim(token, "#") != "" {
		return 0, ""
	}
	return len(token), rest
}

// IsListItem reports whether the line is a "-" or "*" list item with content.
func IsListItem(line string) bool {
	token, rest, ok := splitFirst(line)
	if !ok || rest == "" {
		return false
	}
	return token == "-" || token == "*"
}
