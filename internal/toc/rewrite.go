package toc

import (
	"strings"
	"unicode"
)

// Rewrite produces the new content of a document: lines inside remove are
// dropped and the TOC block is spliced in after plan.AnchorLine. The header is
// followed by a blank line and the block is always separated from the next
// non-blank line, wherever it is inserted.
func Rewrite(lines []string, plan Plan, remove *Range) []string {
	block := plan.Lines()
	out := make([]string, 0, len(lines)+len(block)+4)

	separate := false
	insert := func() {
		if plan.Header != "" {
			out = append(out, plan.Header)
		}
		if len(block) > 0 {
			if plan.Header != "" || len(out) > 0 {
				out = append(out, "")
			}
			out = append(out, block...)
			separate = true
		}
	}

	if plan.AnchorLine == 0 {
		insert()
	}

	for i, line := range lines {
		n := i + 1
		if !remove.Contains(n) {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
			if separate && line != "" {
				out = append(out, "")
			}
			separate = false
			out = append(out, line)
		}
		if n == plan.AnchorLine {
			insert()
		}
	}
	return out
}
