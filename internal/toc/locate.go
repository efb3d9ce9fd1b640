package toc

// Range is a closed interval of 1-based line numbers.
type Range struct {
	Begin int
	End   int
}

// Contains reports whether line n falls inside the range.
func (r *Range) Contains(n int) bool {
	return r != nil && n >= r.Begin && n <= r.End
}

// Len returns the number of lines covered by the range.
func (r *Range) Len() int {
	if r == nil {
		return 0
	}
	return r.End - r.Begin + 1
}

// Locate finds a previously generated TOC: the list lines sitting between the
// anchor line and the first listed heading. It returns nil when there are none,
// and for a document without headings, whose lists are never a TOC.
func Locate(doc Document, plan Plan) *Range {
	if len(doc.Headings) == 0 {
		return nil
	}
	limit := 0
	if len(plan.Headings) > 0 {
		limit = plan.Headings[0].Line
	}

	var candidates []int
	// a new header replaces the old header line, never the title
	if plan.Header != "" && plan.HeaderLine > 0 {
		candidates = append(candidates, plan.HeaderLine)
	}
	for _, n := range doc.ListLines {
		if n > plan.AnchorLine && (limit == 0 || n < limit) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	r := &Range{Begin: candidates[0], End: candidates[0]}
	for _, n := range candidates[1:] {
		r.Begin = min(r.Begin, n)
		r.End = max(r.End, n)
	}
	// swallow the blank lines the old block leaves behind
	for doc.EmptyLines[r.End+1] {
		r.End++
	}
	return r
}
