package preview

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"mdtoc/internal/toc"
)

// Renderer turns markdown into HTML with GitHub-style heading ids, so the
// generated TOC links can be followed in a browser.
type Renderer struct {
	md goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render converts source to an HTML fragment.
func (r *Renderer) Render(source []byte) ([]byte, error) {
	doc := r.md.Parser().Parse(text.NewReader(source))
	setHeadingIDs(doc, source)

	var buf bytes.Buffer
	if err := r.md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("markdown render: %w", err)
	}
	return buf.Bytes(), nil
}

// setHeadingIDs gives every heading the id its TOC anchor points at.
func setHeadingIDs(doc ast.Node, source []byte) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		id := "user-content-" + toc.Slug(headingText(h, source))
		h.SetAttributeString("id", []byte(id))
		return ast.WalkSkipChildren, nil
	})
}

// headingText is the heading text as the TOC scanner reads it. For ATX
// headings that is the raw line, closing hashes included; setext headings
// fall back to the parsed text.
func headingText(h *ast.Heading, source []byte) string {
	lines := h.Lines()
	if lines.Len() == 0 {
		return ""
	}

	start := lines.At(0).Start
	begin := bytes.LastIndexByte(source[:start], '\n') + 1
	end := len(source)
	if i := bytes.IndexByte(source[start:], '\n'); i >= 0 {
		end = start + i
	}
	raw := strings.TrimLeft(strings.TrimRight(string(source[begin:end]), "\r"), " \t")
	if level, text := toc.ParseHeading(raw); level == h.Level {
		return text
	}

	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(source))
	}
	return sb.String()
}
