// Package markdown renders article bodies to HTML with goldmark and derives
// plain-text excerpts for listing cards.
package markdown

import (
	"bytes"
	"context"
	"html/template"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// ExcerptLength is the default excerpt size in runes.
const ExcerptLength = 140

// Renderer converts markdown to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GFM, heading IDs and syntax highlighting.
func New() *Renderer {
	return &Renderer{md: goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
	)}
}

var defaultRenderer = New()

// Render writes the HTML representation of src to w.
func (r *Renderer) Render(w io.Writer, src []byte) error {
	return r.md.Convert(src, w)
}

// RenderString returns src rendered as HTML.
func (r *Renderer) RenderString(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, []byte(src)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// PlainText returns the visible prose of src with code blocks and raw HTML
// dropped and whitespace collapsed.
func (r *Renderer) PlainText(src []byte) string {
	doc := r.md.Parser().Parse(text.NewReader(src))
	var b strings.Builder
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte(' ')
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		case *ast.Text:
			b.Write(node.Segment.Value(src))
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(b.String()), " ")
}

// Excerpt returns at most n runes of plain text from src, cut on a word
// boundary and terminated with an ellipsis when shortened.
func (r *Renderer) Excerpt(src string, n int) string {
	if n <= 0 {
		n = ExcerptLength
	}
	plain := r.PlainText([]byte(src))
	if utf8.RuneCountInString(plain) <= n {
		return plain
	}
	runes := []rune(plain)
	cut := string(runes[:n])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// Markdown returns a templ.Component that renders content as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return defaultRenderer.Render(w, []byte(content))
	})
}

// HTML renders content for use inside html/template. Rendering errors yield
// the escaped source.
func HTML(content string) template.HTML {
	out, err := defaultRenderer.RenderString(content)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(content))
	}
	return template.HTML(out)
}

// Excerpt is Renderer.Excerpt on the default renderer.
func Excerpt(content string, n int) string {
	return defaultRenderer.Excerpt(content, n)
}
