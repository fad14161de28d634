// Package markdown renders post bodies from Markdown to HTML for display.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
)

// Renderer converts Markdown source to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with goldmark's default (safe) settings:
// raw HTML in the source is not passed through.
func NewRenderer() *Renderer {
	return &Renderer{md: goldmark.New()}
}

// Render converts src to HTML. On conversion failure the raw source is
// returned so the post stays readable.
func (r *Renderer) Render(src string) string {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return src
	}
	return buf.String()
}
