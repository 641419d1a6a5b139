package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/normalize"
)

// MarkdownRenderer draws the preview card as Markdown.
type MarkdownRenderer struct {
	normalizer *normalize.MarkdownNormalizer
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{normalizer: normalize.New()}
}

// Render formats result as a Markdown preview card.
func (r *MarkdownRenderer) Render(link string, result *core.EnrichmentResult) ([]byte, error) {
	c := newCard(link, result, r.normalizer)

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", c.Title)
	if c.Site != "" {
		fmt.Fprintf(&b, "_%s_ · <%s>\n\n", c.Site, c.URL)
	} else {
		fmt.Fprintf(&b, "<%s>\n\n", c.URL)
	}

	if c.Image != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", c.Title, c.Image)
	}
	if c.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", c.Description)
	}

	for _, f := range c.Facts {
		fmt.Fprintf(&b, "- **%s:** %s\n", f.Label, f.Value)
	}
	if len(c.Facts) > 0 {
		b.WriteString("\n")
	}

	if c.Embed != "" {
		fmt.Fprintf(&b, "## Embed\n\n%s\n", c.Embed)
	}

	return []byte(strings.TrimRight(b.String(), "\n") + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
