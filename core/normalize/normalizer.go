// Package normalize converts oEmbed embed markup into Markdown so preview
// cards can show rich embeds (quotes, captions) as text.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"

	"github.com/gaurav-prasanna/linkpipe/core"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts an HTML fragment into Markdown. Relative links in the
// fragment are resolved against base when base is non-empty.
func (n *MarkdownNormalizer) Normalize(html, base string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if base != "" {
		opts = append(opts, converter.WithDomain(base))
	}

	markdown, err := htmltomarkdown.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return strings.TrimSpace(markdown), nil
}

// Embed renders the embed of an oEmbed record as Markdown. Markup that
// converts to nothing (a bare iframe, for one) falls back to a link to the
// record's href. It returns "" when the record has neither.
func (n *MarkdownNormalizer) Embed(m *core.OEmbedMetadata) string {
	if m == nil {
		return ""
	}
	href := core.Deref(m.Href)

	if html := core.Deref(m.HTML); html != "" {
		markdown, err := n.Normalize(html, href)
		if err == nil && markdown != "" {
			return markdown
		}
	}

	if href == "" {
		return ""
	}
	label := core.Deref(m.Title)
	if label == "" {
		label = href
	}
	return fmt.Sprintf("[%s](%s)", label, href)
}
