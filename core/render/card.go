// Package render provides output renderers for LinkPipe enrichment results.
// The Markdown and PDF renderers draw the same preview card; the JSON
// renderer emits the result as is.
package render

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/normalize"
)

// fact is one labelled line of a preview card.
type fact struct {
	Label string
	Value string
}

// card is the renderer-neutral view of an enrichment result.
type card struct {
	Title       string
	URL         string
	Site        string
	Description string
	Image       string
	Facts       []fact
	Embed       string
}

// newCard picks the most descriptive values out of result. Webpage fields
// win over oEmbed fields; the link itself is the title of last resort.
func newCard(link string, result *core.EnrichmentResult, n *normalize.MarkdownNormalizer) card {
	c := card{Title: link, URL: link}
	if result == nil {
		c.Facts = append(c.Facts, fact{"Status", "unreachable"})
		return c
	}

	if o := result.OEmbed; o != nil {
		if title := core.Deref(o.Title); title != "" {
			c.Title = title
		}
		if o.Provider != nil {
			c.Site = o.Provider.Name
		}
		if o.Thumbnail != nil {
			c.Image = o.Thumbnail.URL
		}
		if o.Author != nil {
			c.Facts = append(c.Facts, fact{"Author", o.Author.Name})
		}
		c.Facts = append(c.Facts, fact{"Embed", o.Type})
		c.Embed = n.Embed(o)
	}

	if w := result.Webpage; w != nil {
		c.URL = w.URL
		if title := core.Deref(w.Title); title != "" {
			c.Title = title
		}
		if name := core.Deref(w.Name); name != "" {
			c.Site = name
		}
		c.Description = core.Deref(w.Description)
		if len(w.Images) > 0 {
			c.Image = w.Images[0].URL
		}
	}

	for _, f := range []struct {
		label string
		file  *core.FileDescriptor
	}{
		{"Image", result.Image},
		{"Video", result.Video},
		{"Attachment", result.Attachment},
	} {
		if f.file == nil {
			continue
		}
		if name := core.Deref(f.file.Name); name != "" && c.Title == link {
			c.Title = name
		}
		c.Facts = append(c.Facts, fact{f.label, describeFile(f.file)})
	}

	return c
}

// describeFile formats a file descriptor as "type, size".
func describeFile(f *core.FileDescriptor) string {
	var parts []string
	if t := core.Deref(f.Type); t != "" {
		parts = append(parts, t)
	}
	if f.Size != nil && *f.Size >= 0 {
		parts = append(parts, humanize.Bytes(uint64(*f.Size)))
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, ", ")
}
