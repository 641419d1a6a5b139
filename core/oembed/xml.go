package oembed

import (
	"encoding/xml"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/linkpipe/core"
)

// textNode captures the character data of one element, CDATA included.
type textNode struct {
	Text string `xml:",chardata"`
}

// FromXML normalizes an XML oEmbed document. It returns nil when the
// document carries no valid type.
func FromXML(body string) *core.OEmbedMetadata {
	return FromJSON(DecodeXML(strings.NewReader(body)))
}

// DecodeXML reads the well-known oEmbed elements from r wherever they appear
// in the tree, keeping the first occurrence of each. Decoding is lenient:
// HTML entities are accepted, declared encodings are converted to UTF-8,
// and a syntax error ends the scan while keeping what was read so far.
func DecodeXML(r io.Reader) *Payload {
	p := &Payload{}
	fields := map[string]*Value{
		"type":             &p.Type,
		"version":          &p.Version,
		"title":            &p.Title,
		"author_name":      &p.AuthorName,
		"author_url":       &p.AuthorURL,
		"provider_name":    &p.ProviderName,
		"provider_url":     &p.ProviderURL,
		"cache_age":        &p.CacheAge,
		"thumbnail_url":    &p.ThumbnailURL,
		"thumbnail_width":  &p.ThumbnailWidth,
		"thumbnail_height": &p.ThumbnailHeight,
		"url":              &p.URL,
		"html":             &p.HTML,
		"width":            &p.Width,
		"height":           &p.Height,
	}
	seen := make(map[string]bool, len(fields))

	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	for {
		tok, err := dec.Token()
		if err != nil {
			return p
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		name := strings.ToLower(start.Name.Local)
		field, known := fields[name]
		if !known || seen[name] {
			continue
		}

		var node textNode
		if err := dec.DecodeElement(&node, &start); err != nil {
			return p
		}
		*field = Value(strings.TrimSpace(node.Text))
		seen[name] = true
	}
}
