// Package oembed normalizes oEmbed payloads, served as JSON or XML, into one
// canonical record. Embed markup is reduced to its first <iframe>, whose src
// becomes the record's href.
package oembed

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/links"
)

var validTypes = map[string]bool{
	core.OEmbedPhoto: true,
	core.OEmbedVideo: true,
	core.OEmbedRich:  true,
	core.OEmbedLink:  true,
}

var cdataPattern = regexp.MustCompile(`(?is)<!\[CDATA\[(.*?)\]\]>`)

// FromJSON normalizes a decoded JSON payload. It returns nil when p is nil
// or its type is not one of photo, video, rich or link.
func FromJSON(p *Payload) *core.OEmbedMetadata {
	if p == nil || !validTypes[string(p.Type)] {
		return nil
	}

	m := &core.OEmbedMetadata{
		Type:   string(p.Type),
		Title:  core.String(string(p.Title)),
		Width:  p.Width.Int(),
		Height: p.Height.Int(),
	}

	var href string
	if p.HTML != "" {
		markup, src := iframe(string(p.HTML))
		if markup != "" {
			m.HTML = core.String(markup)
			href = src
		} else {
			m.HTML = core.String(string(p.HTML))
		}
	}
	if href == "" {
		href = string(p.URL)
	}
	if href != "" {
		if normalized, err := links.Normalize(href); err == nil {
			m.Href = core.String(normalized)
		}
	}

	if p.AuthorName != "" {
		m.Author = &core.OEmbedAuthor{
			Name: string(p.AuthorName),
			URL:  core.String(string(p.AuthorURL)),
		}
	}

	if p.ProviderName != "" {
		m.Provider = &core.OEmbedProvider{
			ID:   ProviderID(string(p.ProviderName)),
			Name: string(p.ProviderName),
			URL:  core.String(string(p.ProviderURL)),
		}
	}

	if p.ThumbnailURL != "" {
		thumb := string(p.ThumbnailURL)
		m.Thumbnail = &core.MediaReference{
			URL:    thumb,
			Type:   core.String(links.SniffFromPath(thumb)),
			Width:  p.ThumbnailWidth.Int(),
			Height: p.ThumbnailHeight.Int(),
		}
	}

	return m
}

// Merge combines the records resolved from a page's JSON (primary) and XML
// (fallback) endpoints. A resolved record always carries every key, null
// ones included, so each key collides and the primary record wins outright;
// fallback only stands in when primary did not resolve.
func Merge(primary, fallback *core.OEmbedMetadata) *core.OEmbedMetadata {
	if primary != nil {
		return primary
	}
	return fallback
}

// iframe finds the first <iframe> in an embed snippet and returns it
// serialized on its own, without sibling scripts, along with its src.
// markup is empty when the snippet has no iframe.
func iframe(html string) (markup, src string) {
	html = cdataPattern.ReplaceAllString(html, "$1")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", ""
	}

	frame := doc.Find("iframe").First()
	if frame.Length() == 0 {
		return "", ""
	}

	markup, err = goquery.OuterHtml(frame)
	if err != nil {
		return "", ""
	}
	return markup, frame.AttrOr("src", "")
}

// ProviderID derives an identifier from a provider name by capitalizing each
// word and joining them: "You Tube" and "YouTube" both become "YouTube",
// "BBC news" becomes "BbcNews".
func ProviderID(name string) string {
	var b strings.Builder

	fields := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, field := range fields {
		for _, word := range splitCase(field) {
			runes := []rune(strings.ToLower(word))
			runes[0] = unicode.ToUpper(runes[0])
			b.WriteString(string(runes))
		}
	}

	return b.String()
}

// splitCase splits a word at case changes and at digit/letter boundaries:
// "YouTube" is "You", "Tube", "XMLHttp" is "XML", "Http" and "9gag" is
// "9", "gag".
func splitCase(s string) []string {
	runes := []rune(s)
	var words []string
	start := 0

	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		lowerToUpper := unicode.IsLower(prev) && unicode.IsUpper(cur)
		acronymEnd := unicode.IsUpper(prev) && unicode.IsUpper(cur) &&
			i+1 < len(runes) && unicode.IsLower(runes[i+1])
		digitEdge := unicode.IsDigit(prev) != unicode.IsDigit(cur)
		if lowerToUpper || acronymEnd || digitEdge {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}

	return append(words, string(runes[start:]))
}
