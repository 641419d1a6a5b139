// Package extract turns an HTML page into canonical webpage metadata.
// It reconciles <link> icons, Open Graph and Twitter Card tags into one
// record and discovers the page's oEmbed endpoints.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/links"
)

// Discovery holds the oEmbed endpoints a page advertises. Empty fields mean
// the page does not advertise that format.
type Discovery struct {
	JSON string `json:"json"`
	XML  string `json:"xml"`
}

// Found reports whether any endpoint was discovered.
func (d Discovery) Found() bool {
	return d.JSON != "" || d.XML != ""
}

// Page is the outcome of extracting one HTML document.
type Page struct {
	Webpage *core.WebpageMetadata
	OEmbed  Discovery
}

// PageExtractor parses HTML bodies fetched for a link.
type PageExtractor struct{}

// New creates a PageExtractor.
func New() *PageExtractor {
	return &PageExtractor{}
}

// Extract parses body, the HTML served at link, and returns its metadata
// together with any oEmbed discovery links. Relative URLs are resolved
// against link.
func (e *PageExtractor) Extract(link, body string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return &Page{
		Webpage: Webpage(link, doc),
		OEmbed:  Discover(link, doc),
	}, nil
}

// Discover scans <link rel="alternate"> tags for oEmbed endpoints. The type
// attribute must contain "+oembed"; the last matching tag of each format wins.
func Discover(link string, doc *goquery.Document) Discovery {
	var d Discovery

	doc.Find(`link[rel="alternate"]`).Each(func(_ int, s *goquery.Selection) {
		typ := s.AttrOr("type", "")
		href := s.AttrOr("href", "")
		if href == "" || !strings.Contains(typ, "+oembed") {
			return
		}

		switch {
		case strings.HasPrefix(typ, "application/json"):
			d.JSON = links.Resolve(href, link)
		case strings.HasPrefix(typ, "application/xml"), strings.HasPrefix(typ, "text/xml"):
			d.XML = links.Resolve(href, link)
		}
	})

	return d
}
