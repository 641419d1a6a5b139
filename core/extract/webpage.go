package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/links"
)

const defaultPageType = "website"

// iconRels lists the <link> relations collected as icons, in output order.
var iconRels = []string{core.RelIcon, core.RelAppleTouchIcon, core.RelManifest}

// Webpage builds the canonical metadata of doc, the page served at link.
//
// Meta tags are visited in document order and keyed by name, falling back
// to property. og:type, og:url and og:site_name take the last value seen.
// Titles and descriptions take the last non-empty value among their three
// tag names; the title falls back to the <title> element.
func Webpage(link string, doc *goquery.Document) *core.WebpageMetadata {
	var (
		pageType, pageURL, siteName string
		title, description          string
		media                       [mediaKinds]mediaList
	)

	doc.Find("meta").Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" {
			name = s.AttrOr("property", "")
		}
		value := s.AttrOr("content", "")

		switch name {
		case "og:type":
			pageType = value
		case "og:url":
			pageURL = value
		case "og:site_name":
			siteName = value
		case "title", "og:title", "twitter:title":
			if value != "" {
				title = value
			}
		case "description", "og:description", "twitter:description":
			if value != "" {
				description = value
			}
		default:
			if rule, ok := mediaRules[name]; ok {
				media[rule.kind].apply(rule.op, value, link)
			}
		}
	})

	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if pageType == "" {
		pageType = defaultPageType
	}
	if pageURL == "" {
		pageURL = link
	}

	return &core.WebpageMetadata{
		Type:        pageType,
		URL:         pageURL,
		Name:        core.String(siteName),
		Title:       core.String(title),
		Description: core.String(description),
		Icons:       icons(link, doc),
		Images:      media[images].finish(),
		Videos:      media[videos].finish(),
		Audios:      media[audios].finish(),
	}
}

// icons collects one WebpageIcon per icon-like <link> tag. Icons are never
// merged; tags without href are skipped.
func icons(link string, doc *goquery.Document) []core.WebpageIcon {
	found := []core.WebpageIcon{}

	for _, rel := range iconRels {
		doc.Find(`link[rel="` + rel + `"]`).Each(func(_ int, s *goquery.Selection) {
			href := s.AttrOr("href", "")
			if href == "" {
				return
			}
			resolved := links.Resolve(href, link)
			if resolved == "" {
				return
			}

			typ := s.AttrOr("type", "")
			if typ == "" {
				typ = links.SniffFromPath(resolved)
			}

			icon := core.WebpageIcon{
				Rel:  rel,
				URL:  resolved,
				Type: core.String(typ),
			}
			if w, h, ok := links.ParseSizes(s.AttrOr("sizes", "")); ok {
				icon.Width = core.Int(w)
				icon.Height = core.Int(h)
			}
			found = append(found, icon)
		})
	}

	return found
}
