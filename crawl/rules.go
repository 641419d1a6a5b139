package crawl

import (
	"net/url"
	"strings"

	"github.com/gaurav-prasanna/linkpipe/core/links"
)

// skippedSchemes are hrefs that never point at an enrichable resource.
var skippedSchemes = []string{"mailto:", "javascript:", "tel:", "data:"}

// IsSameDomain checks if the given URL belongs to the specified host.
func IsSameDomain(rawURL string, host string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.EqualFold(parsed.Host, host)
}

// IsAsset reports whether the URL's path names a file that is not a page,
// judged by its extension (images, media, archives, documents).
func IsAsset(rawURL string) bool {
	typ := links.SniffFromPath(rawURL)
	return typ != "" && typ != "text/html" && typ != "application/xhtml+xml"
}

// IsFollowable reports whether the URL uses http or https.
func IsFollowable(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Scheme == "http" || parsed.Scheme == "https"
}

// NormalizeURL strips the fragment for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	parsed.Fragment = ""
	parsed.RawFragment = ""
	return parsed.String()
}

// resolveHref resolves an anchor's href against the page it appears on.
// It returns "" for in-page anchors and non-navigational schemes.
func resolveHref(href, page string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return ""
	}
	lower := strings.ToLower(href)
	for _, scheme := range skippedSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	resolved := links.Resolve(href, page)
	if resolved == "" || !IsFollowable(resolved) {
		return ""
	}
	return NormalizeURL(resolved)
}
