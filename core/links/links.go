// Package links provides the URL primitives shared by every pipeline stage:
// relative resolution, query normalization and path-based type sniffing.
package links

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/linkpipe/core/mimetype"
)

// ErrNotAbsolute is returned by Normalize for links without a scheme.
var ErrNotAbsolute = errors.New("link is not absolute")

// placeholderScheme stands in for the origin of bases that have none.
const placeholderScheme = "resolve"

var placeholder = &url.URL{Scheme: placeholderScheme, Path: "/"}

// Sanitize upgrades a scheme-relative link ("//host/path") to http.
// Any other link is returned unchanged.
func Sanitize(link string) string {
	if strings.HasPrefix(link, "//") {
		return "http:" + link
	}
	return link
}

// Resolve resolves target against base. Absolute targets come back as they
// are. When base is itself relative ("foo/bar") the result is reduced to
// path, query and fragment ("/foo/asd/dsa"). An unparsable target yields "".
func Resolve(target, base string) string {
	ref, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return ""
	}
	from, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		from = &url.URL{}
	}

	resolved := placeholder.ResolveReference(from).ResolveReference(ref)
	if resolved.Scheme != placeholderScheme {
		return resolved.String()
	}

	out := resolved.EscapedPath()
	if resolved.RawQuery != "" {
		out += "?" + resolved.RawQuery
	}
	if resolved.Fragment != "" {
		out += "#" + resolved.EscapedFragment()
	}
	return out
}

// Normalize canonicalizes link: scheme-relative links are upgraded to http,
// query parameters are sorted by name and only the last value of a repeated
// name is kept. Links without a scheme are rejected with ErrNotAbsolute.
func Normalize(link string) (string, error) {
	u, err := url.Parse(Sanitize(strings.TrimSpace(link)))
	if err != nil {
		return "", fmt.Errorf("normalizing %q: %w", link, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("normalizing %q: %w", link, ErrNotAbsolute)
	}

	u.RawQuery = lastValues(u.RawQuery).Encode()
	u.ForceQuery = false

	if u.Path == "" && u.Opaque == "" && u.Host != "" && (u.Scheme == "http" || u.Scheme == "https") {
		u.Path = "/"
	}
	return u.String(), nil
}

// lastValues parses a raw query keeping the last value of each name.
// Unlike url.ParseQuery it never drops a pair: ';' is ordinary data and
// malformed escapes are kept as written.
func lastValues(rawQuery string) url.Values {
	values := make(url.Values)
	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}
		name, value, _ := strings.Cut(pair, "=")
		values.Set(unescapeQuery(name), unescapeQuery(value))
	}
	return values
}

func unescapeQuery(s string) string {
	if unescaped, err := url.QueryUnescape(s); err == nil {
		return unescaped
	}
	return strings.ReplaceAll(s, "+", " ")
}

// SniffFromPath guesses a media type from the extension of link's path.
// Query and fragment are ignored. It returns "" when nothing matches.
func SniffFromPath(link string) string {
	u, err := url.Parse(Sanitize(strings.TrimSpace(link)))
	if err != nil {
		return ""
	}
	return mimetype.ByExtension(path.Ext(u.Path))
}

// LastSegment returns the final segment of link's path, or "".
func LastSegment(link string) string {
	u, err := url.Parse(Sanitize(strings.TrimSpace(link)))
	if err != nil {
		return ""
	}
	p := u.Path
	return p[strings.LastIndexByte(p, '/')+1:]
}

var sizesPattern = regexp.MustCompile(`(?i)(\d+)x(\d+)`)

// ParseSizes reads the first "<width>x<height>" pair out of an icon sizes
// attribute such as "32x32" or "s180X180".
func ParseSizes(value string) (width, height int, ok bool) {
	m := sizesPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, 0, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

// UserAgentHeader builds the request headers carrying userAgent.
// It returns an empty header when userAgent is empty.
func UserAgentHeader(userAgent string) http.Header {
	header := make(http.Header)
	if userAgent != "" {
		header.Set("User-Agent", userAgent)
	}
	return header
}
