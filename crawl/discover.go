// Package crawl discovers the links a batch enrichment runs over: the
// outbound links of a page (optionally following same-site pages) or the
// entries of the site's sitemap.xml.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/links"
)

const defaultMaxLinks = 100

// Options controls link discovery. Zero values select the defaults.
type Options struct {
	// Sitemap reads /sitemap.xml on the page's host instead of the page.
	Sitemap bool
	// SameDomain drops links to other hosts.
	SameDomain bool
	// SkipAssets drops links whose extension names a non-page file.
	SkipAssets bool
	// Depth is how many levels of same-site pages to follow beyond the
	// start page.
	Depth int
	// MaxLinks caps the number of links returned.
	MaxLinks int
}

// sitemapLoc holds a <loc> entry of a sitemap or sitemap index.
type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// sitemapDoc matches both <urlset> and <sitemapindex> roots.
type sitemapDoc struct {
	URLs     []sitemapLoc `xml:"url"`
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

// Discoverer finds links using a core.Fetcher.
type Discoverer struct {
	fetcher core.Fetcher
	log     logrus.FieldLogger
}

// New creates a Discoverer.
func New(fetcher core.Fetcher, logger logrus.FieldLogger) *Discoverer {
	return &Discoverer{
		fetcher: fetcher,
		log:     logger.WithField("component", "crawl"),
	}
}

// Discover returns the links found from pageURL, in discovery order and
// without duplicates. The start page itself is never included.
func (d *Discoverer) Discover(ctx context.Context, pageURL, userAgent string, opts Options) ([]string, error) {
	parsed, err := url.Parse(links.Sanitize(pageURL))
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}
	if !IsFollowable(parsed.String()) {
		return nil, fmt.Errorf("page URL %q: %w", pageURL, links.ErrNotAbsolute)
	}
	if opts.MaxLinks <= 0 {
		opts.MaxLinks = defaultMaxLinks
	}

	c := &collector{opts: opts, host: parsed.Host, start: NormalizeURL(parsed.String())}
	header := links.UserAgentHeader(userAgent)

	if opts.Sitemap {
		sitemapURL := fmt.Sprintf("%s://%s/sitemap.xml", parsed.Scheme, parsed.Host)
		if err := d.discoverFromSitemap(ctx, sitemapURL, header, c, 1); err != nil {
			return nil, err
		}
		return c.found, nil
	}

	if err := d.discoverFromPages(ctx, c, header); err != nil {
		return nil, err
	}
	return c.found, nil
}

// collector accumulates discovered links under the configured filters.
type collector struct {
	opts  Options
	host  string
	start string
	seen  map[string]bool
	found []string
}

func (c *collector) full() bool {
	return len(c.found) >= c.opts.MaxLinks
}

func (c *collector) add(link string) {
	if c.full() || link == c.start {
		return
	}
	if c.opts.SameDomain && !IsSameDomain(link, c.host) {
		return
	}
	if c.opts.SkipAssets && IsAsset(link) {
		return
	}
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	if c.seen[link] {
		return
	}
	c.seen[link] = true
	c.found = append(c.found, link)
}

// discoverFromSitemap reads sitemapURL, following one level of sitemap
// index entries.
func (d *Discoverer) discoverFromSitemap(ctx context.Context, sitemapURL string, header http.Header, c *collector, nested int) error {
	body, err := d.fetcher.FetchText(ctx, sitemapURL, header)
	if err != nil {
		return fmt.Errorf("fetching sitemap: %w", err)
	}

	var doc sitemapDoc
	if err := xml.Unmarshal([]byte(body), &doc); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", sitemapURL, err)
	}

	for _, u := range doc.URLs {
		if loc := strings.TrimSpace(u.Loc); IsFollowable(loc) {
			c.add(NormalizeURL(loc))
		}
	}

	if nested <= 0 {
		return nil
	}
	for _, s := range doc.Sitemaps {
		if c.full() {
			break
		}
		loc := strings.TrimSpace(s.Loc)
		if err := d.discoverFromSitemap(ctx, loc, header, c, nested-1); err != nil {
			d.log.WithError(err).WithField("sitemap", loc).Warn("Skipping nested sitemap")
		}
	}
	return nil
}

// discoverFromPages collects anchor links breadth-first. Only same-host
// pages are followed, up to opts.Depth levels.
func (d *Discoverer) discoverFromPages(ctx context.Context, c *collector, header http.Header) error {
	queue := NewQueue()
	queue.Add(c.start, 0)

	for queue.HasNext() && !c.full() {
		current := queue.Next()

		body, err := d.fetcher.FetchText(ctx, current.URL, header)
		if err != nil {
			if current.Depth == 0 {
				return fmt.Errorf("fetching page: %w", err)
			}
			d.log.WithError(err).WithField("url", current.URL).Debug("Skipping page")
			continue
		}

		hrefs, err := extractLinks(body, current.URL)
		if err != nil {
			if current.Depth == 0 {
				return err
			}
			continue
		}

		for _, link := range hrefs {
			c.add(link)
			if current.Depth < c.opts.Depth && IsSameDomain(link, c.host) && !IsAsset(link) {
				queue.Add(link, current.Depth+1)
			}
		}
	}

	d.log.WithFields(logrus.Fields{"pages": queue.Seen(), "links": len(c.found)}).Debug("Discovery finished")
	return nil
}

// extractLinks extracts all href values from <a> tags, resolved against
// pageURL, or against the document's <base href> when present.
func extractLinks(html string, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	base := pageURL
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if resolved := links.Resolve(href, pageURL); IsFollowable(resolved) {
			base = resolved
		}
	}

	var found []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if link := resolveHref(s.AttrOr("href", ""), base); link != "" {
			found = append(found, link)
		}
	})
	return found, nil
}
