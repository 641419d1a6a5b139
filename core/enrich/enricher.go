// Package enrich orchestrates a single link enrichment: probe the link,
// dispatch on its content type, and assemble the result from the file
// describer, the page extractor and the oEmbed resolver.
package enrich

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/describe"
	"github.com/gaurav-prasanna/linkpipe/core/extract"
	"github.com/gaurav-prasanna/linkpipe/core/links"
	"github.com/gaurav-prasanna/linkpipe/core/oembed"
)

const defaultContentType = "text/plain"

// Enricher turns links into enrichment results. It keeps no state between
// calls and is safe for concurrent use.
type Enricher struct {
	fetcher   core.Fetcher
	extractor *extract.PageExtractor
	log       logrus.FieldLogger
}

// New creates an Enricher that performs all network access through fetcher.
func New(fetcher core.Fetcher, logger logrus.FieldLogger) *Enricher {
	return &Enricher{
		fetcher:   fetcher,
		extractor: extract.New(),
		log:       logger.WithField("component", "enrich"),
	}
}

// Enrich probes link and describes what it points at. It returns nil when
// the probe fails; every later failure only leaves the matching part of the
// result empty.
func (e *Enricher) Enrich(ctx context.Context, link, userAgent string) *core.EnrichmentResult {
	header := links.UserAgentHeader(userAgent)
	log := e.log.WithField("link", link)

	head, err := e.fetcher.Probe(ctx, link, header)
	if err != nil {
		log.WithError(err).Debug("Probe failed")
		return nil
	}

	contentType := head.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultContentType
	}
	length := head.Header.Get("Content-Length")
	disposition := head.Header.Get("Content-Disposition")
	log = log.WithField("content_type", contentType)

	result := &core.EnrichmentResult{}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		result.Image = describe.File(link, contentType, disposition, length)
	case strings.HasPrefix(contentType, "video/"):
		result.Video = describe.File(link, contentType, disposition, length)
	case strings.HasPrefix(contentType, "text/html"):
		e.enrichPage(ctx, link, header, result, log)
	}

	if disposition != "" {
		result.Attachment = describe.File(link, contentType, disposition, length)
	}

	return result
}

func (e *Enricher) enrichPage(ctx context.Context, link string, header http.Header, result *core.EnrichmentResult, log logrus.FieldLogger) {
	body, err := e.fetcher.FetchText(ctx, link, header)
	if err != nil {
		log.WithError(err).Debug("Fetching page body failed")
		return
	}

	page, err := e.extractor.Extract(link, body)
	if err != nil {
		log.WithError(err).Debug("Extracting page metadata failed")
		return
	}
	result.Webpage = page.Webpage

	if page.OEmbed.Found() {
		result.OEmbed = e.resolveOEmbed(ctx, page.OEmbed, header, log)
	}
}

// resolveOEmbed fetches the discovered endpoints concurrently. The JSON
// record takes precedence over the XML one regardless of which finishes
// first.
func (e *Enricher) resolveOEmbed(ctx context.Context, d extract.Discovery, header http.Header, log logrus.FieldLogger) *core.OEmbedMetadata {
	var fromJSON, fromXML *core.OEmbedMetadata
	var g errgroup.Group

	if d.JSON != "" {
		g.Go(func() error {
			var payload oembed.Payload
			if err := e.fetcher.FetchJSON(ctx, d.JSON, header, &payload); err != nil {
				log.WithError(err).WithField("endpoint", d.JSON).Debug("Fetching JSON oEmbed failed")
				return nil
			}
			fromJSON = oembed.FromJSON(&payload)
			return nil
		})
	}

	if d.XML != "" {
		g.Go(func() error {
			body, err := e.fetcher.FetchText(ctx, d.XML, header)
			if err != nil {
				log.WithError(err).WithField("endpoint", d.XML).Debug("Fetching XML oEmbed failed")
				return nil
			}
			fromXML = oembed.FromXML(body)
			return nil
		})
	}

	g.Wait()
	return oembed.Merge(fromJSON, fromXML)
}

// EnrichAll enriches every link with at most limit enrichments in flight.
// Links whose probe failed map to nil. Duplicate links are enriched once.
func (e *Enricher) EnrichAll(ctx context.Context, links []string, userAgent string, limit int) map[string]*core.EnrichmentResult {
	results := make(map[string]*core.EnrichmentResult, len(links))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, link := range links {
		mu.Lock()
		_, seen := results[link]
		if !seen {
			results[link] = nil
		}
		mu.Unlock()
		if seen {
			continue
		}

		g.Go(func() error {
			result := e.Enrich(ctx, link, userAgent)
			mu.Lock()
			results[link] = result
			mu.Unlock()
			return nil
		})
	}

	g.Wait()
	return results
}
