// Package fetch implements the core.Fetcher interface over net/http.
// Every failure, including a non-2xx status, is reported as an error so the
// pipeline can treat it as an absent resource.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/linkpipe/core"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultUserAgent    = "LinkPipe/1.0 (https://github.com/gaurav-prasanna/linkpipe)"
	defaultMaxBodyBytes = 5 << 20
)

// ErrStatus is returned for responses outside the 2xx range.
var ErrStatus = errors.New("unexpected status")

// Options configures an HTTPFetcher. Zero values select the defaults.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	ProbeMethod  string
	MaxBodyBytes int64
}

// HTTPFetcher fetches resources via HTTP. It never retries.
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	probeMethod  string
	maxBodyBytes int64
	log          logrus.FieldLogger
}

// New creates an HTTPFetcher with the given options.
func New(opts Options, logger logrus.FieldLogger) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.ProbeMethod == "" {
		opts.ProbeMethod = http.MethodGet
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}

	return &HTTPFetcher{
		client:       &http.Client{Timeout: opts.Timeout},
		userAgent:    opts.UserAgent,
		probeMethod:  opts.ProbeMethod,
		maxBodyBytes: opts.MaxBodyBytes,
		log:          logger.WithField("component", "fetch"),
	}
}

// Probe retrieves the status and headers of url. With the default GET
// method the body is closed unread, which also works for servers that
// reject HEAD.
func (f *HTTPFetcher) Probe(ctx context.Context, url string, header http.Header) (*core.ProbeResult, error) {
	resp, err := f.do(ctx, f.probeMethod, url, header, "")
	if err != nil {
		return nil, err
	}
	resp.Body.Close()

	return &core.ProbeResult{
		URL:        url,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}

// FetchText retrieves the body of url decoded to UTF-8 according to the
// response's declared charset.
func (f *HTTPFetcher) FetchText(ctx context.Context, url string, header http.Header) (string, error) {
	resp, err := f.do(ctx, http.MethodGet, url, header, "text/html,application/xhtml+xml,text/xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := charset.NewReader(io.LimitReader(resp.Body, f.maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decoding body of %s: %w", url, err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(data), nil
}

// FetchJSON retrieves url and decodes its JSON body into v.
func (f *HTTPFetcher) FetchJSON(ctx context.Context, url string, header http.Header, v any) error {
	resp, err := f.do(ctx, http.MethodGet, url, header, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, f.maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("decoding JSON from %s: %w", url, err)
	}
	return nil
}

func (f *HTTPFetcher) do(ctx context.Context, method, url string, header http.Header, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	for name, values := range header {
		req.Header.Del(name)
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	log := f.log.WithFields(logrus.Fields{"method": method, "url": url})
	log.Debug("Sending request")

	resp, err := f.client.Do(req)
	if err != nil {
		log.WithError(err).Debug("Request failed")
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		log.WithField("status", resp.StatusCode).Debug("Non-success status")
		return nil, fmt.Errorf("%w %d for %s", ErrStatus, resp.StatusCode, url)
	}
	return resp, nil
}
