// Package core defines the shared records and pipeline interfaces for LinkPipe.
// Each stage of the pipeline is a clean, testable interface; every record is
// built fresh for a single enrichment and owned by its caller afterwards.
package core

import (
	"context"
	"net/http"
)

// FileDescriptor describes a non-HTML resource (or any resource served with a
// Content-Disposition header). Absent fields serialize as null.
type FileDescriptor struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
	Size *int64  `json:"size"`
	Ext  *string `json:"ext"`
}

// MediaReference points at an image, video or audio asset found in page markup.
type MediaReference struct {
	URL    string  `json:"url"`
	Type   *string `json:"type"`
	Width  *int    `json:"width,omitempty"`
	Height *int    `json:"height,omitempty"`
}

// Icon relations recognised by the webpage extractor.
const (
	RelIcon           = "icon"
	RelAppleTouchIcon = "apple-touch-icon"
	RelManifest       = "manifest"
)

// WebpageIcon is one <link rel=...> icon tag. Icons are never merged.
type WebpageIcon struct {
	Rel    string  `json:"rel"`
	URL    string  `json:"url"`
	Type   *string `json:"type"`
	Width  *int    `json:"width,omitempty"`
	Height *int    `json:"height,omitempty"`
}

// WebpageMetadata is the canonical summary of an HTML page.
type WebpageMetadata struct {
	Type        string           `json:"type"`
	URL         string           `json:"url"`
	Name        *string          `json:"name"`
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Icons       []WebpageIcon    `json:"icons"`
	Images      []MediaReference `json:"images"`
	Videos      []MediaReference `json:"videos"`
	Audios      []MediaReference `json:"audios"`
}

// OEmbed types accepted by the resolver. Anything else invalidates a payload.
const (
	OEmbedPhoto = "photo"
	OEmbedVideo = "video"
	OEmbedRich  = "rich"
	OEmbedLink  = "link"
)

// OEmbedAuthor is the author block of an oEmbed record.
type OEmbedAuthor struct {
	Name string  `json:"name"`
	URL  *string `json:"url"`
}

// OEmbedProvider is the provider block of an oEmbed record. ID is a slug
// derived from Name and carries no meaning outside this module.
type OEmbedProvider struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	URL  *string `json:"url"`
}

// OEmbedMetadata is the canonical oEmbed record built from a JSON or XML payload.
type OEmbedMetadata struct {
	Type      string          `json:"type"`
	Title     *string         `json:"title"`
	Author    *OEmbedAuthor   `json:"author"`
	Provider  *OEmbedProvider `json:"provider"`
	Thumbnail *MediaReference `json:"thumbnail"`
	Width     *int            `json:"width"`
	Height    *int            `json:"height"`
	Href      *string         `json:"href"`
	HTML      *string         `json:"html"`
}

// EnrichmentResult is the sparse outcome of enriching one link.
// Categories that do not apply are omitted.
type EnrichmentResult struct {
	Image      *FileDescriptor  `json:"image,omitempty"`
	Video      *FileDescriptor  `json:"video,omitempty"`
	Attachment *FileDescriptor  `json:"attachment,omitempty"`
	Webpage    *WebpageMetadata `json:"webpage,omitempty"`
	OEmbed     *OEmbedMetadata  `json:"oembed,omitempty"`
}

// ProbeResult holds the status and headers returned by a header probe.
type ProbeResult struct {
	URL        string
	StatusCode int
	Header     http.Header
}

// Fetcher is the transport the pipeline depends on. A non-nil error means the
// resource is absent (transport failure, non-2xx status, or undecodable body);
// callers branch on it and never surface it.
type Fetcher interface {
	// Probe retrieves only the status and headers of url.
	Probe(ctx context.Context, url string, header http.Header) (*ProbeResult, error)
	// FetchText retrieves the full body of url decoded as text.
	FetchText(ctx context.Context, url string, header http.Header) (string, error)
	// FetchJSON retrieves url and decodes its JSON body into v.
	FetchJSON(ctx context.Context, url string, header http.Header, v any) error
}

// Renderer converts an enrichment result into a final output format.
type Renderer interface {
	Render(link string, result *EnrichmentResult) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
