// Package describe builds file descriptors for non-HTML resources from the
// headers of a probe response.
package describe

import (
	"mime"
	"strings"

	"github.com/gaurav-prasanna/linkpipe/core"
	"github.com/gaurav-prasanna/linkpipe/core/links"
	"github.com/gaurav-prasanna/linkpipe/core/mimetype"
)

// File describes the resource behind link.
//
// The name comes from the disposition's filename parameter and falls back
// to the last path segment of link. The type is contentType when set,
// otherwise it is sniffed from link's extension. disposition and length are
// the raw Content-Disposition and Content-Length header values; either may
// be empty.
func File(link, contentType, disposition, length string) *core.FileDescriptor {
	name := dispositionFilename(disposition)
	if name == "" {
		name = links.LastSegment(link)
	}

	var size *int64
	if n, ok := core.ParseLeadingInt(length); ok {
		size = &n
	}

	mediaType := strings.TrimSpace(contentType)
	if mediaType == "" {
		mediaType = links.SniffFromPath(link)
	}

	return &core.FileDescriptor{
		Name: core.String(name),
		Type: core.String(mediaType),
		Size: size,
		Ext:  core.String(mimetype.Extension(mediaType)),
	}
}

// dispositionFilename extracts the filename parameter of a raw
// Content-Disposition value. RFC 2231 "filename*" values are decoded by
// mime.ParseMediaType.
func dispositionFilename(disposition string) string {
	if strings.TrimSpace(disposition) == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return params["filename"]
}
