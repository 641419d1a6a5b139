// Package output handles file naming and writing for LinkPipe outputs.
// Single enrichments are written flat, named after the link
// (e.g. teletype_in_img_jpeg.json); batch runs mirror host and path
// (e.g. teletype.in/img.jpeg.json).
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores the output for one link under a flat filename derived from
// the link.
func (w *Writer) Write(link string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, filenameFromURL(link)+ext)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteTree stores the output for one link of a batch, mirroring the
// link's host and path. Example: https://site.com/docs/intro becomes
// site.com/docs/intro.json
func (w *Writer) WriteTree(link string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	urlPath := strings.Trim(parsed.Path, "/")
	if urlPath == "" {
		urlPath = "index"
	}
	segments := []string{sanitizeHost(parsed.Host)}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == "" || seg == "." || seg == ".." {
			continue
		}
		segments = append(segments, seg)
	}
	if parsed.RawQuery != "" {
		segments[len(segments)-1] += "_" + sanitize(parsed.RawQuery)
	}

	fullPath := filepath.Join(append([]string{w.OutputDir}, segments...)...) + ext

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", fullPath, err)
	}
	return fullPath, nil
}

// filenameFromURL converts a URL into a flat filename.
// Example: https://example.com/docs/intro?id=2 → example_com_docs_intro_id_2
func filenameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return sanitize(rawURL)
	}

	parts := []string{sanitize(parsed.Host)}
	path := strings.Trim(parsed.Path, "/")
	if path != "" {
		for _, seg := range strings.Split(path, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	if parsed.RawQuery != "" {
		parts = append(parts, sanitize(parsed.RawQuery))
	}
	return strings.Join(parts, "_")
}

// sanitizeHost keeps a host readable as a directory name.
func sanitizeHost(host string) string {
	if host == "" {
		return "_"
	}
	return strings.NewReplacer(":", "_", "/", "_", `\`, "_").Replace(host)
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
