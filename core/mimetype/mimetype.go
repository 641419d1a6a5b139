// Package mimetype maps file extensions to media types and back.
//
// The table is static so that results do not depend on the host's
// mime.types files. When an extension is claimed by several types the
// first entry in the table owns it; the first extension listed for a type
// is its canonical one.
package mimetype

import (
	"strings"
)

type entry struct {
	mediaType  string
	extensions []string
}

var table = []entry{
	// Images.
	{"image/jpeg", []string{"jpeg", "jpg", "jpe"}},
	{"image/png", []string{"png"}},
	{"image/gif", []string{"gif"}},
	{"image/webp", []string{"webp"}},
	{"image/avif", []string{"avif"}},
	{"image/apng", []string{"apng"}},
	{"image/svg+xml", []string{"svg", "svgz"}},
	{"image/vnd.microsoft.icon", []string{"ico"}},
	{"image/x-icon", []string{"ico"}},
	{"image/bmp", []string{"bmp"}},
	{"image/tiff", []string{"tif", "tiff"}},
	{"image/heic", []string{"heic"}},
	{"image/heif", []string{"heif"}},
	{"image/jxl", []string{"jxl"}},

	// Video.
	{"video/mp4", []string{"mp4", "mp4v", "mpg4"}},
	{"video/webm", []string{"webm"}},
	{"video/ogg", []string{"ogv"}},
	{"video/quicktime", []string{"qt", "mov"}},
	{"video/x-msvideo", []string{"avi"}},
	{"video/x-matroska", []string{"mkv", "mk3d", "mks"}},
	{"video/mpeg", []string{"mpeg", "mpg", "mpe", "m1v", "m2v"}},
	{"video/3gpp", []string{"3gp", "3gpp"}},
	{"video/x-flv", []string{"flv"}},
	{"video/x-m4v", []string{"m4v"}},
	{"video/mp2t", []string{"ts", "m2t", "m2ts", "mts"}},

	// Audio.
	{"audio/mpeg", []string{"mpga", "mp2", "mp2a", "mp3", "m2a", "m3a"}},
	{"audio/ogg", []string{"oga", "ogg", "spx", "opus"}},
	{"audio/wav", []string{"wav"}},
	{"audio/wave", []string{"wav"}},
	{"audio/x-wav", []string{"wav"}},
	{"audio/webm", []string{"weba"}},
	{"audio/aac", []string{"aac"}},
	{"audio/flac", []string{"flac"}},
	{"audio/mp4", []string{"m4a", "mp4a"}},
	{"audio/midi", []string{"mid", "midi", "kar", "rmi"}},

	// Text and markup.
	{"text/html", []string{"html", "htm", "shtml"}},
	{"application/xhtml+xml", []string{"xhtml", "xht"}},
	{"text/plain", []string{"txt", "text", "conf", "def", "list", "log", "in", "ini"}},
	{"text/css", []string{"css"}},
	{"text/csv", []string{"csv"}},
	{"text/markdown", []string{"md", "markdown"}},
	{"text/calendar", []string{"ics", "ifb"}},
	{"application/xml", []string{"xml", "xsl", "xsd", "rng"}},
	{"text/xml", []string{"xml"}},
	{"application/javascript", []string{"js", "mjs"}},
	{"text/javascript", []string{"js", "mjs"}},
	{"application/json", []string{"json", "map"}},
	{"application/manifest+json", []string{"webmanifest"}},
	{"application/rss+xml", []string{"rss"}},
	{"application/atom+xml", []string{"atom"}},

	// Documents and archives.
	{"application/pdf", []string{"pdf"}},
	{"application/rtf", []string{"rtf"}},
	{"application/epub+zip", []string{"epub"}},
	{"application/msword", []string{"doc", "dot"}},
	{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", []string{"docx"}},
	{"application/vnd.ms-excel", []string{"xls", "xlm", "xla", "xlc", "xlt", "xlw"}},
	{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", []string{"xlsx"}},
	{"application/vnd.ms-powerpoint", []string{"ppt", "pps", "pot"}},
	{"application/vnd.openxmlformats-officedocument.presentationml.presentation", []string{"pptx"}},
	{"application/vnd.oasis.opendocument.text", []string{"odt"}},
	{"application/zip", []string{"zip"}},
	{"application/gzip", []string{"gz"}},
	{"application/x-tar", []string{"tar"}},
	{"application/x-7z-compressed", []string{"7z"}},
	{"application/vnd.rar", []string{"rar"}},
	{"application/x-bzip2", []string{"bz2", "boz"}},
	{"application/wasm", []string{"wasm"}},
	{"application/octet-stream", []string{"bin", "dms", "lrf", "mar", "so", "dist", "distz", "pkg", "bpk", "dump", "elc", "deploy", "exe", "dll", "deb", "dmg", "iso", "img", "msi", "msp", "msm", "buffer"}},
	{"application/vnd.android.package-archive", []string{"apk"}},

	// Fonts.
	{"font/woff", []string{"woff"}},
	{"font/woff2", []string{"woff2"}},
	{"font/ttf", []string{"ttf"}},
	{"font/otf", []string{"otf"}},
}

var (
	byExtension = make(map[string]string)
	byType      = make(map[string]string)
)

func init() {
	for _, e := range table {
		if _, ok := byType[e.mediaType]; !ok {
			byType[e.mediaType] = e.extensions[0]
		}
		for _, ext := range e.extensions {
			if _, ok := byExtension[ext]; !ok {
				byExtension[ext] = e.mediaType
			}
		}
	}
}

// ByExtension returns the media type registered for ext, or "" if unknown.
// The leading dot is optional and matching is case-insensitive.
func ByExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	return byExtension[ext]
}

// Extension returns the canonical extension (without dot) for mediaType, or
// "" if the type is unknown. Parameters such as "; charset=utf-8" are ignored.
func Extension(mediaType string) string {
	return byType[Essence(mediaType)]
}

// Essence strips parameters and whitespace from a media type and lowercases it.
func Essence(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
