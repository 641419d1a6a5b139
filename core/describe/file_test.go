package describe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/linkpipe/core"
)

func descriptor(name, typ string, size int64, ext string) *core.FileDescriptor {
	d := &core.FileDescriptor{
		Name: core.String(name),
		Type: core.String(typ),
		Ext:  core.String(ext),
	}
	if size >= 0 {
		d.Size = &size
	}
	return d
}

func TestFile(t *testing.T) {
	const link = "https://teletype.in/file/img.jpg"

	tests := []struct {
		name        string
		link        string
		contentType string
		disposition string
		length      string
		want        *core.FileDescriptor
	}{
		{
			name:        "disposition filename wins",
			link:        link,
			contentType: "image/png",
			disposition: `form-data; name="image"; filename="cat.jpg"`,
			length:      "100500",
			want:        descriptor("cat.jpg", "image/png", 100500, "png"),
		},
		{
			name:        "disposition without filename falls back to path",
			link:        link,
			contentType: "image/png",
			disposition: `form-data; name="image"`,
			length:      "100500",
			want:        descriptor("img.jpg", "image/png", 100500, "png"),
		},
		{
			name:        "no disposition",
			link:        link,
			contentType: "image/png",
			length:      "100500",
			want:        descriptor("img.jpg", "image/png", 100500, "png"),
		},
		{
			name:        "no length",
			link:        link,
			contentType: "image/png",
			want:        descriptor("img.jpg", "image/png", -1, "png"),
		},
		{
			name: "type sniffed from path",
			link: link,
			want: descriptor("img.jpg", "image/jpeg", -1, "jpeg"),
		},
		{
			name: "nothing known",
			link: "https://teletype.in/file/img",
			want: descriptor("img", "", -1, ""),
		},
		{
			name:   "unparsable length",
			link:   link,
			length: "lots",
			want:   descriptor("img.jpg", "image/jpeg", -1, "jpeg"),
		},
		{
			name:        "malformed disposition ignored",
			link:        link,
			contentType: "image/png",
			disposition: `attachment; filename=`,
			want:        descriptor("img.jpg", "image/png", -1, "png"),
		},
		{
			name:        "rfc 2231 filename",
			link:        "https://teletype.in/download",
			contentType: "application/pdf; charset=binary",
			disposition: `attachment; filename*=UTF-8''na%C3%AFve.pdf`,
			length:      "12",
			want:        descriptor("naïve.pdf", "application/pdf; charset=binary", 12, "pdf"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := File(tt.link, tt.contentType, tt.disposition, tt.length)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileWithoutPath(t *testing.T) {
	got := File("https://teletype.in/", "text/plain", "", "")
	assert.Nil(t, got.Name)
	assert.Equal(t, "text/plain", *got.Type)
	assert.Equal(t, "txt", *got.Ext)
}
