package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/linkpipe/core"
)

func pageResult() *core.EnrichmentResult {
	return &core.EnrichmentResult{
		Webpage: &core.WebpageMetadata{
			Type:        "article",
			URL:         "https://teletype.in/@cat/post",
			Name:        core.String("Teletype"),
			Title:       core.String("Cats in boxes"),
			Description: core.String("Why cats sit in boxes."),
			Icons:       []core.WebpageIcon{},
			Images:      []core.MediaReference{{URL: "https://teletype.in/cat.jpg", Type: core.String("image/jpeg")}},
			Videos:      []core.MediaReference{},
			Audios:      []core.MediaReference{},
		},
		OEmbed: &core.OEmbedMetadata{
			Type:     core.OEmbedRich,
			Author:   &core.OEmbedAuthor{Name: "Cat"},
			Provider: &core.OEmbedProvider{ID: "Teletype", Name: "Teletype"},
			HTML:     core.String("<blockquote>Meow</blockquote>"),
		},
	}
}

func fileResult() *core.EnrichmentResult {
	size := int64(100500)
	f := &core.FileDescriptor{
		Name: core.String("Document.pdf"),
		Type: core.String("application/pdf"),
		Size: &size,
		Ext:  core.String("pdf"),
	}
	return &core.EnrichmentResult{Attachment: f}
}

func TestJSONRenderer(t *testing.T) {
	r := NewJSONRenderer()
	assert.Equal(t, ".json", r.Extension())

	data, err := r.Render("https://teletype.in/file.pdf", fileResult())
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"link": "https://teletype.in/file.pdf",
		"result": {
			"attachment": {"name": "Document.pdf", "type": "application/pdf", "size": 100500, "ext": "pdf"}
		}
	}`, string(data))

	data, err = r.Render("https://teletype.in/404", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"link": "https://teletype.in/404", "result": null}`, string(data))
}

func TestJSONRendererPage(t *testing.T) {
	data, err := NewJSONRenderer().Render("https://teletype.in/@cat/post", pageResult())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	result := doc["result"].(map[string]any)
	assert.Contains(t, result, "webpage")
	assert.Contains(t, result, "oembed")
	assert.NotContains(t, result, "image")
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer()
	assert.Equal(t, ".md", r.Extension())

	data, err := r.Render("https://teletype.in/@cat/post", pageResult())
	require.NoError(t, err)
	md := string(data)

	assert.True(t, strings.HasPrefix(md, "# Cats in boxes\n"))
	assert.Contains(t, md, "_Teletype_ · <https://teletype.in/@cat/post>")
	assert.Contains(t, md, "![Cats in boxes](https://teletype.in/cat.jpg)")
	assert.Contains(t, md, "Why cats sit in boxes.")
	assert.Contains(t, md, "- **Author:** Cat")
	assert.Contains(t, md, "- **Embed:** rich")
	assert.Contains(t, md, "## Embed\n\n> Meow")
}

func TestMarkdownRendererFile(t *testing.T) {
	data, err := NewMarkdownRenderer().Render("https://teletype.in/file.pdf", fileResult())
	require.NoError(t, err)
	md := string(data)

	assert.True(t, strings.HasPrefix(md, "# Document.pdf\n"))
	assert.Contains(t, md, "- **Attachment:** application/pdf, ")
	assert.NotContains(t, md, "## Embed")
}

func TestMarkdownRendererUnreachable(t *testing.T) {
	data, err := NewMarkdownRenderer().Render("https://teletype.in/404", nil)
	require.NoError(t, err)
	md := string(data)

	assert.True(t, strings.HasPrefix(md, "# https://teletype.in/404\n"))
	assert.Contains(t, md, "- **Status:** unreachable")
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	assert.Equal(t, ".pdf", r.Extension())

	for name, result := range map[string]*core.EnrichmentResult{
		"page":        pageResult(),
		"file":        fileResult(),
		"unreachable": nil,
		"empty":       {},
	} {
		t.Run(name, func(t *testing.T) {
			data, err := r.Render("https://teletype.in/café", result)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}
}

func TestDescribeFile(t *testing.T) {
	assert.Equal(t, "unknown", describeFile(&core.FileDescriptor{}))
	assert.Equal(t, "image/png", describeFile(&core.FileDescriptor{Type: core.String("image/png")}))

	size := int64(0)
	assert.Equal(t, "image/png, 0 B", describeFile(&core.FileDescriptor{Type: core.String("image/png"), Size: &size}))
}
