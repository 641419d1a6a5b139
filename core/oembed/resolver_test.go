package oembed

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/linkpipe/core"
)

const (
	flickrPhoto = "http://farm4.static.flickr.com/3123/2341623661_7c99f48bbf_m.jpg"
	flickrThumb = "http://farm4.static.flickr.com/3123/2341623661_7c99f48bbf_thumb.jpg"
)

func flickrRecord() *core.OEmbedMetadata {
	return &core.OEmbedMetadata{
		Type:   "photo",
		Title:  core.String("ZB8T0193"),
		Author: &core.OEmbedAuthor{Name: "Bees", URL: core.String("http://www.flickr.com/photos/bees/")},
		Provider: &core.OEmbedProvider{
			ID:   "Flickr",
			Name: "Flickr",
			URL:  core.String("http://www.flickr.com/"),
		},
		Thumbnail: &core.MediaReference{
			URL:    flickrThumb,
			Type:   core.String("image/jpeg"),
			Width:  core.Int(100),
			Height: core.Int(100),
		},
		Width:  core.Int(240),
		Height: core.Int(160),
		Href:   core.String(flickrPhoto),
	}
}

func decode(t *testing.T, raw string) *Payload {
	t.Helper()
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestFromJSONPhoto(t *testing.T) {
	p := decode(t, `{
		"version": "1.0",
		"type": "photo",
		"width": 240,
		"height": 160,
		"title": "ZB8T0193",
		"url": "`+flickrPhoto+`",
		"thumbnail_url": "`+flickrThumb+`",
		"thumbnail_width": 100,
		"thumbnail_height": "100",
		"author_name": "Bees",
		"author_url": "http://www.flickr.com/photos/bees/",
		"provider_name": "Flickr",
		"provider_url": "http://www.flickr.com/"
	}`)

	assert.Equal(t, flickrRecord(), FromJSON(p))
}

func TestFromJSONVideoKeepsOnlyIframe(t *testing.T) {
	p := decode(t, `{
		"version": "1.0",
		"type": "video",
		"author_name": "Bees",
		"provider_name": "You Tube",
		"html": "<div class=\"video\"><iframe src=\"//youtube.com/embed/21opdjwed\"></iframe><script src=\"https://youtube.com/embed.js\"></script></script></div>"
	}`)

	want := &core.OEmbedMetadata{
		Type:     "video",
		Author:   &core.OEmbedAuthor{Name: "Bees"},
		Provider: &core.OEmbedProvider{ID: "YouTube", Name: "You Tube"},
		Href:     core.String("http://youtube.com/embed/21opdjwed"),
		HTML:     core.String(`<iframe src="//youtube.com/embed/21opdjwed"></iframe>`),
	}
	assert.Equal(t, want, FromJSON(p))
}

func TestFromJSONRichPassesHTMLThrough(t *testing.T) {
	p := decode(t, `{"version": "1.0", "type": "rich", "html": "<blockqoute>Twit</blockqoute>"}`)

	want := &core.OEmbedMetadata{
		Type: "rich",
		HTML: core.String("<blockqoute>Twit</blockqoute>"),
	}
	got := FromJSON(p)
	assert.Equal(t, want, got)

	data, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"type": "rich",
		"title": null,
		"author": null,
		"provider": null,
		"thumbnail": null,
		"width": null,
		"height": null,
		"href": null,
		"html": "<blockqoute>Twit</blockqoute>"
	}`, string(data))
}

func TestFromJSONRejectsUnknownType(t *testing.T) {
	assert.Nil(t, FromJSON(decode(t, `{"version": "1.0", "type": "foo", "html": "<b>x</b>"}`)))
	assert.Nil(t, FromJSON(decode(t, `{"version": "1.0"}`)))
	assert.Nil(t, FromJSON(nil))
}

func TestFromJSONStripsCDATA(t *testing.T) {
	p := &Payload{
		Type: "video",
		HTML: `<![CDATA[<iframe width="640" src="https://player.example.com/v/1?b=2&a=1"></iframe>]]>`,
	}

	got := FromJSON(p)
	require.NotNil(t, got)
	assert.Equal(t, `<iframe width="640" src="https://player.example.com/v/1?b=2&amp;a=1"></iframe>`, *got.HTML)
	assert.Equal(t, "https://player.example.com/v/1?a=1&b=2", *got.Href)
}

func TestFromJSONRelativeHrefDropped(t *testing.T) {
	got := FromJSON(&Payload{Type: "link", URL: "/relative/path"})
	require.NotNil(t, got)
	assert.Nil(t, got.Href)
}

func TestFromJSONIframeWithoutSrcFallsBackToURL(t *testing.T) {
	got := FromJSON(&Payload{
		Type: "video",
		HTML: `<iframe></iframe>`,
		URL:  "https://example.com/watch?v=1",
	})
	require.NotNil(t, got)
	assert.Equal(t, "<iframe></iframe>", *got.HTML)
	assert.Equal(t, "https://example.com/watch?v=1", *got.Href)
}

func TestFromJSONZeroDimensionsAreAbsent(t *testing.T) {
	got := FromJSON(decode(t, `{"type": "photo", "width": 0, "height": "abc", "thumbnail_url": "https://x.example/t"}`))
	require.NotNil(t, got)
	assert.Nil(t, got.Width)
	assert.Nil(t, got.Height)
	require.NotNil(t, got.Thumbnail)
	assert.Nil(t, got.Thumbnail.Type)
}

func TestFromXML(t *testing.T) {
	got := FromXML(`
      <?xml version="1.0" encoding="utf-8"?>
      <oembed>
        <version>1.0</version>
        <type>photo</type>
        <width>240</width>
        <height>160</height>
        <title>ZB8T0193</title>
        <url>` + flickrPhoto + `</url>
        <thumbnail_url>` + flickrThumb + `</thumbnail_url>
        <thumbnail_width>100</thumbnail_width>
        <thumbnail_height>100</thumbnail_height>
        <author_name>Bees</author_name>
        <author_url>http://www.flickr.com/photos/bees/</author_url>
        <provider_name>Flickr</provider_name>
        <provider_url>http://www.flickr.com/</provider_url>
      </oembed>
    `)

	assert.Equal(t, flickrRecord(), got)
}

func TestFromXMLRejectsUnknownType(t *testing.T) {
	got := FromXML(`
      <type>asd</type>
      <width>240</width>
      <height>160</height>
      <title>ZB8T0193</title>
      <url>` + flickrPhoto + `</url>
      <author_name>Bees</author_name>
      <provider_name>Flickr</provider_name>
    `)

	assert.Nil(t, got)
}

func TestFromXMLEscapedHTML(t *testing.T) {
	got := FromXML(`<?xml version="1.0" encoding="utf-8"?>
<oembed>
  <type>video</type>
  <html>&lt;iframe src="https://player.example.com/1"&gt;&lt;/iframe&gt;&lt;script&gt;&lt;/script&gt;</html>
</oembed>`)

	require.NotNil(t, got)
	assert.Equal(t, `<iframe src="https://player.example.com/1"></iframe>`, *got.HTML)
	assert.Equal(t, "https://player.example.com/1", *got.Href)
}

func TestFromXMLCDATAHTML(t *testing.T) {
	got := FromXML(`<oembed><type>rich</type><html><![CDATA[<p>Hi &nbsp; there</p>]]></html></oembed>`)

	require.NotNil(t, got)
	assert.Equal(t, "<p>Hi &nbsp; there</p>", *got.HTML)
	assert.Nil(t, got.Href)
}

func TestDecodeXMLKeepsPartialDocument(t *testing.T) {
	p := DecodeXML(strings.NewReader(`<oembed><type>link</type><title>Cut</title><url>https://a.example/`))
	assert.Equal(t, Value("link"), p.Type)
	assert.Equal(t, Value("Cut"), p.Title)
}

func TestMerge(t *testing.T) {
	fromJSON := &core.OEmbedMetadata{Type: "rich", HTML: core.String("<blockqoute>Twit</blockqoute>")}
	fromXML := flickrRecord()

	assert.Equal(t, fromJSON, Merge(fromJSON, fromXML))
	assert.Equal(t, fromXML, Merge(nil, fromXML))
	assert.Equal(t, fromJSON, Merge(fromJSON, nil))
	assert.Nil(t, Merge(nil, nil))
}

func TestProviderID(t *testing.T) {
	tests := map[string]string{
		"Flickr":        "Flickr",
		"You Tube":      "YouTube",
		"YouTube":       "YouTube",
		"BBC news":      "BbcNews",
		"vimeo":         "Vimeo",
		"the-verge.com": "TheVergeCom",
		"XMLHttp":       "XmlHttp",
		"9gag":          "9Gag",
		"4chan news":    "4ChanNews",
		"Web3Auth":      "Web3Auth",
		"  ":            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, ProviderID(in), "ProviderID(%q)", in)
	}
}

func TestValueUnmarshal(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"width": 12.5, "height": null, "title": true, "cache_age": "3600"}`), &p))
	assert.Equal(t, Value("12.5"), p.Width)
	assert.Equal(t, 12, *p.Width.Int())
	assert.Equal(t, Value(""), p.Height)
	assert.Equal(t, Value("true"), p.Title)
	assert.Equal(t, Value("3600"), p.CacheAge)

	assert.Error(t, json.Unmarshal([]byte(`{"width": [1]}`), &p))
}
