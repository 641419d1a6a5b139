package oembed

import (
	"bytes"
	"encoding/json"

	"github.com/gaurav-prasanna/linkpipe/core"
)

// Value is a payload field as a provider sent it. Providers disagree on
// whether dimensions are numbers or strings, so both decode to text here.
type Value string

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(s)
	case bytes.Equal(data, []byte("true")), bytes.Equal(data, []byte("false")):
		*v = Value(data)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = Value(n.String())
	}
	return nil
}

// Int returns the field as a positive integer, or nil.
func (v Value) Int() *int {
	return core.PositiveInt(string(v))
}

// Payload is an oEmbed response in its JSON shape. The XML entry point fills
// the same structure.
type Payload struct {
	Type            Value `json:"type"`
	Version         Value `json:"version"`
	Title           Value `json:"title"`
	AuthorName      Value `json:"author_name"`
	AuthorURL       Value `json:"author_url"`
	ProviderName    Value `json:"provider_name"`
	ProviderURL     Value `json:"provider_url"`
	CacheAge        Value `json:"cache_age"`
	ThumbnailURL    Value `json:"thumbnail_url"`
	ThumbnailWidth  Value `json:"thumbnail_width"`
	ThumbnailHeight Value `json:"thumbnail_height"`
	URL             Value `json:"url"`
	HTML            Value `json:"html"`
	Width           Value `json:"width"`
	Height          Value `json:"height"`
}
