package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/linkpipe/core"
)

// document is the top-level JSON output. Result is null when the link
// could not be reached.
type document struct {
	Link   string                 `json:"link"`
	Result *core.EnrichmentResult `json:"result"`
}

// JSONRenderer writes the enrichment result as indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals result together with the link it describes.
func (r *JSONRenderer) Render(link string, result *core.EnrichmentResult) ([]byte, error) {
	data, err := json.MarshalIndent(document{Link: link, Result: result}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
