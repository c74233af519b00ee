package report

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSON renders pages and their summary as indented JSON.
type JSON struct{}

// NewJSON returns the json renderer.
func NewJSON() *JSON { return &JSON{} }

func (*JSON) Name() string        { return "json" }
func (*JSON) ContentType() string { return "application/json" }

func (*JSON) Render(_ context.Context, pages []Page) ([]byte, error) {
	if pages == nil {
		pages = []Page{}
	}
	payload := struct {
		Summary Summary `json:"summary"`
		Pages   []Page  `json:"pages"`
	}{
		Summary: Summarize(pages),
		Pages:   pages,
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("report: encode json: %w", err)
	}
	return append(out, '\n'), nil
}
