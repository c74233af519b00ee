package report

import (
	"context"

	"github.com/goliatone/go-formgate/pkg/validator"
)

// Renderer converts collected pages into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, pages []Page) ([]byte, error)
}

// Page is every form found in one HTML source.
type Page struct {
	Source string       `json:"source"`
	Forms  []FormResult `json:"forms"`
}

// FormResult is the outcome for one form on a page. Index is 1-based in
// document order.
type FormResult struct {
	Index     int              `json:"index"`
	Name      string           `json:"name,omitempty"`
	Submitted bool             `json:"submitted,omitempty"`
	Blocked   bool             `json:"blocked,omitempty"`
	Report    validator.Report `json:"report"`
}

// Summary counts forms across pages.
type Summary struct {
	Pages   int `json:"pages"`
	Forms   int `json:"forms"`
	Valid   int `json:"valid"`
	Invalid int `json:"invalid"`
}

// Summarize folds pages into a Summary.
func Summarize(pages []Page) Summary {
	summary := Summary{Pages: len(pages)}
	for _, page := range pages {
		for _, form := range page.Forms {
			summary.Forms++
			if form.Report.Valid {
				summary.Valid++
			} else {
				summary.Invalid++
			}
		}
	}
	return summary
}

// OK reports whether every form passed.
func (s Summary) OK() bool { return s.Invalid == 0 }
