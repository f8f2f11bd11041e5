package partition

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Method tags how a page's content reached a record.
type Method string

const (
	// MethodSingleSection: the page had exactly one claimant; no boundary
	// was needed.
	MethodSingleSection Method = "single_section"
	// MethodHeadingBoundary: a heading matched the node and opened a
	// precise span on a shared page.
	MethodHeadingBoundary Method = "heading_boundary"
	// MethodFallbackNoHeading: other nodes found boundaries on the page
	// but this one did not; it received the whole page.
	MethodFallbackNoHeading Method = "fallback_no_heading"
	// MethodFallbackNoBoundaries: no heading on the page matched any
	// claimant; every claimant received the whole page.
	MethodFallbackNoBoundaries Method = "fallback_no_boundaries"
)

// Record accumulates the content assigned to one hierarchy node. This is
// also the persisted chapters_with_text.json shape.
type Record struct {
	Title                  string  `json:"title"`
	StartPage              int     `json:"start_page"`
	EndPage                int     `json:"end_page"`
	Text                   string  `json:"text"`
	CharacterCount         int     `json:"character_count"`
	PagesProcessed         []int   `json:"pages_processed"`
	BoundaryDetectionRatio float64 `json:"boundary_detection_ratio"`
	BoundaryPages          int     `json:"boundary_pages"`
	TotalPages             int     `json:"total_pages"`

	parts     []string
	pageChars map[int]int
}

func (r *Record) addPage(page int, text string, boundary bool) {
	r.parts = append(r.parts, text)
	if r.pageChars == nil {
		r.pageChars = make(map[int]int)
	}
	r.pageChars[page] += len(text)
	r.PagesProcessed = append(r.PagesProcessed, page)
	r.TotalPages++
	if boundary {
		r.BoundaryPages++
	}
}

func (r *Record) finalize() {
	r.Text = strings.TrimSpace(strings.Join(r.parts, "\n\n"))
	r.CharacterCount = len(r.Text)
	if r.TotalPages > 0 {
		r.BoundaryDetectionRatio = float64(r.BoundaryPages) / float64(r.TotalPages)
	}
	r.parts = nil
}

// SaveRecords writes partition records as indented JSON keyed by node code.
func SaveRecords(path string, records map[string]*Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
