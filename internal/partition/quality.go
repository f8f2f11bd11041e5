package partition

import (
	"fmt"
	"sort"
	"strings"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/document"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/hierarchy"
)

// ParentInclusion quantifies how much of a parent node's content sits on
// pages it shares with its own children. Full-page fallbacks make this
// deliberate duplication; the report surfaces it rather than hiding it.
type ParentInclusion struct {
	Code           string  `json:"code"`
	SharedPages    int     `json:"shared_pages"`
	SharedFraction float64 `json:"shared_fraction"`
}

// Report is the partition quality summary.
type Report struct {
	TotalSourceChars      int               `json:"total_source_chars"`
	TotalAssignedChars    int               `json:"total_assigned_chars"`
	DuplicationRatio      float64           `json:"duplication_ratio"`
	BoundaryDetectionRate float64           `json:"boundary_detection_rate"`
	ParentInclusions      []ParentInclusion `json:"parent_inclusions,omitempty"`
}

// AnalyzeQuality measures how much content was duplicated across records
// and how often heading boundaries carried the split. A duplication ratio
// of 1.0 means every character landed in exactly one record.
func AnalyzeQuality(records map[string]*Record, h hierarchy.Hierarchy, pages []document.Page) *Report {
	report := &Report{}

	pageText := make(map[int]string, len(pages))
	for _, p := range pages {
		pageText[p.Number] = p.Text
	}

	processed := make(map[int]bool)
	boundary, total := 0, 0
	for _, rec := range records {
		report.TotalAssignedChars += rec.CharacterCount
		boundary += rec.BoundaryPages
		total += rec.TotalPages
		for _, page := range rec.PagesProcessed {
			processed[page] = true
		}
	}
	for page := range processed {
		report.TotalSourceChars += len(pageText[page])
	}

	if report.TotalSourceChars > 0 {
		report.DuplicationRatio = float64(report.TotalAssignedChars) / float64(report.TotalSourceChars)
	}
	if total > 0 {
		report.BoundaryDetectionRate = float64(boundary) / float64(total)
	}

	h.Walk(func(n *hierarchy.Node) {
		if len(n.Sections) == 0 {
			return
		}
		parent, ok := records[n.Code]
		if !ok {
			return
		}
		childPages := make(map[int]bool)
		for code := range n.Sections {
			child, ok := records[code]
			if !ok {
				continue
			}
			for _, page := range child.PagesProcessed {
				childPages[page] = true
			}
		}
		shared, sharedChars := 0, 0
		for _, page := range parent.PagesProcessed {
			if childPages[page] {
				shared++
				sharedChars += parent.pageChars[page]
			}
		}
		if shared == 0 {
			return
		}
		inclusion := ParentInclusion{Code: n.Code, SharedPages: shared}
		if parent.CharacterCount > 0 {
			inclusion.SharedFraction = float64(sharedChars) / float64(parent.CharacterCount)
		}
		report.ParentInclusions = append(report.ParentInclusions, inclusion)
	})
	sort.Slice(report.ParentInclusions, func(i, j int) bool {
		return report.ParentInclusions[i].Code < report.ParentInclusions[j].Code
	})

	return report
}

// Summary renders the report as a short human-readable block for console
// output and the quality section of the run report.
func (r *Report) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "source characters:   %d\n", r.TotalSourceChars)
	fmt.Fprintf(&b, "assigned characters: %d\n", r.TotalAssignedChars)
	fmt.Fprintf(&b, "duplication ratio:   %.2f\n", r.DuplicationRatio)
	fmt.Fprintf(&b, "boundary detection:  %.0f%%\n", r.BoundaryDetectionRate*100)
	for _, inc := range r.ParentInclusions {
		fmt.Fprintf(&b, "parent %s shares %d page(s) with its sections (%.0f%% of its text)\n",
			inc.Code, inc.SharedPages, inc.SharedFraction*100)
	}
	return b.String()
}
