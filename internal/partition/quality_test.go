package partition

import (
	"math"
	"strings"
	"testing"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/document"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/hierarchy"
)

func TestAnalyzeQualityNoDuplication(t *testing.T) {
	h := hierarchy.Hierarchy{
		"02": leaf("02", "GRONDWERKEN", 1, 1),
		"03": leaf("03", "RUWBOUW", 2, 2),
	}
	pages := []document.Page{
		page(1, text("abcde", 10)),
		page(2, text("fghij", 10)),
	}

	records := NewPartitioner(discardLogger()).Partition(h, pages)
	report := AnalyzeQuality(records, h, pages)

	if report.TotalSourceChars != 10 {
		t.Fatalf("TotalSourceChars = %d, want 10", report.TotalSourceChars)
	}
	if report.TotalAssignedChars != 10 {
		t.Fatalf("TotalAssignedChars = %d, want 10", report.TotalAssignedChars)
	}
	if math.Abs(report.DuplicationRatio-1.0) > 1e-9 {
		t.Fatalf("DuplicationRatio = %f, want 1.0", report.DuplicationRatio)
	}
	if len(report.ParentInclusions) != 0 {
		t.Fatalf("ParentInclusions = %v, want none for flat hierarchy", report.ParentInclusions)
	}
}

func TestAnalyzeQualityDuplicationAndInclusion(t *testing.T) {
	h := hierarchy.Hierarchy{
		"02": {
			Code: "02", Title: "RUWBOUW", Start: 1, End: 1,
			Sections: map[string]*hierarchy.Node{
				"02.10": leaf("02.10", "Funderingen", 1, 1),
			},
		},
	}
	// One page, no headings: parent and child each get the whole page.
	pages := []document.Page{
		page(1, text("gedeelde inhoud", 10)),
	}

	records := NewPartitioner(discardLogger()).Partition(h, pages)
	report := AnalyzeQuality(records, h, pages)

	if math.Abs(report.DuplicationRatio-2.0) > 1e-9 {
		t.Fatalf("DuplicationRatio = %f, want 2.0 for full duplication", report.DuplicationRatio)
	}
	if len(report.ParentInclusions) != 1 {
		t.Fatalf("ParentInclusions = %v, want one entry for 02", report.ParentInclusions)
	}
	inc := report.ParentInclusions[0]
	if inc.Code != "02" || inc.SharedPages != 1 {
		t.Fatalf("inclusion = %+v, want code 02 with 1 shared page", inc)
	}
	if math.Abs(inc.SharedFraction-1.0) > 1e-9 {
		t.Fatalf("SharedFraction = %f, want 1.0", inc.SharedFraction)
	}
}

func TestAnalyzeQualityBoundaryRate(t *testing.T) {
	h := hierarchy.Hierarchy{
		"02": {
			Code: "02", Title: "RUWBOUW", Start: 1, End: 2,
			Sections: map[string]*hierarchy.Node{
				"02.10": leaf("02.10", "Funderingen", 1, 1),
				"02.20": leaf("02.20", "Metselwerk", 1, 2),
			},
		},
	}
	pages := []document.Page{
		page(1,
			heading("02.10. Funderingen", 10),
			text("eerste deel", 100),
			heading("02.20. Metselwerk", 300),
			text("tweede deel", 400),
		),
		page(2, text("vervolg metselwerk", 10)),
	}

	records := NewPartitioner(discardLogger()).Partition(h, pages)
	report := AnalyzeQuality(records, h, pages)

	// Page 1: three claimants, two with boundaries. Page 2: shared by 02
	// and 02.20, no boundaries. Node-pages total 5, boundary pages 2.
	if math.Abs(report.BoundaryDetectionRate-0.4) > 1e-9 {
		t.Fatalf("BoundaryDetectionRate = %f, want 0.4", report.BoundaryDetectionRate)
	}
	if report.BoundaryDetectionRate < 0 || report.BoundaryDetectionRate > 1 {
		t.Fatalf("rate out of range: %f", report.BoundaryDetectionRate)
	}
}

func TestReportSummary(t *testing.T) {
	report := &Report{
		TotalSourceChars:      100,
		TotalAssignedChars:    150,
		DuplicationRatio:      1.5,
		BoundaryDetectionRate: 0.4,
		ParentInclusions:      []ParentInclusion{{Code: "02", SharedPages: 2, SharedFraction: 0.5}},
	}
	out := report.Summary()
	for _, want := range []string{"1.50", "40%", "parent 02", "2 page(s)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
