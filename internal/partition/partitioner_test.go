package partition

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/document"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/hierarchy"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func heading(value string, y float64) document.Item {
	return document.Item{Type: document.Heading, Value: value, BBox: &document.BBox{Y: y}}
}

func text(value string, y float64) document.Item {
	return document.Item{Type: document.Text, Value: value, BBox: &document.BBox{Y: y}}
}

func page(number int, items ...document.Item) document.Page {
	return document.Page{
		Number: number,
		Text:   document.JoinItems(items),
		Items:  items,
	}
}

func leaf(code, title string, start, end int) *hierarchy.Node {
	return &hierarchy.Node{Code: code, Title: title, Start: start, End: end}
}

func TestPartitionSingleClaimant(t *testing.T) {
	h := hierarchy.Hierarchy{
		"02": leaf("02", "GRONDWERKEN", 1, 2),
	}
	pages := []document.Page{
		page(1, heading("02. GRONDWERKEN", 10), text("uitgraving bouwput", 100)),
		page(2, text("aanvulling en verdichting", 50)),
	}

	records := NewPartitioner(discardLogger()).Partition(h, pages)

	rec := records["02"]
	if rec == nil {
		t.Fatal("no record for 02")
	}
	if rec.TotalPages != 2 {
		t.Fatalf("TotalPages = %d, want 2", rec.TotalPages)
	}
	if rec.BoundaryPages != 0 {
		t.Fatalf("BoundaryPages = %d, want 0 for sole claimant", rec.BoundaryPages)
	}
	if !strings.Contains(rec.Text, "uitgraving bouwput") || !strings.Contains(rec.Text, "aanvulling en verdichting") {
		t.Fatalf("record text missing page content: %q", rec.Text)
	}
	if rec.CharacterCount != len(rec.Text) {
		t.Fatalf("CharacterCount = %d, want %d", rec.CharacterCount, len(rec.Text))
	}
}

func TestPartitionHeadingBoundarySplit(t *testing.T) {
	h := hierarchy.Hierarchy{
		"02": {
			Code: "02", Title: "RUWBOUW", Start: 5, End: 5,
			Sections: map[string]*hierarchy.Node{
				"02.10": leaf("02.10", "Funderingen", 5, 5),
				"02.20": leaf("02.20", "Metselwerk", 5, 5),
			},
		},
	}
	pages := []document.Page{
		page(5,
			heading("02.10. Funderingen", 10),
			text("funderingszolen op volle grond", 120),
			heading("02.20. Metselwerk", 400),
			text("dragend metselwerk in snelbouwsteen", 500),
		),
	}

	records := NewPartitioner(discardLogger()).Partition(h, pages)

	first := records["02.10"]
	if !strings.Contains(first.Text, "funderingszolen") {
		t.Fatalf("02.10 text = %q, want its own span", first.Text)
	}
	if strings.Contains(first.Text, "metselwerk in snelbouwsteen") {
		t.Fatalf("02.10 text leaked past the next boundary: %q", first.Text)
	}
	if first.BoundaryPages != 1 {
		t.Fatalf("02.10 BoundaryPages = %d, want 1", first.BoundaryPages)
	}

	second := records["02.20"]
	if !strings.Contains(second.Text, "snelbouwsteen") {
		t.Fatalf("02.20 text = %q, want content after its heading", second.Text)
	}
	if strings.Contains(second.Text, "funderingszolen") {
		t.Fatalf("02.20 text includes content before its heading: %q", second.Text)
	}
	if second.BoundaryPages != 1 {
		t.Fatalf("02.20 BoundaryPages = %d, want 1", second.BoundaryPages)
	}

	// The parent claims the page too but has no heading of its own there,
	// so it falls back to the whole page.
	parent := records["02"]
	if !strings.Contains(parent.Text, "funderingszolen") || !strings.Contains(parent.Text, "snelbouwsteen") {
		t.Fatalf("parent fallback text = %q, want whole page", parent.Text)
	}
	if parent.BoundaryPages != 0 {
		t.Fatalf("parent BoundaryPages = %d, want 0", parent.BoundaryPages)
	}
}

func TestPartitionNoBoundariesDuplicatesPage(t *testing.T) {
	h := hierarchy.Hierarchy{
		"02": {
			Code: "02", Title: "RUWBOUW", Start: 7, End: 7,
			Sections: map[string]*hierarchy.Node{
				"02.10": leaf("02.10", "Funderingen", 7, 7),
				"02.20": leaf("02.20", "Metselwerk", 7, 7),
			},
		},
	}
	pages := []document.Page{
		page(7, text("doorlopende tekst zonder titels", 100)),
	}

	records := NewPartitioner(discardLogger()).Partition(h, pages)

	for _, code := range []string{"02", "02.10", "02.20"} {
		rec := records[code]
		if rec.Text != "doorlopende tekst zonder titels" {
			t.Fatalf("%s text = %q, want full page", code, rec.Text)
		}
		if rec.BoundaryPages != 0 {
			t.Fatalf("%s BoundaryPages = %d, want 0", code, rec.BoundaryPages)
		}
		if rec.TotalPages != 1 {
			t.Fatalf("%s TotalPages = %d, want 1", code, rec.TotalPages)
		}
	}
}

func TestPartitionSkipsUnclaimedPages(t *testing.T) {
	h := hierarchy.Hierarchy{
		"02": leaf("02", "GRONDWERKEN", 3, 4),
	}
	pages := []document.Page{
		page(1, text("inhoudstafel", 10)),
		page(3, text("binnen bereik", 10)),
		page(9, text("ver buiten bereik", 10)),
	}

	records := NewPartitioner(discardLogger()).Partition(h, pages)

	rec := records["02"]
	if strings.Contains(rec.Text, "inhoudstafel") || strings.Contains(rec.Text, "buiten bereik") {
		t.Fatalf("record absorbed unclaimed pages: %q", rec.Text)
	}
	if rec.TotalPages != 1 {
		t.Fatalf("TotalPages = %d, want 1 (page 4 has no content)", rec.TotalPages)
	}
}

func TestPartitionBoundaryPagesNeverExceedTotal(t *testing.T) {
	h := hierarchy.Hierarchy{
		"02": {
			Code: "02", Title: "RUWBOUW", Start: 1, End: 4,
			Sections: map[string]*hierarchy.Node{
				"02.10": leaf("02.10", "Funderingen", 1, 2),
				"02.20": leaf("02.20", "Metselwerk", 2, 4),
			},
		},
	}
	pages := []document.Page{
		page(1, heading("02.10. Funderingen", 10), text("a", 50)),
		page(2, heading("02.20. Metselwerk", 300), text("b", 400)),
		page(3, text("c", 10)),
		page(4, text("d", 10)),
	}

	records := NewPartitioner(discardLogger()).Partition(h, pages)

	for code, rec := range records {
		if rec.BoundaryPages > rec.TotalPages {
			t.Errorf("%s: BoundaryPages %d > TotalPages %d", code, rec.BoundaryPages, rec.TotalPages)
		}
		if rec.TotalPages > 0 && (rec.BoundaryDetectionRatio < 0 || rec.BoundaryDetectionRatio > 1) {
			t.Errorf("%s: ratio %f out of range", code, rec.BoundaryDetectionRatio)
		}
		if len(rec.PagesProcessed) != rec.TotalPages {
			t.Errorf("%s: %d pages processed but TotalPages %d", code, len(rec.PagesProcessed), rec.TotalPages)
		}
	}
}

func TestMatchHeading(t *testing.T) {
	flat := map[string]*hierarchy.Node{
		"02":    leaf("02", "RUWBOUW", 1, 10),
		"02.10": leaf("02.10", "Funderingen op staal", 1, 5),
		"02.20": leaf("02.20", "Dragend metselwerk", 5, 10),
	}
	codes := []string{"02.10", "02.20", "02"}
	p := NewPartitioner(discardLogger())

	tests := []struct {
		name    string
		heading string
		want    string
	}{
		{"code prefix with dot", "02.10. Funderingen op staal", "02.10"},
		{"code prefix with space", "02.20 Dragend metselwerk", "02.20"},
		{"numeric prefix lookup", "02.10.Funderingen", "02.10"},
		{"fuzzy title overlap", "Funderingen op staal volgens studie", "02.10"},
		{"unrelated heading", "Algemene administratieve bepalingen", ""},
		{"short heading no fuzzy", "Funde", ""},
		{"empty heading", "   ", ""},
		{"more specific code wins", "02.10. Funderingen", "02.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.matchHeading(tt.heading, codes, flat); got != tt.want {
				t.Fatalf("matchHeading(%q) = %q, want %q", tt.heading, got, tt.want)
			}
		})
	}
}

func TestTitlesOverlap(t *testing.T) {
	tests := []struct {
		name           string
		heading, title string
		want           bool
	}{
		{"containment", "hoofdstuk funderingen op staal", "funderingen op staal", true},
		{"token overlap above threshold", "funderingen op staal en palen", "funderingen op staal", true},
		{"below threshold", "dakbedekking in leien", "funderingen op staal", false},
		{"short strings excluded", "staal", "staal", false},
		{"punctuation ignored", "Funderingen, op staal!", "funderingen op staal", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := titlesOverlap(tt.heading, tt.title); got != tt.want {
				t.Fatalf("titlesOverlap(%q, %q) = %v, want %v", tt.heading, tt.title, got, tt.want)
			}
		})
	}
}

func TestSortClaimants(t *testing.T) {
	codes := []string{"02", "02.40", "02.40.10", "02.10"}
	sortClaimants(codes)
	want := []string{"02.40.10", "02.10", "02.40", "02"}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("sortClaimants = %v, want %v", codes, want)
		}
	}
}
