package document

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSortedItems(t *testing.T) {
	p := Page{
		Number: 1,
		Items: []Item{
			{Type: Text, Value: "laag", BBox: &BBox{Y: 500}},
			{Type: Heading, Value: "2.1. Midden", BBox: &BBox{Y: 250}},
			{Type: Heading, Value: "zonder box"},
			{Type: Heading, Value: "2. Boven", BBox: &BBox{Y: 10}},
		},
	}
	items := p.SortedItems()
	if len(items) != 3 {
		t.Fatalf("expected 3 boxed items, got %d", len(items))
	}
	if items[0].Value != "2. Boven" || items[2].Value != "laag" {
		t.Errorf("expected top-to-bottom order, got %q..%q", items[0].Value, items[2].Value)
	}

	headings := p.Headings()
	if len(headings) != 2 {
		t.Fatalf("expected 2 boxed headings, got %d", len(headings))
	}
	if headings[0].Value != "2. Boven" {
		t.Errorf("expected first heading at page top, got %q", headings[0].Value)
	}
}

func TestJoinItems(t *testing.T) {
	items := []Item{
		{Type: Heading, Value: " 2.1. Funderingen "},
		{Type: Text, Value: ""},
		{Type: Text, Value: "Betonklasse C25/30."},
	}
	got := JoinItems(items)
	want := "2.1. Funderingen\n\nBetonklasse C25/30."
	if got != want {
		t.Errorf("JoinItems = %q, want %q", got, want)
	}
}

func TestLoadPages(t *testing.T) {
	raw := `{
  "pages": [
    {
      "page": 12,
      "text": "02.10 RIOLERING\nBuizen in PVC.",
      "items": [
        {"type": "heading", "value": "02.10 RIOLERING", "lvl": 1, "bBox": {"y": 45.5}},
        {"type": "text", "value": "Buizen in PVC.", "bBox": {"y": 90.0}}
      ]
    }
  ]
}`
	path := filepath.Join(t.TempDir(), "parsed.json")
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	pages, err := LoadPages(path)
	if err != nil {
		t.Fatalf("LoadPages: %v", err)
	}
	if len(pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(pages))
	}
	p := pages[0]
	if p.Number != 12 {
		t.Errorf("expected page number 12, got %d", p.Number)
	}
	if len(p.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(p.Items))
	}
	if p.Items[0].Type != Heading || p.Items[0].Position() != 45.5 {
		t.Errorf("unexpected first item: %+v", p.Items[0])
	}
}

func TestLoadPagesMissingFile(t *testing.T) {
	if _, err := LoadPages(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
