package document

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// ItemType distinguishes the two kinds of page content.
type ItemType string

const (
	Heading ItemType = "heading"
	Text    ItemType = "text"
)

// BBox carries the vertical placement of an item on its page. Y grows
// downward: smaller means higher on the page.
type BBox struct {
	Y float64 `json:"y"`
}

// Item is one piece of content on a page. Level is only meaningful for
// headings and holds the corrected hierarchy depth (1 = chapter).
type Item struct {
	Type  ItemType `json:"type"`
	Value string   `json:"value"`
	Level int      `json:"lvl,omitempty"`
	BBox  *BBox    `json:"bBox,omitempty"`
}

// Position returns the item's vertical offset, or 0 when no box is known.
func (it Item) Position() float64 {
	if it.BBox == nil {
		return 0
	}
	return it.BBox.Y
}

// Page is one document page with its full text and ordered items.
type Page struct {
	Number int     `json:"page"`
	Text   string  `json:"text"`
	Height float64 `json:"height,omitempty"`
	Items  []Item  `json:"items"`
}

// SortedItems returns the page's boxed items ordered top to bottom.
func (p *Page) SortedItems() []Item {
	items := make([]Item, 0, len(p.Items))
	for _, it := range p.Items {
		if it.BBox != nil {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Position() < items[j].Position()
	})
	return items
}

// Headings returns the page's heading items in reading order.
func (p *Page) Headings() []Item {
	var headings []Item
	for _, it := range p.SortedItems() {
		if it.Type == Heading {
			headings = append(headings, it)
		}
	}
	return headings
}

// JoinItems concatenates item values with blank lines, skipping empties.
func JoinItems(items []Item) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		if v := strings.TrimSpace(it.Value); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, "\n\n")
}

// parsedDocument is the on-disk shape of a parsed document: the output of
// the upstream layout parser, one entry per page.
type parsedDocument struct {
	Pages []Page `json:"pages"`
}

// LoadPages reads a parsed-document JSON file and returns its pages.
func LoadPages(path string) ([]Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var doc parsedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc.Pages, nil
}

// SavePages writes pages back in the same parsed-document shape.
func SavePages(path string, pages []Page) error {
	data, err := json.MarshalIndent(parsedDocument{Pages: pages}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling pages: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
