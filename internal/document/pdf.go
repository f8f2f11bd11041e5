package document

import (
	"fmt"
	"math"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// rowTolerance is the Y distance within which glyphs belong to one line.
const rowTolerance = 2.0

// PageCount returns the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return reader.NumPage(), nil
}

// ExtractPages builds the page-item stream directly from a PDF, for runs
// where no parsed-document JSON from the layout parser is available. Rows
// are grouped by baseline, ordered top to bottom, and classified as
// headings when their font size stands out against the page median or they
// carry a dotted numeric prefix.
func ExtractPages(path string) ([]Page, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]Page, 0, numPages)

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, Page{Number: i, Height: DefaultPageHeight})
			continue
		}
		pages = append(pages, buildPage(i, page.Content()))
	}

	return pages, nil
}

type textRow struct {
	y        float64 // raw PDF Y, origin bottom-left
	fontSize float64
	texts    []pdflib.Text
}

func buildPage(number int, content pdflib.Content) Page {
	rows := groupRows(content.Text)
	if len(rows) == 0 {
		return Page{Number: number, Height: DefaultPageHeight}
	}

	// PDF Y grows upward; item positions grow downward from the page top.
	height := 0.0
	for _, row := range rows {
		if row.y > height {
			height = row.y
		}
	}
	height += rowTolerance

	median := medianFontSize(rows)

	// Top of page first.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	p := Page{Number: number, Height: height}
	var pageText []string
	for _, row := range rows {
		value := rowText(row)
		if value == "" {
			continue
		}
		pageText = append(pageText, value)

		it := Item{
			Type:  Text,
			Value: value,
			BBox:  &BBox{Y: height - row.y},
		}
		if isHeadingRow(row, median, value) {
			it.Type = Heading
		}
		p.Items = append(p.Items, it)
	}
	p.Text = strings.Join(pageText, "\n")
	return p
}

func groupRows(texts []pdflib.Text) []textRow {
	var rows []textRow
	for _, t := range texts {
		placed := false
		for ri := range rows {
			if math.Abs(rows[ri].y-t.Y) <= rowTolerance {
				rows[ri].texts = append(rows[ri].texts, t)
				if t.FontSize > rows[ri].fontSize {
					rows[ri].fontSize = t.FontSize
				}
				placed = true
				break
			}
		}
		if !placed {
			rows = append(rows, textRow{y: t.Y, fontSize: t.FontSize, texts: []pdflib.Text{t}})
		}
	}
	return rows
}

func rowText(row textRow) string {
	texts := make([]pdflib.Text, len(row.texts))
	copy(texts, row.texts)
	sort.SliceStable(texts, func(i, j int) bool { return texts[i].X < texts[j].X })

	var b strings.Builder
	for _, t := range texts {
		b.WriteString(t.S)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func medianFontSize(rows []textRow) float64 {
	sizes := make([]float64, 0, len(rows))
	for _, row := range rows {
		if row.fontSize > 0 {
			sizes = append(sizes, row.fontSize)
		}
	}
	if len(sizes) == 0 {
		return 0
	}
	sort.Float64s(sizes)
	return sizes[len(sizes)/2]
}

func isHeadingRow(row textRow, median float64, value string) bool {
	if len(value) > 120 {
		return false
	}
	if numberedHeading.MatchString(value) {
		return true
	}
	return median > 0 && row.fontSize > median*1.15
}
