package partition

import (
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/document"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/hierarchy"
)

// Partitioner assigns page content to hierarchy nodes. Every node that
// claims a page gets content from it; shared pages are split at matched
// heading boundaries where possible and duplicated in full where not.
type Partitioner struct {
	logger *slog.Logger
}

func NewPartitioner(logger *slog.Logger) *Partitioner {
	return &Partitioner{logger: logger}
}

// pageSplit is one node's share of a page.
type pageSplit struct {
	text     string
	boundary bool
	method   Method
}

// Partition walks the pages in order and accumulates text into one record
// per hierarchy node, parents and leaves alike. Pages outside every node's
// range are skipped.
func (p *Partitioner) Partition(h hierarchy.Hierarchy, pages []document.Page) map[string]*Record {
	flat := h.Flatten()

	claims := make(map[int][]string)
	for code, node := range flat {
		for page := node.Start; page <= node.End; page++ {
			claims[page] = append(claims[page], code)
		}
	}

	records := make(map[string]*Record, len(flat))
	for code, node := range flat {
		records[code] = &Record{
			Title:     node.Title,
			StartPage: node.Start,
			EndPage:   node.End,
		}
	}

	ordered := make([]document.Page, len(pages))
	copy(ordered, pages)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Number < ordered[j].Number
	})

	for _, page := range ordered {
		codes := claims[page.Number]
		if len(codes) == 0 {
			continue
		}
		sortClaimants(codes)

		if len(codes) == 1 {
			records[codes[0]].addPage(page.Number, page.Text, false)
			continue
		}

		splits := p.splitSharedPage(page, codes, flat)
		for _, code := range codes {
			split := splits[code]
			records[code].addPage(page.Number, split.text, split.boundary)
		}
	}

	for code, rec := range records {
		rec.finalize()
		if p.logger != nil {
			p.logger.Debug("partitioned node",
				"code", code,
				"chars", rec.CharacterCount,
				"pages", rec.TotalPages,
				"boundary_ratio", rec.BoundaryDetectionRatio)
		}
	}
	return records
}

// splitSharedPage divides a multi-claimant page. Headings that match a
// claimant open a span running to the next matched heading (or the page
// end); claimants without a matched heading fall back to the whole page.
func (p *Partitioner) splitSharedPage(page document.Page, codes []string, flat map[string]*hierarchy.Node) map[string]pageSplit {
	splits := make(map[string]pageSplit, len(codes))

	items := page.SortedItems()
	type match struct {
		code  string
		index int
	}
	var matches []match
	for i, it := range items {
		if it.Type != document.Heading {
			continue
		}
		code := p.matchHeading(it.Value, codes, flat)
		if code != "" {
			matches = append(matches, match{code: code, index: i})
		}
	}

	if len(matches) == 0 {
		if p.logger != nil {
			p.logger.Debug("no heading boundaries on shared page",
				"page", page.Number, "claimants", len(codes))
		}
		for _, code := range codes {
			splits[code] = pageSplit{text: page.Text, method: MethodFallbackNoBoundaries}
		}
		return splits
	}

	// A node matched more than once keeps its last span, like a heading
	// restated after an interruption.
	for i, m := range matches {
		end := len(items)
		if i+1 < len(matches) {
			end = matches[i+1].index
		}
		splits[m.code] = pageSplit{
			text:     document.JoinItems(items[m.index:end]),
			boundary: true,
			method:   MethodHeadingBoundary,
		}
	}

	for _, code := range codes {
		if _, ok := splits[code]; !ok {
			splits[code] = pageSplit{text: page.Text, method: MethodFallbackNoHeading}
		}
	}
	return splits
}

// numericPrefix pulls a dotted code off the front of a heading ("02.10."
// or "02." style, trailing dot required).
var numericPrefix = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.`)

// matchHeading decides which claimant, if any, a heading belongs to.
// Three attempts, cheapest first: code prefix, numeric prefix lookup,
// fuzzy title overlap.
func (p *Partitioner) matchHeading(heading string, codes []string, flat map[string]*hierarchy.Node) string {
	clean := strings.TrimSpace(heading)
	if clean == "" {
		return ""
	}

	for _, code := range codes {
		if strings.HasPrefix(clean, code+".") || strings.HasPrefix(clean, code+" ") {
			return code
		}
	}

	if m := numericPrefix.FindStringSubmatch(clean); m != nil {
		for _, code := range codes {
			if code == m[1] {
				return code
			}
		}
	}

	for _, code := range codes {
		node := flat[code]
		if node != nil && titlesOverlap(clean, node.Title) {
			return code
		}
	}
	return ""
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}\s]+`)

func normalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(nonWord.ReplaceAllString(s, " ")))
}

// titlesOverlap reports whether a heading and a node title plausibly name
// the same section: containment either way, or at least 70% of the shorter
// one's tokens appearing in the other. Very short strings match too
// eagerly and are excluded.
func titlesOverlap(heading, title string) bool {
	a, b := normalizeTitle(heading), normalizeTitle(title)
	if len(a) <= 5 || len(b) <= 5 {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}

	ta, tb := strings.Fields(a), strings.Fields(b)
	short, long := ta, tb
	if len(tb) < len(ta) {
		short, long = tb, ta
	}
	if len(short) == 0 {
		return false
	}
	set := make(map[string]bool, len(long))
	for _, tok := range long {
		set[tok] = true
	}
	hits := 0
	for _, tok := range short {
		if set[tok] {
			hits++
		}
	}
	return float64(hits)/float64(len(short)) >= 0.7
}

// sortClaimants orders codes most-specific first so that a prefix match
// prefers "02.40.10" over "02.40" when both claim the page.
func sortClaimants(codes []string) {
	sort.Slice(codes, func(i, j int) bool {
		di := strings.Count(codes[i], ".")
		dj := strings.Count(codes[j], ".")
		if di != dj {
			return di > dj
		}
		return codes[i] < codes[j]
	})
}
