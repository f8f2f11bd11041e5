package document

import (
	"log/slog"
	"regexp"
	"strings"
)

// The upstream layout parser classifies every heading at a single level.
// Real lastenboeken nest four or five levels deep, so the flat labels are
// corrected here with an ordered rule table: the first applicable rule
// wins, and the worst case is the default level, never an error.

// PositionContext is the vertical placement of a heading on its page; it
// feeds the positional fallback rule.
type PositionContext struct {
	Y          float64
	PageHeight float64
}

// DefaultPageHeight stands in when the parser did not report a height.
const DefaultPageHeight = 800

// DefaultLevel is assigned when no rule recognizes the heading. Level 2 is
// the safe guess: a stray H1 would swallow siblings, a stray H4 would bury
// a real section.
const DefaultLevel = 2

var (
	// numberedHeading captures a dotted numeric prefix ending in a dot,
	// like "2." or "2.1.4.". "02.10 TITEL" (no trailing dot) deliberately
	// does not match and falls through to the lexical rules.
	numberedHeading = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.(?:\s|$)`)

	subsectionCues = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(Algemeen|General)$`),
		regexp.MustCompile(`(?i)^(Omschrijving|Description)$`),
		regexp.MustCompile(`(?i)^(Toepasselijke|Applicable)`),
		regexp.MustCompile(`(?i)^(Referentienormen|Reference)`),
		regexp.MustCompile(`(?i)plan.*:$`),
		regexp.MustCompile(`(?i)bord.*:$`),
		regexp.MustCompile(`(?i)voorzieningen`),
	}

	allCapsTitle = regexp.MustCompile(`^[A-Z\s]{3,}$`)

	chapterKeywords = []string{"WERKEN", "MATERIALEN", "STABILITEIT"}

	// boilerplate marks page headers and footers that must not enter the
	// hierarchy at all.
	boilerplate = []string{"LASTENBOEK ARCHITECTUUR", "PAGINA", "BLADZIJDE"}
)

// CorrectLevel classifies a single heading. It returns the corrected level
// and whether the heading belongs in the hierarchy at all; boilerplate
// returns keep=false. The function is pure: the same text and position
// always yield the same answer.
func CorrectLevel(text string, pos PositionContext) (level int, keep bool) {
	text = strings.TrimSpace(text)

	// Rule 1: numbering pattern.
	if m := numberedHeading.FindStringSubmatch(text); m != nil {
		segments := strings.Count(m[1], ".") + 1
		if segments > 5 {
			segments = 5
		}
		return segments, true
	}

	// Rule 2: known boilerplate.
	upper := strings.ToUpper(text)
	for _, term := range boilerplate {
		if strings.Contains(upper, term) {
			return 0, false
		}
	}

	// Rule 3: administrative subsection phrases.
	for _, cue := range subsectionCues {
		if cue.MatchString(text) {
			return 3, true
		}
	}

	// Rule 4: chapter cues.
	if allCapsTitle.MatchString(text) {
		return 2, true
	}
	for _, kw := range chapterKeywords {
		if strings.Contains(upper, kw) {
			return 2, true
		}
	}

	// Rule 5: positional fallback.
	height := pos.PageHeight
	if height <= 0 {
		height = DefaultPageHeight
	}
	switch {
	case pos.Y < height*0.2:
		return 2, true
	case pos.Y > height*0.8:
		return 4, true
	default:
		return DefaultLevel, true
	}
}

// CorrectPages rewrites the level of every heading item in place and drops
// boilerplate headings from the item stream. It returns the number of
// headings whose level changed.
func CorrectPages(pages []Page, logger *slog.Logger) int {
	if logger == nil {
		logger = slog.Default()
	}

	corrections := 0
	for pi := range pages {
		page := &pages[pi]
		kept := page.Items[:0]
		for _, it := range page.Items {
			if it.Type != Heading {
				kept = append(kept, it)
				continue
			}
			level, keep := CorrectLevel(it.Value, PositionContext{
				Y:          it.Position(),
				PageHeight: page.Height,
			})
			if !keep {
				logger.Debug("dropping boilerplate heading",
					"page", page.Number, "value", it.Value)
				continue
			}
			if level != it.Level {
				corrections++
			}
			it.Level = level
			kept = append(kept, it)
		}
		page.Items = kept
	}
	return corrections
}
