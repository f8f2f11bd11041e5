// Package report renders run output: the styled console summaries and the
// markdown table-of-contents report written next to the JSON artifacts.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/hierarchy"
	"github.com/buildwise-be/ai-construct-lastenboek-split-sub000/internal/partition"
)

var (
	// titleStyle for bold section headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for degraded-result indicators
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// boxStyle for summary boxes with rounded border
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1)

	// headerBoxStyle for the run header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1)
)

// FormatRunHeader renders the analysis run header.
func FormatRunHeader(w io.Writer, document, model string, pages, windows int) {
	content := fmt.Sprintf("%s %s\n%s %s\n%s %d  %s %d",
		dimStyle.Render("Document:"), titleStyle.Render(document),
		dimStyle.Render("Model:"), titleStyle.Render(model),
		dimStyle.Render("Pages:"), pages,
		dimStyle.Render("Windows:"), windows,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatHierarchySummary renders the recovered structure as a summary box.
func FormatHierarchySummary(w io.Writer, h hierarchy.Hierarchy) {
	chapters := 0
	sections := 0
	h.Walk(func(n *hierarchy.Node) {
		if n.Depth() == 1 {
			chapters++
		} else {
			sections++
		}
	})

	line := fmt.Sprintf("%s %d  %s %d",
		dimStyle.Render("Chapters:"), chapters,
		dimStyle.Render("Sections:"), sections,
	)
	content := titleStyle.Render("Structure Recovered") + "\n" + line
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatPartitionSummary renders the partition result with its quality
// numbers. Heavy duplication gets the warning color rather than an error;
// full-page fallbacks are expected on boundary-poor documents.
func FormatPartitionSummary(w io.Writer, records map[string]*partition.Record, quality *partition.Report) {
	dupStyle := successStyle
	if quality.DuplicationRatio > 1.5 {
		dupStyle = warnStyle
	}

	line1 := fmt.Sprintf("%s %d  %s %s",
		dimStyle.Render("Nodes:"), len(records),
		dimStyle.Render("Duplication:"), dupStyle.Render(fmt.Sprintf("%.2fx", quality.DuplicationRatio)),
	)
	line2 := fmt.Sprintf("%s %s",
		dimStyle.Render("Boundary detection:"),
		fmt.Sprintf("%.0f%%", quality.BoundaryDetectionRate*100),
	)
	content := titleStyle.Render("Content Partitioned") + "\n" + line1 + "\n" + line2
	fmt.Fprintln(w, boxStyle.Render(content))
}

// WriteTOCReport writes a human-reviewable markdown rendering of the
// hierarchy, indented by depth with page ranges.
func WriteTOCReport(path, document string, h hierarchy.Hierarchy) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Inhoudstafel: %s\n\n", document)

	var render func(nodes map[string]*hierarchy.Node)
	render = func(nodes map[string]*hierarchy.Node) {
		codes := make([]string, 0, len(nodes))
		for code := range nodes {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			n := nodes[code]
			indent := strings.Repeat("  ", n.Depth()-1)
			fmt.Fprintf(&b, "%s- **%s** %s (p. %d-%d)\n", indent, code, n.Title, n.Start, n.End)
			if len(n.Sections) > 0 {
				render(n.Sections)
			}
		}
	}
	render(h)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
