// Package document holds the page-level content model: pages, positioned
// items (text and headings), and the heading-level correction that turns
// the layout parser's flat heading labels into true hierarchy depths.
//
// Pages normally come from the upstream layout parser's JSON output
// (LoadPages); ExtractPages can build an approximation straight from a PDF
// when that output is missing.
package document
