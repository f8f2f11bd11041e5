package hierarchy

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Node is one chapter or section in the recovered document structure.
// Code is the dot-delimited numeric identifier ("02", "02.40", "02.40.10");
// its segment count is the node's depth. Start and End are 1-based inclusive
// global page numbers.
type Node struct {
	Code     string           `json:"-"`
	Title    string           `json:"title"`
	Start    int              `json:"start"`
	End      int              `json:"end"`
	Sections map[string]*Node `json:"sections,omitempty"`
}

// Hierarchy is the top-level structure, keyed by chapter code.
// This is also the persisted chapters.json shape consumed downstream.
type Hierarchy map[string]*Node

// Depth returns the nesting depth implied by the node's code.
func (n *Node) Depth() int {
	if n.Code == "" {
		return 0
	}
	return strings.Count(n.Code, ".") + 1
}

// Clone creates a deep copy of the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	clone := &Node{
		Code:  n.Code,
		Title: n.Title,
		Start: n.Start,
		End:   n.End,
	}
	if n.Sections != nil {
		clone.Sections = make(map[string]*Node, len(n.Sections))
		for code, child := range n.Sections {
			clone.Sections[code] = child.Clone()
		}
	}
	return clone
}

// Clone creates a deep copy of the hierarchy.
func (h Hierarchy) Clone() Hierarchy {
	if h == nil {
		return nil
	}
	clone := make(Hierarchy, len(h))
	for code, node := range h {
		clone[code] = node.Clone()
	}
	return clone
}

// Walk traverses the hierarchy depth-first in code order, calling fn for
// each node.
func (h Hierarchy) Walk(fn func(*Node)) {
	for _, code := range sortedCodes(h) {
		h[code].walk(fn)
	}
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, code := range sortedCodes(n.Sections) {
		n.Sections[code].walk(fn)
	}
}

// Flatten returns every node in the hierarchy keyed by its code, parents
// and children alike.
func (h Hierarchy) Flatten() map[string]*Node {
	flat := make(map[string]*Node)
	h.Walk(func(n *Node) {
		flat[n.Code] = n
	})
	return flat
}

// ParentCode returns the code of a node's parent ("02.40.10" -> "02.40"),
// or "" for a top-level chapter.
func ParentCode(code string) string {
	idx := strings.LastIndex(code, ".")
	if idx == -1 {
		return ""
	}
	return code[:idx]
}

// Nest rebuilds the hierarchy so that every section sits under its closest
// present ancestor. Window fragments often report all sections of a chapter
// in one flat map ("02.40" and "02.40.10" as siblings); downstream code
// depends on true nesting.
func Nest(h Hierarchy) Hierarchy {
	flat := h.Flatten()

	nested := make(Hierarchy)
	codes := make([]string, 0, len(flat))
	for code := range flat {
		codes = append(codes, code)
	}
	// Shallow codes first so parents exist before their children.
	sort.Slice(codes, func(i, j int) bool {
		di, dj := strings.Count(codes[i], "."), strings.Count(codes[j], ".")
		if di != dj {
			return di < dj
		}
		return codes[i] < codes[j]
	})

	placed := make(map[string]*Node, len(flat))
	for _, code := range codes {
		node := &Node{
			Code:  code,
			Title: flat[code].Title,
			Start: flat[code].Start,
			End:   flat[code].End,
		}
		placed[code] = node

		parent := closestAncestor(code, placed)
		if parent == nil {
			nested[code] = node
			continue
		}
		if parent.Sections == nil {
			parent.Sections = make(map[string]*Node)
		}
		parent.Sections[code] = node
	}

	return nested
}

// closestAncestor walks up the code chain until it finds a placed node.
func closestAncestor(code string, placed map[string]*Node) *Node {
	for parent := ParentCode(code); parent != ""; parent = ParentCode(parent) {
		if node, ok := placed[parent]; ok {
			return node
		}
	}
	return nil
}

// sortedCodes returns map keys in lexical order for deterministic traversal.
func sortedCodes(m map[string]*Node) []string {
	codes := make([]string, 0, len(m))
	for code := range m {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// byStart returns the nodes of a sibling map ordered by start page, with
// code order breaking ties.
func byStart(m map[string]*Node) []*Node {
	nodes := make([]*Node, 0, len(m))
	for _, code := range sortedCodes(m) {
		nodes = append(nodes, m[code])
	}
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Start < nodes[j].Start
	})
	return nodes
}

// Save writes the hierarchy as indented JSON, the boundary artifact read by
// the category-matching and PDF-splitting steps.
func (h Hierarchy) Save(path string) error {
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling hierarchy: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Load reads a persisted hierarchy and restores the Code fields that the
// JSON form carries only as map keys.
func Load(path string) (Hierarchy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var h Hierarchy
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	h.restoreCodes()
	return h, nil
}

func (h Hierarchy) restoreCodes() {
	var restore func(code string, n *Node)
	restore = func(code string, n *Node) {
		n.Code = code
		for childCode, child := range n.Sections {
			restore(childCode, child)
		}
	}
	for code, node := range h {
		restore(code, node)
	}
}
