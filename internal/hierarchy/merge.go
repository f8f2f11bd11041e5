package hierarchy

// Merge folds per-window partial hierarchies into one tree. Overlapping
// windows see the same chapter from different angles, so for each code the
// union rule applies: earliest claimed start, latest claimed end, and the
// longest non-empty title as the proxy for the most complete one. Children
// merge recursively by the same rule.
//
// Merge only unions what the fragments claim; it does not repair boundary
// gaps or enforce containment. Run Repair and Validate on the result.
func Merge(fragments []Hierarchy) Hierarchy {
	merged := make(Hierarchy)
	for _, fragment := range fragments {
		for code, node := range Nest(fragment) {
			if existing, ok := merged[code]; ok {
				mergeNode(existing, node)
			} else {
				merged[code] = node.Clone()
			}
		}
	}
	return merged
}

func mergeNode(dst, src *Node) {
	// A node without a positive start makes no page claim; unioning it in
	// would poison a sibling window's good range with a zero bound.
	if src.Start >= 1 {
		if dst.Start < 1 || src.Start < dst.Start {
			dst.Start = src.Start
		}
		if src.End > dst.End {
			dst.End = src.End
		}
	}
	if len(src.Title) > len(dst.Title) {
		dst.Title = src.Title
	}
	for code, child := range src.Sections {
		if dst.Sections == nil {
			dst.Sections = make(map[string]*Node)
		}
		if existing, ok := dst.Sections[code]; ok {
			mergeNode(existing, child)
		} else {
			dst.Sections[code] = child.Clone()
		}
	}
}
