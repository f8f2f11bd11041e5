package hierarchy

import "log/slog"

// Repair closes the boundary disagreements left behind by independent
// window analyses. Applied once at each depth, top to bottom:
//
//  1. Siblings are ordered by start page.
//  2. A gap between adjacent siblings is closed by extending the earlier
//     sibling's end to one page before the next sibling's start, so no
//     content is orphaned between them.
//  3. Each node's children are repaired recursively inside the node's own
//     page range; the last child is extended to the parent's end when it
//     falls short, and children are clamped into the parent's bounds.
//
// The partitioner requires the repaired invariants (no inter-sibling gaps,
// children contained in parents) as a hard precondition.
func Repair(h Hierarchy, logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	siblings := byStart(map[string]*Node(h))
	repairSiblings(siblings, logger)
	for _, node := range siblings {
		repairChildren(node, logger)
	}
}

func repairSiblings(nodes []*Node, logger *slog.Logger) {
	for i := 0; i < len(nodes)-1; i++ {
		current, next := nodes[i], nodes[i+1]
		if current.End < next.Start-1 {
			logger.Info("closing boundary gap",
				"code", current.Code,
				"end", current.End,
				"new_end", next.Start-1)
			current.End = next.Start - 1
		}
	}
}

func repairChildren(parent *Node, logger *slog.Logger) {
	if len(parent.Sections) == 0 {
		return
	}

	children := byStart(parent.Sections)
	for _, child := range children {
		if child.Start < parent.Start {
			child.Start = parent.Start
		}
		if child.End > parent.End {
			child.End = parent.End
		}
	}

	repairSiblings(children, logger)

	last := children[len(children)-1]
	if last.End < parent.End {
		logger.Info("extending last child to parent end",
			"code", last.Code,
			"end", last.End,
			"parent_end", parent.End)
		last.End = parent.End
	}

	for _, child := range children {
		repairChildren(child, logger)
	}
}

// Validate drops nodes whose page bounds are missing or impossible and
// returns the surviving hierarchy. A rejected node takes its subtree with
// it, but a rejected child never invalidates its siblings. The upper bound
// on plausible page numbers is the larger of the observed maximum end and
// 1000.
func Validate(h Hierarchy, logger *slog.Logger) Hierarchy {
	if logger == nil {
		logger = slog.Default()
	}

	maxEnd := 0
	h.Walk(func(n *Node) {
		if n.End > maxEnd {
			maxEnd = n.End
		}
	})
	reasonableMax := maxEnd
	if reasonableMax < 1000 {
		reasonableMax = 1000
	}

	valid := make(Hierarchy)
	for code, node := range h {
		if kept := validateNode(node, reasonableMax, logger); kept != nil {
			valid[code] = kept
		}
	}
	return valid
}

func validateNode(n *Node, reasonableMax int, logger *slog.Logger) *Node {
	if n.Start < 1 || n.End > reasonableMax || n.Start > n.End {
		logger.Warn("dropping node with invalid page range",
			"code", n.Code,
			"start", n.Start,
			"end", n.End,
			"max", reasonableMax)
		return nil
	}
	if n.Sections != nil {
		validSections := make(map[string]*Node)
		for code, child := range n.Sections {
			if kept := validateNode(child, reasonableMax, logger); kept != nil {
				validSections[code] = kept
			}
		}
		if len(validSections) == 0 {
			n.Sections = nil
		} else {
			n.Sections = validSections
		}
	}
	return n
}
