// Package hierarchy models the recovered chapter/section structure of a
// lastenboek and reconciles the partial views produced by windowed analysis.
//
// A document's structure is a tree of nodes identified by dot-delimited
// numeric codes ("02", "02.40", "02.40.10"), each owning an inclusive
// global page range. Independent overlapping windows disagree on exact
// boundaries, so reconstruction is two-phase: Merge unions every fragment's
// claims per code, then Repair closes inter-sibling gaps and forces
// children inside their parents. Validate drops nodes whose bounds are
// impossible before the tree is persisted.
//
// After Merge+Repair+Validate the tree satisfies the invariants the
// content partitioner depends on: every child's range is contained in its
// parent's, and sorted siblings leave no page unclaimed between them.
package hierarchy
