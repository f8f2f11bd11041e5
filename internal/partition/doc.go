// Package partition assigns page content to the nodes of a recovered
// document hierarchy. Pages claimed by a single node transfer whole;
// pages shared between nodes are split at matched heading boundaries,
// falling back to full-page duplication when no boundary can be found.
package partition
