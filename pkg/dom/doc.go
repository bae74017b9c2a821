// Package dom provides the lightweight in-process document model the
// fragment runtime renders into.
//
// A Document owns a tree of Nodes (elements, text, comments) with ordinary
// DOM semantics: InsertBefore moves a node that already has a parent,
// RemoveChild detaches, attributes are string-valued. The Document also
// keeps mutation counters so tests and metrics can observe exactly how many
// writes a patch pass performed, and each Node carries a claim-order stamp
// used by the hydration reconciler.
package dom
