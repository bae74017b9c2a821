// Package fragment provides the closed set of fragment variants the
// runtime patches: elements with static and reactive attributes, text
// nodes, conditional blocks, keyed lists, and nested components.
//
// Fragments are built per component instance through a Builder, so their
// value functions close over the component's slot array and always read
// current values. Patch applies only the work selected by the dirty
// bitmask and compares against the live DOM before writing, which keeps
// repeated patches of unchanged state mutation-free.
package fragment
