// Package render serializes a dom tree to HTML.
//
// The renderer produces the pre-rendered markup that hydration mounts onto,
// and gives tests a stable textual view of a document. Attributes are
// emitted in sorted order so output is deterministic.
package render
