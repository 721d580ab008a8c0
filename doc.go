// Package htmldoc is the source-range resolution layer for a parsed HTML
// document model. It parses HTML while tracking positions, computes
// normalized 0-based [start, end) spans for elements, text, comments and
// individual attributes, and serializes edited documents back to text,
// merging mutated inline sub-documents into their host nodes without
// disturbing ranges of untouched siblings.
//
// The upstream parser's location metadata is irregular: single-line and
// multi-line nodes, elements with and without explicit closing tags, and
// parser-injected structural nodes all need different arithmetic to recover
// a correct span. Resolve post-processes that metadata; it never re-scans
// the source character by character, falling back to serialization-length
// arithmetic only when no better signal exists.
package htmldoc
