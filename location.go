package htmldoc

// LocationInfo is the parser-supplied location metadata attached to a node.
// It comes in two shapes: SimpleLocation for text, comments and other nodes
// described by a single position, and TaggedLocation for elements, where the
// start and end tags are located independently. A node with a parent but no
// LocationInfo was injected by the parser and has no source text.
type LocationInfo interface {
	locationInfo()
}

// SimpleLocation locates a node that occupies a single contiguous run of
// source text with no internal tag structure.
type SimpleLocation struct {
	Pos
	// Attrs maps attribute names to the span of their raw `name="value"`
	// text. Present only on nodes the parser annotated this way.
	Attrs map[string]Pos
}

// TaggedLocation locates an element by its tags. EndTag is nil when the
// source contained no explicit closing tag (void element, self-closing
// syntax, or an end tag omitted per HTML parsing rules).
type TaggedLocation struct {
	StartTag Pos
	EndTag   *Pos
	// Attrs maps attribute names to the span of their raw `name="value"`
	// text within the start tag.
	Attrs map[string]Pos
}

func (*SimpleLocation) locationInfo() {}
func (*TaggedLocation) locationInfo() {}

// attrPos returns the attribute position map of a location, regardless of
// shape.
func attrPos(loc LocationInfo) map[string]Pos {
	switch l := loc.(type) {
	case *SimpleLocation:
		return l.Attrs
	case *TaggedLocation:
		return l.Attrs
	}
	return nil
}
