package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// Range arithmetic notes. The parser reports 1-based positions and only
// partial spans: comments and text carry their opening position, elements
// carry start-tag and (when present in source) end-tag positions. Resolve
// turns that into a 0-based, end-exclusive SourceRange. Closing markup it
// has to reconstruct itself: a closing tag is assumed to be the literal
// </tagname> form, so a malformed close tag yields a geometrically wrong
// (never failing) range.

// Resolve computes the source range of a node, or ok=false when the node
// has no location metadata (synthetic structural nodes, detached nodes).
// The File field of the result is empty; Document.RangeOf fills it in.
func Resolve(n *Node) (SourceRange, bool) {
	if n == nil || n.Location == nil {
		return SourceRange{}, false
	}

	switch n.Type {
	case html.CommentNode:
		if loc, ok := n.Location.(*SimpleLocation); ok {
			return commentRange(n, loc), true
		}
	case html.TextNode:
		if loc, ok := n.Location.(*SimpleLocation); ok {
			return textRange(n, loc), true
		}
	case html.ElementNode:
		if loc, ok := n.Location.(*TaggedLocation); ok && loc.EndTag != nil {
			return elementRange(n, loc), true
		}
	}

	return fallbackRange(n)
}

// ResolveAttribute computes the range of the attribute's raw `name="value"`
// text inside the node's tag, or ok=false when the node has no location
// metadata or no recorded position for that attribute. Attribute values are
// assumed not to contain newlines; one that does gets a too-short range.
func ResolveAttribute(n *Node, name string) (SourceRange, bool) {
	if n == nil || n.Location == nil {
		return SourceRange{}, false
	}
	p, ok := attrPos(n.Location)[name]
	if !ok {
		return SourceRange{}, false
	}
	start := Position{Line: p.Line - 1, Column: p.Column - 1}
	return SourceRange{
		Start: start,
		End:   Position{Line: start.Line, Column: start.Column + (p.EndOffset - p.StartOffset)},
	}, true
}

// commentRange reconstructs a comment's end position from its content,
// since the parser only reports where the comment opens. A single-line
// comment's closer shares the line with the <!-- opener (fixed markup
// overhead of 6 on top of the content length); a multi-line comment's
// closer is measured against the trailing content line plus the 3-byte -->.
func commentRange(n *Node, loc *SimpleLocation) SourceRange {
	start := Position{Line: loc.Line - 1, Column: loc.Column - 1}
	lines := strings.Split(n.Data, "\n")
	if len(lines) == 1 {
		return SourceRange{
			Start: start,
			End:   Position{Line: start.Line, Column: start.Column + len(n.Data) + 6},
		}
	}
	return SourceRange{
		Start: start,
		End: Position{
			Line:   start.Line + len(lines) - 1,
			Column: len(lines[len(lines)-1]) + 3,
		},
	}
}

// textRange ends immediately after the text; there is no markup to add.
func textRange(n *Node, loc *SimpleLocation) SourceRange {
	start := Position{Line: loc.Line - 1, Column: loc.Column - 1}
	lines := strings.Split(n.Data, "\n")
	if len(lines) == 1 {
		return SourceRange{
			Start: start,
			End:   Position{Line: start.Line, Column: start.Column + len(n.Data)},
		}
	}
	return SourceRange{
		Start: start,
		End: Position{
			Line:   start.Line + len(lines) - 1,
			Column: len(lines[len(lines)-1]),
		},
	}
}

// elementRange handles elements whose source contained an explicit closing
// tag: the end tag position plus the </> markup around the tag name.
func elementRange(n *Node, loc *TaggedLocation) SourceRange {
	st := loc.StartTag
	et := loc.EndTag
	return SourceRange{
		Start: Position{Line: st.Line - 1, Column: st.Column - 1},
		End:   Position{Line: et.Line - 1, Column: et.Column + len(n.Data) + 2},
	}
}

// fallbackRange covers nodes with no better signal, typically elements
// whose end tag was omitted or self-closed. An element inherits the end of
// its last resolvable child, which preserves original source formatting;
// only when that yields nothing is the end approximated from serialized
// text, which may differ from the raw source in attribute quoting and
// whitespace.
func fallbackRange(n *Node) (SourceRange, bool) {
	start, ok := startPosition(n)
	if !ok {
		return SourceRange{}, false
	}

	if last := n.LastChild; last != nil {
		if r, ok := Resolve(last); ok {
			return SourceRange{Start: start, End: r.End}, true
		}
	}

	var text string
	if n.Type == html.ElementNode {
		text = renderStartTag(n) + renderChildren(n)
	} else {
		text = renderNode(n)
	}
	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		return SourceRange{
			Start: start,
			End:   Position{Line: start.Line, Column: start.Column + len(text)},
		}, true
	}
	return SourceRange{
		Start: start,
		End: Position{
			Line:   start.Line + len(lines) - 1,
			Column: len(lines[len(lines)-1]),
		},
	}, true
}

// startPosition extracts the node's own declared start, whatever the
// location shape.
func startPosition(n *Node) (Position, bool) {
	switch loc := n.Location.(type) {
	case *SimpleLocation:
		return Position{Line: loc.Line - 1, Column: loc.Column - 1}, true
	case *TaggedLocation:
		return Position{Line: loc.StartTag.Line - 1, Column: loc.StartTag.Column - 1}, true
	}
	return Position{}, false
}
