package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed HTML document: its file name, raw source text and
// the location-annotated tree. The tree is exclusively owned by the
// document; callers may mutate node content in place before serializing.
type Document struct {
	File    string
	Content string
	Root    *Node

	// host is set on documents embedded in another document's tree
	// (see NewInlineDocument).
	host *Node
}

// InlineDocument is a sub-document whose edited text must be re-embedded
// into its host node before serialization. Only the serialized text and the
// host back-reference are consumed here; the sub-document's own model
// (CSS, JS, or nested HTML) is opaque.
type InlineDocument interface {
	// Stringify returns the sub-document's current serialized text.
	// Implementations with no nested documents of their own ignore the
	// arguments.
	Stringify(inline ...InlineDocument) string

	// HostNode returns the node in the enclosing document's tree that
	// holds the sub-document's content.
	HostNode() *Node
}

// NewInlineDocument parses src as a document fragment embedded in host
// (typically the content of a <style>, <script> or <template> element).
// The returned document satisfies InlineDocument.
func NewInlineDocument(file, src string, host *Node) (*Document, error) {
	d, err := Parse(strings.NewReader(src), &ParseOptions{File: file, Fragment: true})
	if err != nil {
		return nil, err
	}
	d.host = host
	return d, nil
}

// HostNode returns the node this document is embedded under, or nil for a
// top-level document.
func (d *Document) HostNode() *Node { return d.host }

// Body returns the document's body element, if present.
func (d *Document) Body() *Node {
	if h := findChildElement(d.Root, "html"); h != nil {
		return findChildElement(h, "body")
	}
	return findChildElement(d.Root, "body")
}

// Head returns the document's head element, if present.
func (d *Document) Head() *Node {
	if h := findChildElement(d.Root, "html"); h != nil {
		return findChildElement(h, "head")
	}
	return findChildElement(d.Root, "head")
}

// RangeOf resolves a node's range with the document's file name attached.
func (d *Document) RangeOf(n *Node) (SourceRange, bool) {
	r, ok := Resolve(n)
	if !ok {
		return SourceRange{}, false
	}
	r.File = d.File
	return r, true
}

// AttributeRangeOf resolves an attribute's range with the document's file
// name attached.
func (d *Document) AttributeRangeOf(n *Node, name string) (SourceRange, bool) {
	r, ok := ResolveAttribute(n, name)
	if !ok {
		return SourceRange{}, false
	}
	r.File = d.File
	return r, true
}

// TextContent returns the concatenated text of n's text-node descendants.
func TextContent(n *Node) string {
	var out []byte
	var walk func(*Node)
	walk = func(n *Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				out = append(out, c.Data...)
			}
			walk(c)
		}
	}
	walk(n)
	return string(out)
}
