package htmldoc

import (
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
)

// Diagnostic is a finding anchored to a source range.
type Diagnostic struct {
	Message string
	Range   SourceRange
	node    *Node
}

// NewDiagnostic builds a diagnostic anchored to n. The range is resolved
// against the document's file; an unresolvable node leaves the zero range.
func (d *Document) NewDiagnostic(n *Node, msg string) *Diagnostic {
	diag := &Diagnostic{Message: msg, node: n}
	if r, ok := d.RangeOf(n); ok {
		diag.Range = r
	} else {
		diag.Range = SourceRange{File: d.File}
	}
	return diag
}

func (diag *Diagnostic) Error() string {
	return diag.Range.String() + ": " + diag.Message
}

// HTMLContext returns an elided HTML excerpt around the diagnostic's node,
// for display next to the message.
func (diag *Diagnostic) HTMLContext() string {
	if diag.node == nil {
		return ""
	}
	return renderContext(buildContext(diag.node))
}

// contextBuilder groups the helpers that assemble an excerpt tree around a
// node: up to two significant siblings on each side, an elision marker
// beyond that, and the parent element as a wrapper.
type contextBuilder struct{}

func (b contextBuilder) addPrevSiblings(doc *etree.Element, n *Node) {
	var kept []*Node
	c := 0
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		// skip white space text nodes
		if s.Type == html.TextNode && s.IsWhitespace() {
			continue
		}
		if c == 2 {
			doc.AddChild(etree.NewText("..."))
			break
		}
		kept = append(kept, s)
		c++
	}
	for i := len(kept) - 1; i >= 0; i-- {
		b.addNode(doc, kept[i])
	}
}

func (b contextBuilder) addNextSiblings(doc *etree.Element, n *Node) {
	c := 0
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.TextNode && s.IsWhitespace() {
			continue
		}
		if c == 2 {
			doc.AddChild(etree.NewText("..."))
			break
		}
		b.addNode(doc, s)
		c++
	}
}

func (b contextBuilder) addNode(doc *etree.Element, n *Node) {
	switch n.Type {
	case html.ElementNode:
		clone := etree.NewElement(n.Data)
		for _, a := range n.Attr {
			clone.CreateAttr(a.Key, a.Val)
		}
		if n.FirstChild != nil && n.FirstChild.Type == html.ElementNode {
			clone.AddChild(etree.NewText("..."))
		} else if n.FirstChild != nil {
			clone.SetText(n.FirstChild.Data)
		}
		doc.AddChild(clone)
	case html.TextNode:
		if !n.IsWhitespace() {
			doc.AddChild(etree.NewText(n.Data))
		}
	case html.CommentNode:
		doc.AddChild(etree.NewComment(n.Data))
	}
}

func (b contextBuilder) wrapParent(doc *etree.Element, n *Node) *etree.Element {
	parent := n.Parent
	if parent == nil || parent.Type != html.ElementNode {
		return doc // do not wrap the root
	}

	doc.Tag = parent.Data
	for _, a := range parent.Attr {
		doc.CreateAttr(a.Key, a.Val)
	}

	wrapper := &etree.Element{}
	wrapper.AddChild(doc)

	return wrapper
}

// buildContext creates an XML tree around the node n to provide context for
// a diagnostic.
func buildContext(n *Node) *etree.Element {
	doc := &etree.Element{}
	b := contextBuilder{}
	b.addPrevSiblings(doc, n)
	b.addNode(doc, n)
	b.addNextSiblings(doc, n)
	doc = b.wrapParent(doc, n)
	return doc
}

func renderContext(doc *etree.Element) string {
	dst := &html.Node{Type: html.DocumentNode}

	// traverse the etree.Element and build the html.Node
	var render func(*html.Node, *etree.Element)
	render = func(dst *html.Node, src *etree.Element) {
		for _, c := range src.Child {
			switch t := c.(type) {
			case *etree.Element:
				n := &html.Node{Type: html.ElementNode, Data: t.FullTag()}
				for _, a := range t.Attr {
					n.Attr = append(n.Attr, html.Attribute{Key: a.Key, Val: a.Value})
				}
				dst.AppendChild(n)
				render(n, t)
			case *etree.CharData:
				dst.AppendChild(&html.Node{Type: html.TextNode, Data: t.Data})
			case *etree.Comment:
				dst.AppendChild(&html.Node{Type: html.CommentNode, Data: t.Data})
			}
		}
	}

	render(dst, doc)

	var buf strings.Builder
	_ = html.Render(&buf, dst)

	return buf.String()
}
