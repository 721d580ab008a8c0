package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// toHTMLNode converts a subtree to golang.org/x/net/html nodes so the
// standard serializer can render it. Location metadata does not survive the
// conversion; this is only used for output.
func toHTMLNode(n *Node) *html.Node {
	m := &html.Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		m.Attr = make([]html.Attribute, len(n.Attr))
		copy(m.Attr, n.Attr)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		m.AppendChild(toHTMLNode(c))
	}
	return m
}

// renderNode serializes a single node (and its subtree) to HTML text.
func renderNode(n *Node) string {
	var buf strings.Builder
	if n.Type == html.DocumentNode {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			_ = html.Render(&buf, toHTMLNode(c))
		}
	} else {
		_ = html.Render(&buf, toHTMLNode(n))
	}
	return buf.String()
}

// renderChildren serializes only n's children, in order.
func renderChildren(n *Node) string {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, toHTMLNode(c))
	}
	return buf.String()
}

// renderStartTag serializes an element's start tag in the serializer's
// canonical form: lowercase name, double-quoted attribute values. The
// result may differ from the raw source tag; range arithmetic built on it
// is approximate.
func renderStartTag(n *Node) string {
	var buf strings.Builder
	buf.WriteByte('<')
	buf.WriteString(n.Data)
	for _, a := range n.Attr {
		buf.WriteByte(' ')
		if a.Namespace != "" {
			buf.WriteString(a.Namespace)
			buf.WriteByte(':')
		}
		buf.WriteString(a.Key)
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(a.Val))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
	return buf.String()
}
