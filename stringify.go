package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

// syntheticTags is the fixed set of structural elements the parser injects
// when they are missing from the source. An element is synthetic iff it has
// a parent, no location metadata, and its tag is in this set.
var syntheticTags = map[string]bool{
	"html": true,
	"head": true,
	"body": true,
}

// Stringify reconstitutes the document's text. Any inline sub-documents
// passed in have their current serialized text merged back into their host
// nodes, and structural nodes the parser injected without source text are
// excised before serialization. The work happens on a private clone: the
// original tree, and any ranges already resolved against it, are never
// mutated.
func (d *Document) Stringify(inline ...InlineDocument) string {
	// Clone with an old-to-new map so the inline documents' host-node
	// back-references can be followed into the clone. Cloning the hosts
	// separately would leave those references dangling in the original
	// tree.
	clones := make(map[*Node]*Node)
	root := cloneTree(d.Root, clones)

	for _, sub := range inline {
		if sub == nil {
			continue
		}
		host := clones[sub.HostNode()]
		if host == nil {
			continue
		}
		embedInline(host, sub.Stringify())
	}

	exciseSynthetic(root)

	return renderNode(root)
}

// cloneTree deep-copies a subtree, recording every old-to-new pair in
// clones.
func cloneTree(n *Node, clones map[*Node]*Node) *Node {
	m := &Node{
		Type:      n.Type,
		DataAtom:  n.DataAtom,
		Data:      n.Data,
		Namespace: n.Namespace,
		Location:  n.Location,
	}
	if len(n.Attr) > 0 {
		m.Attr = make([]html.Attribute, len(n.Attr))
		copy(m.Attr, n.Attr)
	}
	clones[n] = m
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		m.AppendChild(cloneTree(c, clones))
	}
	return m
}

// embedInline replaces the host node's content with the sub-document's
// serialized text, reindented to the host's nesting level.
//
// TODO: infer the indentation from the host element's own line instead of
// assuming 2 spaces per level.
func embedInline(host *Node, text string) {
	level := host.depth() + 1

	var buf strings.Builder
	buf.WriteByte('\n')
	buf.WriteString(indentLines(text, strings.Repeat("  ", level)))
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat("  ", level-1))

	for host.FirstChild != nil {
		host.RemoveChild(host.FirstChild)
	}
	host.AppendChild(&Node{Type: html.TextNode, Data: buf.String()})
}

func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = indent + l
		}
	}
	return strings.Join(lines, "\n")
}

// exciseSynthetic removes parser-injected structural nodes, splicing their
// children into their parents at the same position so sibling order is
// preserved.
func exciseSynthetic(root *Node) {
	for {
		n := findSynthetic(root)
		if n == nil {
			return
		}
		spliceChildren(n)
	}
}

func findSynthetic(n *Node) *Node {
	if n.Parent != nil && n.Location == nil && n.Type == html.ElementNode && syntheticTags[n.Data] {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findSynthetic(c); found != nil {
			return found
		}
	}
	return nil
}
