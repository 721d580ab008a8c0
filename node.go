// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
//
// Modifications:
//  - Node carries parser location metadata and splice support for
//    structural-node excision.

package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const whitespace = " \t\r\n\f"

// Node is a member of the parsed tree. The tree links replicate
// golang.org/x/net/html.Node so the usual traversal patterns apply; on top
// of that each node carries the parser's location metadata, which is what
// range resolution works from.
type Node struct {
	Parent, FirstChild, LastChild, PrevSibling, NextSibling *Node

	Type     html.NodeType
	DataAtom atom.Atom

	// Data is the tag name for elements, or the content for text and
	// comment nodes.
	Data      string
	Namespace string

	Attr []html.Attribute

	// Location is nil for nodes the parser injected without any
	// corresponding source text.
	Location LocationInfo
}

// TagName returns the element's tag name, or "" for non-elements.
func (n *Node) TagName() string {
	if n.Type != html.ElementNode {
		return ""
	}
	return n.Data
}

// AttrVal returns the value of the named attribute and whether it exists.
func (n *Node) AttrVal(name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func (n *Node) IsWhitespace() bool {
	return strings.TrimLeft(n.Data, whitespace) == ""
}

// InsertBefore inserts newChild as a child of n, immediately before oldChild
// in the sequence of n's children. oldChild may be nil, in which case
// newChild is appended to the end of n's children.
//
// It will panic if newChild already has a parent or siblings.
func (n *Node) InsertBefore(newChild, oldChild *Node) {
	if newChild.Parent != nil || newChild.PrevSibling != nil || newChild.NextSibling != nil {
		panic("htmldoc: InsertBefore called for an attached child Node")
	}
	var prev, next *Node
	if oldChild != nil {
		prev, next = oldChild.PrevSibling, oldChild
	} else {
		prev = n.LastChild
	}
	if prev != nil {
		prev.NextSibling = newChild
	} else {
		n.FirstChild = newChild
	}
	if next != nil {
		next.PrevSibling = newChild
	} else {
		n.LastChild = newChild
	}
	newChild.Parent = n
	newChild.PrevSibling = prev
	newChild.NextSibling = next
}

// AppendChild adds a node c as a child of n.
//
// It will panic if c already has a parent or siblings.
func (n *Node) AppendChild(c *Node) {
	if c.Parent != nil || c.PrevSibling != nil || c.NextSibling != nil {
		panic("htmldoc: AppendChild called for an attached child Node")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = c
	} else {
		n.FirstChild = c
	}
	n.LastChild = c
	c.Parent = n
	c.PrevSibling = last
}

// RemoveChild removes a node c that is a child of n. Afterwards, c will have
// no parent and no siblings.
//
// It will panic if c's parent is not n.
func (n *Node) RemoveChild(c *Node) {
	if c.Parent != n {
		panic("htmldoc: RemoveChild called for a non-child Node")
	}
	if n.FirstChild == c {
		n.FirstChild = c.NextSibling
	}
	if c.NextSibling != nil {
		c.NextSibling.PrevSibling = c.PrevSibling
	}
	if n.LastChild == c {
		n.LastChild = c.PrevSibling
	}
	if c.PrevSibling != nil {
		c.PrevSibling.NextSibling = c.NextSibling
	}
	c.Parent = nil
	c.PrevSibling = nil
	c.NextSibling = nil
}

// spliceChildren moves all of src's children into src's own parent at the
// position src occupied, then removes src. Sibling order is preserved.
func spliceChildren(src *Node) {
	parent := src.Parent
	next := src.NextSibling
	for {
		child := src.FirstChild
		if child == nil {
			break
		}
		src.RemoveChild(child)
		parent.InsertBefore(child, next)
	}
	parent.RemoveChild(src)
}

// depth returns the number of element ancestors of n.
func (n *Node) depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			d++
		}
	}
	return d
}

// nodeStack is a stack of nodes.
type nodeStack []*Node

// pop pops the stack. It will panic if s is empty.
func (s *nodeStack) pop() *Node {
	i := len(*s)
	n := (*s)[i-1]
	*s = (*s)[:i-1]
	return n
}

// top returns the most recently pushed node, or nil if s is empty.
func (s *nodeStack) top() *Node {
	if i := len(*s); i > 0 {
		return (*s)[i-1]
	}
	return nil
}
