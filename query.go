package htmldoc

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/net/html"
)

// Walk visits n and its descendants in document order. Returning false from
// fn skips the node's subtree.
func Walk(n *Node, fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, fn)
	}
}

// Query is a compiled node predicate. The expression sees the variables
// tag, kind, text and attrs, e.g.:
//
//	tag == "img" && attrs["alt"] == ""
type Query struct {
	prog *vm.Program
}

// CompileQuery compiles a predicate expression for matching nodes.
func CompileQuery(src string) (*Query, error) {
	prog, err := expr.Compile(src,
		expr.Env(queryEnv(nil)),
		expr.AsBool(),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: compile query: %w", err)
	}
	return &Query{prog: prog}, nil
}

// Match evaluates the predicate against a node.
func (q *Query) Match(n *Node) bool {
	out, err := expr.Run(q.prog, queryEnv(n))
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

func queryEnv(n *Node) map[string]any {
	env := map[string]any{
		"tag":   "",
		"kind":  "",
		"text":  "",
		"attrs": map[string]string{},
	}
	if n == nil {
		return env
	}
	env["tag"] = n.TagName()
	env["kind"] = kindName(n.Type)
	if n.Type == html.TextNode || n.Type == html.CommentNode {
		env["text"] = n.Data
	}
	if len(n.Attr) > 0 {
		attrs := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			attrs[a.Key] = a.Val
		}
		env["attrs"] = attrs
	}
	return env
}

func kindName(t html.NodeType) string {
	switch t {
	case html.ElementNode:
		return "element"
	case html.TextNode:
		return "text"
	case html.CommentNode:
		return "comment"
	case html.DoctypeNode:
		return "doctype"
	case html.DocumentNode:
		return "document"
	}
	return ""
}

// Find returns the first node under root matching the predicate
// expression, in document order.
func Find(root *Node, query string) (*Node, error) {
	q, err := CompileQuery(query)
	if err != nil {
		return nil, err
	}
	var found *Node
	Walk(root, func(n *Node) bool {
		if found != nil {
			return false
		}
		if q.Match(n) {
			found = n
			return false
		}
		return true
	})
	return found, nil
}

// FindAll returns every node under root matching the predicate expression,
// in document order.
func FindAll(root *Node, query string) ([]*Node, error) {
	q, err := CompileQuery(query)
	if err != nil {
		return nil, err
	}
	var out []*Node
	Walk(root, func(n *Node) bool {
		if q.Match(n) {
			out = append(out, n)
		}
		return true
	})
	return out, nil
}
