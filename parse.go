package htmldoc

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseOptions controls parsing.
type ParseOptions struct {
	// File is recorded on the document and on every resolved range.
	File string

	// Fragment disables the html/head/body structure injection, leaving
	// the tree exactly as it appears in the source.
	Fragment bool
}

// voidElements never have closing tags.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// impliedEndTags maps a tag to the set of open tags it implicitly closes
// when it starts. Covers the common omitted-end-tag cases; the full HTML5
// algorithm is not needed since unclosed elements resolve through the
// recursive fallback anyway.
var impliedEndTags = map[string][]string{
	"li":     {"li"},
	"dt":     {"dt", "dd"},
	"dd":     {"dt", "dd"},
	"p":      {"p"},
	"option": {"option"},
	"tr":     {"tr", "td", "th"},
	"td":     {"td", "th"},
	"th":     {"td", "th"},
	"tbody":  {"tr", "td", "th", "tbody", "thead", "tfoot"},
	"thead":  {"tr", "td", "th", "tbody", "thead", "tfoot"},
	"tfoot":  {"tr", "td", "th", "tbody", "thead", "tfoot"},
}

// headContent lists elements that belong to the head section when the
// parser has to synthesize document structure.
var headContent = map[string]bool{
	"title": true, "base": true, "link": true, "meta": true,
	"style": true, "script": true, "noscript": true, "template": true,
}

// Parse reads HTML from r and builds a location-annotated document tree.
// Every node that has corresponding source text carries LocationInfo with
// 1-based line/column and byte offsets; structural nodes injected to
// complete the html/head/body skeleton carry none.
func Parse(r io.Reader, opts *ParseOptions) (*Document, error) {
	if opts == nil {
		opts = &ParseOptions{}
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("htmldoc: read source: %w", err)
	}

	doc := &Node{Type: html.DocumentNode}
	stack := nodeStack{doc}

	z := html.NewTokenizer(bytes.NewReader(src))

	// Position of the token about to be read.
	offset := 0
	line, col := 1, 1

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				break
			}
			return nil, fmt.Errorf("htmldoc: tokenize: %w", z.Err())
		}

		raw := append([]byte(nil), z.Raw()...)
		pos := Pos{Line: line, Column: col, StartOffset: offset, EndOffset: offset + len(raw)}

		switch tt {
		case html.TextToken:
			n := &Node{
				Type:     html.TextNode,
				Data:     string(z.Text()),
				Location: &SimpleLocation{Pos: pos},
			}
			stack.top().AppendChild(n)

		case html.CommentToken:
			tok := z.Token()
			n := &Node{
				Type:     html.CommentNode,
				Data:     tok.Data,
				Location: &SimpleLocation{Pos: pos},
			}
			stack.top().AppendChild(n)

		case html.DoctypeToken:
			tok := z.Token()
			n := &Node{
				Type:     html.DoctypeNode,
				Data:     tok.Data,
				Location: &SimpleLocation{Pos: pos},
			}
			stack.top().AppendChild(n)

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			closeImplied(&stack, tok.Data)

			loc := &TaggedLocation{StartTag: pos}
			if len(tok.Attr) > 0 {
				names := make([]string, len(tok.Attr))
				for i, a := range tok.Attr {
					names[i] = a.Key
				}
				loc.Attrs = scanAttributeSpans(raw, pos, names)
			}
			n := &Node{
				Type:     html.ElementNode,
				DataAtom: atom.Lookup([]byte(tok.Data)),
				Data:     tok.Data,
				Attr:     tok.Attr,
				Location: loc,
			}
			stack.top().AppendChild(n)
			if tt == html.StartTagToken && !voidElements[tok.Data] {
				stack = append(stack, n)
			}

		case html.EndTagToken:
			tok := z.Token()
			// Find the matching open element; pop anything above it
			// without recording an end tag.
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].Data == tok.Data {
					if loc, ok := stack[i].Location.(*TaggedLocation); ok {
						end := pos
						loc.EndTag = &end
					}
					stack = stack[:i]
					break
				}
			}
		}

		offset += len(raw)
		if nl := bytes.Count(raw, []byte{'\n'}); nl > 0 {
			line += nl
			col = len(raw) - bytes.LastIndexByte(raw, '\n')
		} else {
			col += len(raw)
		}
	}

	if !opts.Fragment {
		injectStructure(doc)
	}

	return &Document{
		File:    opts.File,
		Content: string(src),
		Root:    doc,
	}, nil
}

// ParseString parses HTML from a string.
func ParseString(file, src string) (*Document, error) {
	return Parse(bytes.NewReader([]byte(src)), &ParseOptions{File: file})
}

// closeImplied pops open elements that the starting tag implicitly closes.
func closeImplied(stack *nodeStack, tag string) {
	closes, ok := impliedEndTags[tag]
	if !ok {
		return
	}
	for len(*stack) > 1 {
		top := stack.top().Data
		found := false
		for _, t := range closes {
			if t == top {
				found = true
				break
			}
		}
		if !found {
			return
		}
		stack.pop()
	}
}

// injectStructure completes the html/head/body skeleton the way browsers
// do. Elements created here have no location metadata and are excised
// again at serialization time.
func injectStructure(doc *Node) {
	htmlNode := findChildElement(doc, "html")
	if htmlNode == nil {
		htmlNode = &Node{Type: html.ElementNode, DataAtom: atom.Html, Data: "html"}
		for c := doc.FirstChild; c != nil; {
			next := c.NextSibling
			if c.Type != html.DoctypeNode {
				doc.RemoveChild(c)
				htmlNode.AppendChild(c)
			}
			c = next
		}
		doc.AppendChild(htmlNode)
	}

	headNode := findChildElement(htmlNode, "head")
	bodyNode := findChildElement(htmlNode, "body")
	if headNode != nil && bodyNode != nil {
		return
	}

	// Detach children that are not the head or body themselves, keeping
	// their order, then rebuild as head followed by body. Anything that
	// appeared after an explicit body stays in body territory.
	var loose, looseAfterBody []*Node
	seenBody := false
	for c := htmlNode.FirstChild; c != nil; {
		next := c.NextSibling
		if c == bodyNode {
			seenBody = true
		} else if c != headNode {
			htmlNode.RemoveChild(c)
			if seenBody {
				looseAfterBody = append(looseAfterBody, c)
			} else {
				loose = append(loose, c)
			}
		}
		c = next
	}
	if headNode == nil {
		headNode = &Node{Type: html.ElementNode, DataAtom: atom.Head, Data: "head"}
		htmlNode.InsertBefore(headNode, htmlNode.FirstChild)
	}
	if bodyNode == nil {
		bodyNode = &Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
		htmlNode.AppendChild(bodyNode)
	}

	inHead := true
	for _, c := range loose {
		if inHead {
			switch {
			case c.Type == html.ElementNode && headContent[c.Data]:
			case c.Type == html.CommentNode:
			case c.Type == html.TextNode && c.IsWhitespace():
			default:
				inHead = false
			}
		}
		if inHead {
			headNode.AppendChild(c)
		} else {
			bodyNode.AppendChild(c)
		}
	}
	for _, c := range looseAfterBody {
		bodyNode.AppendChild(c)
	}
}

func findChildElement(n *Node, tag string) *Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}
