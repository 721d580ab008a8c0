package htmldoc

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// nodeSpan is a flattened view of a node's start position, for comparing
// parse results.
type nodeSpan struct {
	Data   string
	Line   int
	Column int
	Start  int
	End    int
}

func collectSpans(root *Node) []nodeSpan {
	var out []nodeSpan
	Walk(root, func(n *Node) bool {
		switch loc := n.Location.(type) {
		case *SimpleLocation:
			out = append(out, nodeSpan{n.Data, loc.Line, loc.Column, loc.StartOffset, loc.EndOffset})
		case *TaggedLocation:
			st := loc.StartTag
			out = append(out, nodeSpan{n.Data, st.Line, st.Column, st.StartOffset, st.EndOffset})
		}
		return true
	})
	return out
}

func TestParseLocations(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []nodeSpan
	}{
		{
			name:  "simple element",
			input: `<div>Hello</div>`,
			want: []nodeSpan{
				{"div", 1, 1, 0, 5},
				{"Hello", 1, 6, 5, 10},
			},
		},
		{
			name:  "multiline element",
			input: "<div>\n  <span>Text</span>\n</div>",
			want: []nodeSpan{
				{"div", 1, 1, 0, 5},
				{"\n  ", 1, 6, 5, 8},
				{"span", 2, 3, 8, 14},
				{"Text", 2, 9, 14, 18},
				{"\n", 2, 20, 25, 26},
			},
		},
		{
			name:  "element with attributes",
			input: `<div id="test" class="foo">Content</div>`,
			want: []nodeSpan{
				{"div", 1, 1, 0, 27},
				{"Content", 1, 28, 27, 34},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.input), &ParseOptions{File: "test.html", Fragment: true})
			require.NoError(t, err)

			got := collectSpans(doc.Root)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("spans mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseEndTagLocations(t *testing.T) {
	doc, err := Parse(strings.NewReader("<div>\n  <span>Text</span>\n</div>"), &ParseOptions{Fragment: true})
	require.NoError(t, err)

	div := doc.Root.FirstChild
	require.Equal(t, "div", div.Data)
	loc := div.Location.(*TaggedLocation)
	require.NotNil(t, loc.EndTag)
	require.Equal(t, Pos{Line: 3, Column: 1, StartOffset: 26, EndOffset: 32}, *loc.EndTag)

	span, err := Find(doc.Root, `tag == "span"`)
	require.NoError(t, err)
	sloc := span.Location.(*TaggedLocation)
	require.NotNil(t, sloc.EndTag)
	require.Equal(t, Pos{Line: 2, Column: 13, StartOffset: 18, EndOffset: 25}, *sloc.EndTag)
}

func TestParseImpliedEndTags(t *testing.T) {
	doc, err := Parse(strings.NewReader("<ul><li>a<li>b</ul>"), &ParseOptions{Fragment: true})
	require.NoError(t, err)

	ul := doc.Root.FirstChild
	require.Equal(t, "ul", ul.Data)
	require.NotNil(t, ul.Location.(*TaggedLocation).EndTag)

	var lis []*Node
	for c := ul.FirstChild; c != nil; c = c.NextSibling {
		require.Equal(t, "li", c.Data, "li elements must be siblings, not nested")
		lis = append(lis, c)
	}
	require.Len(t, lis, 2)
	for _, li := range lis {
		require.Nil(t, li.Location.(*TaggedLocation).EndTag)
	}
}

func TestParseSelfClosingAndVoid(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<p>a<br>b<img src="x"/>c</p>`), &ParseOptions{Fragment: true})
	require.NoError(t, err)

	p := doc.Root.FirstChild
	require.Equal(t, "p", p.Data)

	// br and img must not swallow following content
	var kinds []string
	for c := p.FirstChild; c != nil; c = c.NextSibling {
		kinds = append(kinds, c.Data)
	}
	require.Equal(t, []string{"a", "br", "b", "img", "c"}, kinds)
}

func TestParseInjectsStructure(t *testing.T) {
	doc, err := ParseString("test.html", "<title>t</title><p>x</p>")
	require.NoError(t, err)
	require.Equal(t, "test.html", doc.File)
	require.Equal(t, "<title>t</title><p>x</p>", doc.Content)

	head := doc.Head()
	body := doc.Body()
	require.NotNil(t, head)
	require.NotNil(t, body)

	// injected wrappers carry no location metadata
	require.Nil(t, head.Parent.Location) // html
	require.Nil(t, head.Location)
	require.Nil(t, body.Location)

	title := head.FirstChild
	require.NotNil(t, title)
	require.Equal(t, "title", title.Data)
	require.NotNil(t, title.Location)

	p := body.FirstChild
	require.NotNil(t, p)
	require.Equal(t, "p", p.Data)
}

func TestParseKeepsExplicitStructure(t *testing.T) {
	doc, err := ParseString("test.html", "<html><head></head><body><p>x</p></body></html>")
	require.NoError(t, err)

	require.NotNil(t, doc.Head().Location)
	require.NotNil(t, doc.Body().Location)
}

func TestParseAttributeSpans(t *testing.T) {
	doc, err := Parse(strings.NewReader("<div id=\"a\"\n     class=\"b\">x</div>"), &ParseOptions{Fragment: true})
	require.NoError(t, err)

	div := doc.Root.FirstChild
	loc := div.Location.(*TaggedLocation)

	want := map[string]Pos{
		"id":    {Line: 1, Column: 6, StartOffset: 5, EndOffset: 11},
		"class": {Line: 2, Column: 6, StartOffset: 17, EndOffset: 26},
	}
	if diff := cmp.Diff(want, loc.Attrs); diff != "" {
		t.Errorf("attr spans mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDoctype(t *testing.T) {
	doc, err := Parse(strings.NewReader("<!DOCTYPE html>\n<p>x</p>"), &ParseOptions{Fragment: true})
	require.NoError(t, err)

	dt := doc.Root.FirstChild
	require.Equal(t, html.DoctypeNode, dt.Type)
	require.Equal(t, "html", dt.Data)
	require.NotNil(t, dt.Location)
}

func TestTextContent(t *testing.T) {
	doc, err := ParseString("test.html", "<p>a<b>b</b>c</p>")
	require.NoError(t, err)

	p, err := Find(doc.Root, `tag == "p"`)
	require.NoError(t, err)
	require.Equal(t, "abc", TextContent(p))
}
