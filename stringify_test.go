package htmldoc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// cssStub stands in for an embedded-language document model: only its
// serialized text and host back-reference are consumed.
type cssStub struct {
	text string
	host *Node
}

func (c *cssStub) Stringify(_ ...InlineDocument) string { return c.text }
func (c *cssStub) HostNode() *Node                      { return c.host }

func TestStringifyRoundTrip(t *testing.T) {
	src := "<!DOCTYPE html>\n" +
		"<html>\n" +
		"<head>\n" +
		"<title>t</title>\n" +
		"</head>\n" +
		"<body>\n" +
		"<p>a</p>\n" +
		"<!-- c -->\n" +
		"</body>\n" +
		"</html>"
	doc := mustParse(t, src)

	got := doc.Stringify()
	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestStringifyExcisesSyntheticNodes(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "plain paragraph", input: "<p>hi</p>"},
		{name: "head and body content", input: "<title>t</title><p>x</p>"},
		{name: "siblings keep order", input: "<p>one</p><p>two</p><p>three</p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.input)
			require.Nil(t, doc.Body().Location, "wrapper must be synthetic in this test")
			require.Equal(t, tt.input, doc.Stringify())
		})
	}
}

func TestStringifyMergesInlineDocument(t *testing.T) {
	src := "<html>\n" +
		"<head>\n" +
		"<style>a { color: red }</style>\n" +
		"</head>\n" +
		"<body>\n" +
		"</body>\n" +
		"</html>"
	doc := mustParse(t, src)

	style := mustFind(t, doc, `tag == "style"`)
	css := &cssStub{text: "a { color: blue }", host: style}

	want := "<html>\n" +
		"<head>\n" +
		"<style>\n" +
		"      a { color: blue }\n" +
		"    </style>\n" +
		"</head>\n" +
		"<body>\n" +
		"</body>\n" +
		"</html>"
	got := doc.Stringify(css)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged output mismatch (-want +got):\n%s", diff)
	}
}

func TestStringifyDoesNotMutateOriginal(t *testing.T) {
	src := "<html>\n" +
		"<head>\n" +
		"<style>a { color: red }</style>\n" +
		"</head>\n" +
		"<body>\n" +
		"</body>\n" +
		"</html>"
	doc := mustParse(t, src)

	style := mustFind(t, doc, `tag == "style"`)
	before, ok := Resolve(style)
	require.True(t, ok)

	_ = doc.Stringify(&cssStub{text: "a { color: blue }", host: style})

	// original tree and its resolved ranges are untouched
	require.Equal(t, "a { color: red }", style.FirstChild.Data)
	after, ok := Resolve(style)
	require.True(t, ok)
	require.Equal(t, before, after)

	// a second, inline-free stringify reproduces the source
	require.Equal(t, src, doc.Stringify())
}

func TestStringifyNestedInlineDocument(t *testing.T) {
	src := "<html>\n" +
		"<head>\n" +
		"</head>\n" +
		"<body>\n" +
		"<template>old</template>\n" +
		"</body>\n" +
		"</html>"
	doc := mustParse(t, src)

	host := mustFind(t, doc, `tag == "template"`)
	inline, err := NewInlineDocument("inline.html", "<b>x</b>", host)
	require.NoError(t, err)
	require.Equal(t, host, inline.HostNode())

	// edit the inline document, then re-embed
	b := mustFindIn(t, inline, `tag == "b"`)
	b.FirstChild.Data = "y"

	want := "<html>\n" +
		"<head>\n" +
		"</head>\n" +
		"<body>\n" +
		"<template>\n" +
		"      <b>y</b>\n" +
		"    </template>\n" +
		"</body>\n" +
		"</html>"
	require.Equal(t, want, doc.Stringify(inline))
}

func TestStringifyIgnoresForeignHost(t *testing.T) {
	doc := mustParse(t, "<p>hi</p>")
	other := mustParse(t, "<style>a{}</style>")

	// a host node from a different tree is not in the clone map
	css := &cssStub{text: "b{}", host: mustFind(t, other, `tag == "style"`)}
	require.Equal(t, "<p>hi</p>", doc.Stringify(css))
}

func mustFindIn(t *testing.T, doc *Document, query string) *Node {
	t.Helper()
	n, err := Find(doc.Root, query)
	require.NoError(t, err)
	require.NotNil(t, n)
	return n
}
