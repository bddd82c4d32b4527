package doctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() (*Tree, map[string]NodeID) {
	t := New("sample")
	ids := map[string]NodeID{}
	html := t.AppendElement(t.Root(), "", "", "html", nil)
	body := t.AppendElement(html, "", "", "body", nil)
	p := t.AppendElement(body, "", "", "p", []Attr{{Local: "class", Value: "ltx_para  lead"}})
	ids["p"] = p
	ids["text1"] = t.AppendText(p, "Let ")
	m := t.AppendElement(p, NamespaceMathML, "m", "math", []Attr{
		{Space: NamespaceXMLNS, Prefix: "xmlns", Local: "m", Value: NamespaceMathML},
		{Local: "alttext", Value: "x"},
	})
	ids["math"] = m
	mi := t.AppendElement(m, NamespaceMathML, "m", "mi", nil)
	ids["mi"] = mi
	t.AppendText(mi, "x")
	ids["text2"] = t.AppendText(p, " be ")
	t.AppendText(p, "given.")
	t.AppendComment(body, "note")
	ids["html"], ids["body"] = html, body
	return t, ids
}

func TestTree_Structure(t *testing.T) {
	tree, ids := sample()

	assert.Equal(t, ids["html"], tree.DocumentElement())
	assert.Equal(t, ElementNode, tree.Kind(ids["p"]))
	assert.Equal(t, []string{"ltx_para", "lead"}, tree.ClassNames(ids["p"]))
	assert.Len(t, tree.Children(ids["p"]), 3, "adjacent text should merge")
	assert.Equal(t, " be given.", tree.Data(ids["text2"]))
	assert.Equal(t, "Let x be given.", tree.TextContent(ids["p"]))
	assert.Equal(t, NamespaceMathML, tree.Namespace(ids["mi"]))
	assert.Equal(t, 5, tree.Depth(ids["mi"]))

	txt, ok := tree.SimpleText(ids["mi"])
	require.True(t, ok)
	assert.Equal(t, "x", txt)
	_, ok = tree.SimpleText(ids["p"])
	assert.False(t, ok)

	v, ok := tree.Attr(ids["math"], "alttext")
	require.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = tree.Attr(ids["math"], "m")
	assert.False(t, ok, "namespace declarations are not plain attributes")

	assert.Equal(t, ids["mi"], tree.FindElement(ids["body"], "mi"))
	assert.Equal(t, NoNode, tree.FindElement(ids["body"], "table"))
}

func TestSelect(t *testing.T) {
	tree, ids := sample()

	got, err := Select(tree, "//*[local-name()='math']")
	require.NoError(t, err)
	assert.Equal(t, []NodeID{ids["math"]}, got)

	got, err = Select(tree, "/html/body/p/text()")
	require.NoError(t, err)
	assert.Equal(t, []NodeID{ids["text1"], ids["text2"]}, got)

	got, err = Select(tree, "//p[contains(@class,'lead')]")
	require.NoError(t, err)
	assert.Equal(t, []NodeID{ids["p"]}, got)

	got, err = SelectFrom(tree, ids["math"], "*")
	require.NoError(t, err)
	assert.Equal(t, []NodeID{ids["mi"]}, got)

	_, err = Select(tree, "//[")
	assert.Error(t, err)
}
