package ams

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KWARC/llamapun/internal/doctree"
	"github.com/KWARC/llamapun/internal/parser"
)

const theoremXHTML = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml">
<head><title>Primes</title></head>
<body>
<div class="ltx_theorem ltx_theorem_lem" id="Thmlem1">
  <h6 class="ltx_title ltx_runin ltx_title_theorem">Lemma 1.</h6>
  <div class="ltx_para"><p class="ltx_p">Every prime is odd or two.</p></div>
</div>
<div class="ltx_proof">
  <div class="ltx_para"><p class="ltx_p">Trivial.</p></div>
</div>
</body>
</html>`

func parse(t *testing.T, name, src string) *doctree.Tree {
	t.Helper()
	p, err := parser.ForFile(name)
	require.NoError(t, err)
	tree, err := p.Parse(strings.NewReader(src), name)
	require.NoError(t, err)
	return tree
}

func TestClassToEnv(t *testing.T) {
	tests := []struct {
		class string
		env   Env
		ok    bool
	}{
		{"", "", false},
		{"ltx_para", "", false},
		{"ltx_proof", Proof, true},
		{"ltx_proof ltx_align_left", "", false},
		{"ltx_theorem", Theorem, true},
		{"ltx_theorem ltx_theorem_lemma", Lemma, true},
		{"ltx_theorem ltx_theorem_lem", Lemma, true},
		{"ltx_theorem ltx_theorem_thm", Theorem, true},
		{"ltx_theorem ltx_theorem_defn", Definition, true},
		{"ltx_theorem ltx_theorem_thanks", Acknowledgement, true},
		{"ltx_theorem ltx_theorem_heuristic", Algorithm, true},
		{"ltx_theorem ltx_theorem_qwertyuiop", Other, true},
	}
	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			env, ok := ClassToEnv(tt.class)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.env, env)
		})
	}
}

func TestNormalizeEnv(t *testing.T) {
	assert.Equal(t, Corollary, NormalizeEnv("corollary"))
	assert.Equal(t, Conjecture, NormalizeEnv("conjecture"))
	assert.Equal(t, Remark, NormalizeEnv("remark"))
	assert.Equal(t, Proposition, NormalizeEnv("prop"))
	assert.Equal(t, Other, NormalizeEnv("Lemma"), "names are matched as written")
	assert.Equal(t, Other, NormalizeEnv(""))
}

func TestAliasesAreUnique(t *testing.T) {
	seen := map[string]Env{}
	for env, names := range aliases {
		for _, n := range names {
			prev, dup := seen[n]
			assert.False(t, dup, "%q maps to both %s and %s", n, prev, env)
			seen[n] = env
		}
	}
	assert.Len(t, byAlias, len(seen))
}

func TestHasMarkup(t *testing.T) {
	assert.True(t, HasMarkup(parse(t, "primes.xhtml", theoremXHTML)))
	assert.False(t, HasMarkup(parse(t, "plain.html", `<html><body><div class="ltx_para"><p>Plain.</p></div></body></html>`)))
	assert.False(t, HasMarkup(parse(t, "proof.html", `<html><body><div class="ltx_proof"><p>Only a proof.</p></div></body></html>`)))
}
