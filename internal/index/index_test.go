package index

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KWARC/llamapun/internal/c14n"
)

func openTest(t *testing.T) *Index {
	t.Helper()
	x, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = x.Close() })
	return x
}

func digest(t *testing.T, s string) c14n.Digest {
	t.Helper()
	d, err := c14n.Sum(c14n.BLAKE3, []byte(s))
	require.NoError(t, err)
	return d
}

func TestFormulas_PutAndList(t *testing.T) {
	x := openTest(t)
	d := digest(t, "<math><mi>x</mi></math>")
	other := digest(t, "<math><mi>y</mi></math>")

	require.NoError(t, x.PutFormula(FormulaEntry{Digest: d, DocID: "02", Address: "/html/body/p[2]/math"}, []byte("x")))
	require.NoError(t, x.PutFormula(FormulaEntry{Digest: d, DocID: "01", Address: "/html/body/p/math"}, []byte("x")))
	require.NoError(t, x.PutFormula(FormulaEntry{Digest: other, DocID: "01", Address: "/html/body/p/math[2]"}, []byte("y")))

	got, err := x.Formulas(d, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "01", got[0].DocID)
	assert.Equal(t, "02", got[1].DocID)
	assert.Equal(t, d.String(), got[0].Digest.String())

	limited, err := x.Formulas(d, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	n, err := x.CountFormula(d)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	distinct, err := x.DistinctFormulas()
	require.NoError(t, err)
	assert.Equal(t, 2, distinct)
}

func TestFormulas_Idempotent(t *testing.T) {
	x := openTest(t)
	d := digest(t, "f")
	e := FormulaEntry{Digest: d, DocID: "a", Address: "/p/math"}
	require.NoError(t, x.PutFormula(e, []byte("first")))
	require.NoError(t, x.PutFormula(e, []byte("second")))

	n, err := x.CountFormula(d)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	canon, ok, err := x.Canonical(d)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", string(canon))
}

func TestFormulas_Unknown(t *testing.T) {
	x := openTest(t)
	d := digest(t, "missing")

	got, err := x.Formulas(d, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, ok, err := x.Canonical(d)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutFormula_Invalid(t *testing.T) {
	x := openTest(t)
	assert.Error(t, x.PutFormula(FormulaEntry{DocID: "a"}, nil))
	assert.Error(t, x.PutFormula(FormulaEntry{Digest: digest(t, "z")}, nil))
}

func TestDocuments_MarkAndSeen(t *testing.T) {
	x := openTest(t)

	_, ok, err := x.SeenDocument("h1")
	require.NoError(t, err)
	assert.False(t, ok)

	prev, seen, err := x.MarkDocument("h1", "doc-1")
	require.NoError(t, err)
	assert.False(t, seen)
	assert.Empty(t, prev)

	prev, seen, err = x.MarkDocument("h1", "doc-2")
	require.NoError(t, err)
	assert.True(t, seen)
	assert.Equal(t, "doc-1", prev)

	id, ok, err := x.SeenDocument("h1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "doc-1", id)

	require.NoError(t, x.ForgetDocument("h1"))
	_, ok, err = x.SeenDocument("h1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_OnDisk(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "idx")
	x, err := Open(dir, nil)
	require.NoError(t, err)
	d := digest(t, "persist")
	require.NoError(t, x.PutFormula(FormulaEntry{Digest: d, DocID: "a", Address: "/m"}, []byte("c")))
	require.NoError(t, x.Close())

	x, err = Open(dir, nil)
	require.NoError(t, err)
	defer x.Close()
	n, err := x.CountFormula(d)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestClosed(t *testing.T) {
	x, err := OpenInMemory()
	require.NoError(t, err)
	require.NoError(t, x.Close())
	_, err = x.DistinctFormulas()
	assert.ErrorIs(t, err, ErrClosed)
}
