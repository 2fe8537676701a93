package nal

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

func mustParseTerm(t *testing.T, s string) navm.Term {
	t.Helper()
	n, err := navm.ParseNarsese(s)
	require.NoError(t, err)
	return n.TermOf()
}

func TestSemanticEqualVariableRenaming(t *testing.T) {
	a := mustParseTerm(t, "<$x --> $y>")
	b := mustParseTerm(t, "<$foo --> $bar>")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSemanticEqualDistinctVariablesDoNotCollapse(t *testing.T) {
	a := mustParseTerm(t, "<$x --> $x>")
	b := mustParseTerm(t, "<$x --> $y>")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestSemanticEqualCommutativeConjunctionReorders(t *testing.T) {
	a := mustParseTerm(t, "(&&, a, b, c)")
	b := mustParseTerm(t, "(&&, c, a, b)")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSemanticEqualProductIsNotCommutative(t *testing.T) {
	a := mustParseTerm(t, "(*, a, b)")
	b := mustParseTerm(t, "(*, b, a)")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestSemanticEqualExtensionalSetIsCommutative(t *testing.T) {
	a := mustParseTerm(t, "{a, b, c}")
	b := mustParseTerm(t, "{c, b, a}")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSemanticEqualSimilarityCopulaSwaps(t *testing.T) {
	a := mustParseTerm(t, "<a <-> b>")
	b := mustParseTerm(t, "<b <-> a>")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSemanticEqualInheritanceCopulaDoesNotSwap(t *testing.T) {
	a := mustParseTerm(t, "<a --> b>")
	b := mustParseTerm(t, "<b --> a>")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.False(t, equal)
}

func TestSemanticEqualNestedCommutativeReorders(t *testing.T) {
	a := mustParseTerm(t, "(&&, <a --> b>, (||, x, y))")
	b := mustParseTerm(t, "(&&, (||, y, x), <a --> b>)")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSemanticEqualRenamingComposesWithReordering(t *testing.T) {
	a := mustParseTerm(t, "<(&&, <$1 --> lock>, <$2 --> key>) ==> <$1 --> (/, open, $2, _)>>")
	b := mustParseTerm(t, "<(&&, <$x --> key>, <$y --> lock>) ==> <$y --> (/, open, $x, _)>>")
	equal, err := SemanticEqual(a, b)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	term := mustParseTerm(t, "(&&, c, $x, <a --> b>)")
	once, err := Canonicalize(term)
	require.NoError(t, err)
	twice, err := Canonicalize(once)
	require.NoError(t, err)
	// go-cmp gives a field-level diff across the nested Compound/Statement
	// tree on failure; testify's reflect.DeepEqual-based assert.Equal only
	// reports "not equal" for a mismatch this deep.
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("canonicalization not idempotent (-once +twice):\n%s", diff)
	}
}

// TestSemanticEqualReflexiveRapid checks that every term generated by the
// narsese parser from a small grammar of random, syntactically valid
// strings is semantically equal to itself.
func TestSemanticEqualReflexiveRapid(t *testing.T) {
	atoms := []string{"a", "b", "c", "d"}
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.SampledFrom(atoms).Draw(rt, "atom")
		connector := rapid.SampledFrom([]string{"&&", "||", "&", "|"}).Draw(rt, "connector")
		other := rapid.SampledFrom(atoms).Draw(rt, "other")

		term := mustParseTerm(t, "("+connector+", "+name+", "+other+")")
		equal, err := SemanticEqual(term, term)
		require.NoError(rt, err)
		assert.True(rt, equal)
	})
}
