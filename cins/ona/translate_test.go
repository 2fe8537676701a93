package ona

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

func TestInputTranslatorVOL(t *testing.T) {
	text, err := InputTranslator(navm.VOL{N: 80})
	require.NoError(t, err)
	assert.Equal(t, "*volume=80", text)
}

func TestInputTranslatorREGAssignsIncreasingSlots(t *testing.T) {
	table := &operatorTable{byName: map[string]int{}}
	slot1, ok := table.register("left")
	require.True(t, ok)
	slot2, ok := table.register("right")
	require.True(t, ok)
	assert.NotEqual(t, slot1, slot2)

	// Re-registering the same name returns the same slot.
	again, ok := table.register("left")
	require.True(t, ok)
	assert.Equal(t, slot1, again)
}

func TestInputTranslatorREGRefusesPastCapacity(t *testing.T) {
	table := &operatorTable{byName: map[string]int{}}
	for i := 0; i < operatorTableSize; i++ {
		_, ok := table.register(fmt.Sprintf("op%d", i))
		require.True(t, ok)
	}
	_, ok := table.register("one-too-many")
	assert.False(t, ok)
}

func TestOutputTranslatorTestFailedIsTerminated(t *testing.T) {
	out, err := OutputTranslator("Test failed.")
	require.NoError(t, err)
	assert.Equal(t, "TERMINATED", out.OutputType())
}

func TestOutputTranslatorInputTag(t *testing.T) {
	out, err := OutputTranslator("Input: <a --> b>. Priority=1.000000 Truth: frequency=1.000000, confidence=0.900000")
	require.NoError(t, err)
	require.Equal(t, "IN", out.OutputType())
	n, ok := out.(navm.IN).CarriedNarsese()
	require.True(t, ok)
	require.NotNil(t, n.Sentence)
	assert.Equal(t, []string{"1.000000", "0.900000"}, n.Sentence.Truth)
}

func TestOutputTranslatorAnswerCarriesNativeTruth(t *testing.T) {
	out, err := OutputTranslator("Answer: <B --> C>. creationTime=2 Truth: frequency=1.000000, confidence=0.447514")
	require.NoError(t, err)
	require.Equal(t, "ANSWER", out.OutputType())
	n, ok := out.(navm.ANSWER).CarriedNarsese()
	require.True(t, ok)
	require.NotNil(t, n.Sentence)
	assert.Equal(t, ".", n.Sentence.Punctuation)
	assert.Equal(t, []string{"1.000000", "0.447514"}, n.Sentence.Truth)
}

func TestReformNarseseStripsOrnament(t *testing.T) {
	got := reformNarsese("<B --> C>. creationTime=2 Truth: frequency=1.000000, confidence=0.447514")
	assert.Equal(t, "<B --> C>. %1.000000;0.447514%", got)
}

func TestOutputTranslatorAnswerNoneIsOther(t *testing.T) {
	out, err := OutputTranslator("Answer: None.")
	require.NoError(t, err)
	assert.Equal(t, "OTHER", out.OutputType())
}

func TestOutputTranslatorUnknownDefaultsToUnclassified(t *testing.T) {
	out, err := OutputTranslator("Remind: reminder text")
	require.NoError(t, err)
	_, ok := out.(navm.UNCLASSIFIED)
	assert.True(t, ok)
}

func TestRewriteDialectSpaceSeparatedProduct(t *testing.T) {
	got := RewriteDialect("(* {SELF} x)")
	assert.Equal(t, "(*, {SELF}, x)", got)
}

func TestRewriteDialectInfixBinaryCompound(t *testing.T) {
	got := RewriteDialect("(a * b)")
	assert.Equal(t, "(*, a, b)", got)
}

func TestRewriteDialectPassesThroughUnmatched(t *testing.T) {
	got := RewriteDialect("<a --> b>")
	assert.Equal(t, "<a --> b>", got)
}

func TestSplitTopLevelSpacesRespectsNesting(t *testing.T) {
	got := splitTopLevelSpaces("{SELF} (*, a, b) c")
	assert.Equal(t, []string{"{SELF}", "(*, a, b)", "c"}, got)
}

func TestRewriteDialectRecursesIntoNestedSpan(t *testing.T) {
	got := RewriteDialect("<(* {SELF} x) --> ^pick>")
	assert.Equal(t, "<(*, {SELF}, x) --> ^pick>", got)
}

func TestOutputTranslatorExecutedWithArgs(t *testing.T) {
	out, err := OutputTranslator("^pick executed with args (* {SELF})")
	require.NoError(t, err)
	require.Equal(t, "EXE", out.OutputType())
	exe, ok := out.(navm.EXE)
	require.True(t, ok)
	op, ok := exe.CarriedOperation()
	require.True(t, ok)
	assert.Equal(t, "pick", op.OperatorName)
	require.Len(t, op.Params, 1)
}

func TestOutputTranslatorDecisionExpectationIsAnticipate(t *testing.T) {
	out, err := OutputTranslator("decision expectation=0.520000 implication: <(* {SELF} x) =/> <{SELF} --> [good]>> dt=20.000000")
	require.NoError(t, err)
	require.Equal(t, "ANTICIPATE", out.OutputType())
	anticipate, ok := out.(navm.ANTICIPATE)
	require.True(t, ok)
	n, ok := anticipate.CarriedNarsese()
	require.True(t, ok)
	stmt, ok := n.TermOf().(navm.Statement)
	require.True(t, ok)
	assert.Equal(t, "=/>", stmt.Copula)
}

func TestOutputTranslatorOperatorIndexOutOfBoundsIsError(t *testing.T) {
	out, err := OutputTranslator("Operator index out of bounds")
	require.NoError(t, err)
	assert.Equal(t, "ERROR", out.OutputType())
}
