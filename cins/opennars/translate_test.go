package opennars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

func TestInputTranslatorCYC(t *testing.T) {
	text, err := InputTranslator(navm.CYC{N: 20})
	require.NoError(t, err)
	assert.Equal(t, "20", text)
}

func TestInputTranslatorVOL(t *testing.T) {
	text, err := InputTranslator(navm.VOL{N: 0})
	require.NoError(t, err)
	assert.Equal(t, "*volume=0", text)
}

func TestInputTranslatorREMSuppressed(t *testing.T) {
	text, err := InputTranslator(navm.REM{Comment: "note"})
	require.NoError(t, err)
	assert.Equal(t, "", text)
}

func TestInputTranslatorEXIUnsupported(t *testing.T) {
	_, err := InputTranslator(navm.EXI{})
	assert.Error(t, err)
	var unsupported navm.ErrUnsupportedInput
	assert.ErrorAs(t, err, &unsupported)
}

func TestOutputTranslatorDerived(t *testing.T) {
	out, err := OutputTranslator("Derived: <a --> b>. %1.0;0.9%")
	require.NoError(t, err)
	assert.Equal(t, "OUT", out.OutputType())
}

func TestOutputTranslatorAnswerNoneIsOther(t *testing.T) {
	out, err := OutputTranslator("Answer: None.")
	require.NoError(t, err)
	assert.Equal(t, "OTHER", out.OutputType())
}

func TestOutputTranslatorOutOfOperatorSlotsIsTerminated(t *testing.T) {
	out, err := OutputTranslator("Error: more than 2 arguments for an operator")
	require.NoError(t, err)
	assert.Equal(t, "TERMINATED", out.OutputType())
}

func TestOutputTranslatorUnknownTagIsUnclassified(t *testing.T) {
	out, err := OutputTranslator("Weird: something")
	require.NoError(t, err)
	unclassified, ok := out.(navm.UNCLASSIFIED)
	require.True(t, ok)
	assert.Equal(t, "Weird", unclassified.ObservedType)
}

func TestRewriteOperatorShorthandWithArgs(t *testing.T) {
	got := RewriteOperatorShorthand("(^left, {SELF}, x)")
	assert.Equal(t, "<(*, {SELF}, x) --> ^left>", got)
}

func TestRewriteOperatorShorthandNoArgs(t *testing.T) {
	got := RewriteOperatorShorthand("(^left)")
	assert.Equal(t, "<(*,) --> ^left>", got)

	// The rewritten text must actually parse as a Compound with a
	// recognized connector, not error out as a bad parenthesized group.
	_, err := navm.ParseNarsese(got + ".")
	require.NoError(t, err)
}

func TestRewriteOperatorShorthandPassesThroughNonMatch(t *testing.T) {
	got := RewriteOperatorShorthand("<a --> b>")
	assert.Equal(t, "<a --> b>", got)
}

func TestOutputTranslatorEXEParsesOperation(t *testing.T) {
	out, err := OutputTranslator("EXE: $1.00;0.99;1.00$ ^left([{SELF}])=null")
	require.NoError(t, err)
	require.Equal(t, "EXE", out.OutputType())
	exe, ok := out.(navm.EXE)
	require.True(t, ok)
	op, ok := exe.CarriedOperation()
	require.True(t, ok)
	assert.Equal(t, "left", op.OperatorName)
	require.Len(t, op.Params, 1)
	assert.Equal(t, "{SELF}", op.Params[0].String())
}

func TestOutputTranslatorEXEWithMultipleArgs(t *testing.T) {
	out, err := OutputTranslator("EXE: $0.50;0.50;0.50$ ^pick([{SELF}, x])=null")
	require.NoError(t, err)
	exe, ok := out.(navm.EXE)
	require.True(t, ok)
	op, ok := exe.CarriedOperation()
	require.True(t, ok)
	assert.Equal(t, "pick", op.OperatorName)
	require.Len(t, op.Params, 2)
}
