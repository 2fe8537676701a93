package navm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputConstructorsSetType(t *testing.T) {
	assert.Equal(t, "IN", NewIN("x", nil).OutputType())
	assert.Equal(t, "OUT", NewOUT("x", nil).OutputType())
	assert.Equal(t, "ANSWER", NewANSWER("x", nil).OutputType())
	assert.Equal(t, "EXE", NewEXE("x", nil, nil).OutputType())
	assert.Equal(t, "ANTICIPATE", NewANTICIPATE("x", nil).OutputType())
	assert.Equal(t, "ACHIEVED", NewACHIEVED("x", nil).OutputType())
	assert.Equal(t, "INFO", NewINFO("x").OutputType())
	assert.Equal(t, "COMMENT", NewCOMMENT("x").OutputType())
	assert.Equal(t, "ERROR", NewERROR("x").OutputType())
	assert.Equal(t, "TERMINATED", NewTERMINATED("x").OutputType())
	assert.Equal(t, "OTHER", NewOTHER("x").OutputType())
}

func TestOutputRawContent(t *testing.T) {
	out := NewOUT("OUT: <a --> b>.", nil)
	assert.Equal(t, "OUT: <a --> b>.", out.RawContent())
}

func TestOutputCarriedNarsese(t *testing.T) {
	n, err := ParseNarsese("<a --> b>.")
	require.NoError(t, err)
	out := NewOUT("raw", &n)
	carried, ok := out.(OUT).CarriedNarsese()
	require.True(t, ok)
	assert.Equal(t, n.String(), carried.String())

	_, ok = NewOTHER("raw").(OTHER).CarriedNarsese()
	assert.False(t, ok)
}

func TestOutputJSONRoundTripIN(t *testing.T) {
	n, err := ParseNarsese("<a --> b>.")
	require.NoError(t, err)
	out := NewIN("IN: <a --> b>.", &n)

	data, err := json.Marshal(out)
	require.NoError(t, err)

	parsed, err := ParseOutputJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "IN", parsed.OutputType())
	assert.Equal(t, out.RawContent(), parsed.RawContent())

	carried, ok := parsed.(IN).CarriedNarsese()
	require.True(t, ok)
	assert.Equal(t, n.String(), carried.String())
}

func TestOutputJSONRoundTripEXEWithOperation(t *testing.T) {
	n, err := ParseNarsese("<(*, {SELF}) --> ^left>.")
	require.NoError(t, err)
	op := Operation{OperatorName: "left", Params: []Term{Atom{Prefix: "", Name: "SELF"}}}
	out := NewEXE("EXE: ^left executed", &n, &op)

	data, err := json.Marshal(out)
	require.NoError(t, err)

	parsed, err := ParseOutputJSON(data)
	require.NoError(t, err)
	exe, ok := parsed.(EXE)
	require.True(t, ok)

	carriedNarsese, ok := exe.CarriedNarsese()
	require.True(t, ok)
	assert.Equal(t, n.String(), carriedNarsese.String())

	carriedOp, ok := exe.CarriedOperation()
	require.True(t, ok)
	assert.Equal(t, "left", carriedOp.OperatorName)
	require.Len(t, carriedOp.Params, 1)
	assert.Equal(t, "SELF", carriedOp.Params[0].String())
}

func TestOutputJSONRoundTripUnclassified(t *testing.T) {
	out := NewUNCLASSIFIED("WEIRD", "WEIRD: something")
	data, err := json.Marshal(out)
	require.NoError(t, err)

	parsed, err := ParseOutputJSON(data)
	require.NoError(t, err)
	unclassified, ok := parsed.(UNCLASSIFIED)
	require.True(t, ok)
	assert.Equal(t, "WEIRD", unclassified.ObservedType)
}

func TestParseOutputJSONUnknownTypeFallsBackToUnclassified(t *testing.T) {
	parsed, err := ParseOutputJSON([]byte(`{"type":"SOMETHING_NEW","raw_content":"raw"}`))
	require.NoError(t, err)
	unclassified, ok := parsed.(UNCLASSIFIED)
	require.True(t, ok)
	assert.Equal(t, "SOMETHING_NEW", unclassified.ObservedType)
	assert.Equal(t, "raw", unclassified.RawContent())
}
