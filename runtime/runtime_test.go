package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARCJ137442/BabelNAR-go/navm"
	"github.com/ARCJ137442/BabelNAR-go/process"
)

func newMockRuntime() (*Runtime, *process.MockChannel) {
	ch := process.NewMockChannel()
	return New(ch, navm.DefaultTranslators()), ch
}

func TestRuntimeInputCmdWritesTranslatedLine(t *testing.T) {
	rt, ch := newMockRuntime()
	require.NoError(t, rt.InputCmd(navm.CYC{N: 5}))

	buf := make([]byte, 64)
	n, err := ch.In.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "CYC 5\n", string(buf[:n]))
}

func TestRuntimeInputCmdSuppressedOnEmptyTranslation(t *testing.T) {
	rt := New(process.NewMockChannel(), navm.IoTranslators{
		In:  func(navm.Cmd) (string, error) { return "", nil },
		Out: func(string) (navm.Output, error) { return navm.NewOTHER(""), nil },
	})
	assert.NoError(t, rt.InputCmd(navm.CYC{N: 1}))
}

func TestRuntimeInputCmdUnsupportedIsWarnAndProceed(t *testing.T) {
	rt := New(process.NewMockChannel(), navm.IoTranslators{
		In:  func(c navm.Cmd) (string, error) { return "", navm.ErrUnsupportedInput{Cmd: c} },
		Out: func(string) (navm.Output, error) { return navm.NewOTHER(""), nil },
	})
	assert.NoError(t, rt.InputCmd(navm.CYC{N: 1}))
}

func TestRuntimeFetchOutputTranslatesLine(t *testing.T) {
	rt, ch := newMockRuntime()
	require.NoError(t, ch.Out.WriteLine("hello"))

	out, err := rt.FetchOutput()
	require.NoError(t, err)
	assert.Equal(t, "OTHER", out.OutputType())
	assert.Equal(t, "hello", out.RawContent())
}

func TestRuntimeStatusFlipsOnTerminatedOutput(t *testing.T) {
	ch := process.NewMockChannel()
	rt := New(ch, navm.IoTranslators{
		In: func(c navm.Cmd) (string, error) { return c.Text(), nil },
		Out: func(line string) (navm.Output, error) {
			if line == "DIE" {
				return navm.NewTERMINATED(line), nil
			}
			return navm.NewOTHER(line), nil
		},
	})
	require.True(t, rt.Status().IsRunning())
	require.NoError(t, ch.Out.WriteLine("DIE"))

	out, err := rt.FetchOutput()
	require.NoError(t, err)
	assert.Equal(t, "TERMINATED", out.OutputType())
	assert.True(t, rt.Status().IsTerminated())
}

func TestRuntimeStatusNeverRegressesFromTerminated(t *testing.T) {
	rt, _ := newMockRuntime()
	require.NoError(t, rt.Terminate())
	assert.True(t, rt.Status().IsTerminated())

	rt.setStatus(Running())
	assert.True(t, rt.Status().IsTerminated(), "status must not regress once terminal")
}

func TestRuntimeTryFetchOutputNonBlocking(t *testing.T) {
	rt, _ := newMockRuntime()
	out, ok, err := rt.TryFetchOutput()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, out)
}

func TestRuntimePidDelegatesToChannel(t *testing.T) {
	rt, _ := newMockRuntime()
	assert.Equal(t, -1, rt.Pid())
}
