package runtime

import (
	"fmt"
	"sync"

	"github.com/ARCJ137442/BabelNAR-go/navm"
	"github.com/ARCJ137442/BabelNAR-go/process"
)

// Runtime composes a subprocess channel with an InputTranslator/
// OutputTranslator pair into the NAVM command/output contract.
type Runtime struct {
	channel      process.ChannelLike
	translators  navm.IoTranslators
	mu           sync.RWMutex
	status       Status
}

// New wraps an already-spawned channel and translator pair into a running
// Runtime. Used by Launcher.Launch; exported so tests can wire a
// process.MockChannel directly.
func New(channel process.ChannelLike, translators navm.IoTranslators) *Runtime {
	return &Runtime{channel: channel, translators: translators, status: Running()}
}

// InputCmd translates cmd and writes it to the channel. A translation that
// yields the empty string is the suppression sentinel: it returns success
// without writing anything.
func (r *Runtime) InputCmd(cmd navm.Cmd) error {
	text, err := r.translators.In(cmd)
	if err != nil {
		var unsupported navm.ErrUnsupportedInput
		if asUnsupported(err, &unsupported) {
			// Unsupported input is a warn-and-proceed no-op, not a hard
			// failure.
			return nil
		}
		return err
	}
	if text == "" {
		return nil
	}
	return r.channel.WriteLine(text)
}

func asUnsupported(err error, target *navm.ErrUnsupportedInput) bool {
	u, ok := err.(navm.ErrUnsupportedInput)
	if ok {
		*target = u
	}
	return ok
}

// FetchOutput blocks for the next line, translates it, and, if the
// translated variant is TERMINATED, flips Status to Terminated(Err) before
// returning: any concurrent Status() call sees the flip no later than this
// call's return, so a consumer loop can exit promptly.
func (r *Runtime) FetchOutput() (navm.Output, error) {
	line, err := r.channel.ReadLine()
	if err != nil {
		r.setStatus(TerminatedErr(err))
		return nil, err
	}
	return r.translateAndMaybeTerminate(line)
}

// TryFetchOutput is the non-blocking variant of FetchOutput.
func (r *Runtime) TryFetchOutput() (navm.Output, bool, error) {
	line, ok := r.channel.TryReadLine()
	if !ok {
		return nil, false, nil
	}
	out, err := r.translateAndMaybeTerminate(line)
	return out, true, err
}

func (r *Runtime) translateAndMaybeTerminate(line string) (navm.Output, error) {
	out, err := r.translators.Out(line)
	if err != nil {
		// A parse failure is surfaced as an ERROR-variant Output to
		// preserve observability, not dropped. A dialect translator that
		// fails to parse still returns a non-nil Output (typically
		// navm.NewERROR); if it returned none at all, fall back to one
		// here so the caller always gets something to observe.
		if out == nil {
			out = navm.NewERROR(line)
		}
		return out, navm.ErrParse{Raw: line, Cause: err}
	}
	if _, isTerminated := out.(navm.TERMINATED); isTerminated {
		r.setStatus(TerminatedErr(fmt.Errorf("terminated: %s", out.RawContent())))
	}
	return out, nil
}

// Status returns the current Status.
func (r *Runtime) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

func (r *Runtime) setStatus(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Terminal: never let a Terminated status regress to Running or swap
	// from one terminal substate to another.
	if r.status.IsTerminated() {
		return
	}
	r.status = s
}

// Terminate kills the channel and sets Status to Terminated(Ok).
func (r *Runtime) Terminate() error {
	err := r.channel.Kill()
	r.setStatus(TerminatedOk())
	return err
}

// Pid exposes the underlying channel's process ID.
func (r *Runtime) Pid() int { return r.channel.Pid() }
