package nal

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ARCJ137442/BabelNAR-go/handler"
	"github.com/ARCJ137442/BabelNAR-go/navm"
	"github.com/ARCJ137442/BabelNAR-go/runtime"
)

// Executor drives a stream of NALInput values against a Runtime and output
// Cache.
type Executor struct {
	Runtime *runtime.Runtime
	Cache   *handler.Cache

	// ScriptDir is used to resolve relative SaveOutputs paths.
	ScriptDir string

	// EnabledUserInput gates Terminate{IfNoUser: true}: when an
	// interactive user is present, such a terminate is a no-op.
	EnabledUserInput bool

	// Epsilon is the precision epsilon used for all truth/budget
	// comparisons performed while running this script.
	Epsilon Epsilon
}

// Run executes inputs in order, stopping at the first error (including an
// ExpectationError) or a Terminate whose Result is non-nil.
func (e *Executor) Run(inputs []NALInput) error {
	for _, input := range inputs {
		if err := e.runOne(input); err != nil {
			return err
		}
	}
	return nil
}

func (e *Executor) runOne(input NALInput) error {
	switch v := input.(type) {
	case Comment:
		return nil
	case Put:
		return e.Runtime.InputCmd(v.Cmd)
	case Sleep:
		time.Sleep(v.Duration)
		return nil
	case Await:
		return e.await(v.Expectation)
	case ExpectContains:
		return e.expectContains(v.Expectation)
	case ExpectCycle:
		return e.expectCycle(v)
	case SaveOutputs:
		return e.saveOutputs(v.Path)
	case Terminate:
		return e.terminate(v)
	default:
		return nil
	}
}

// drainPending pulls every currently-queued output out of the runtime and
// into the cache (non-blocking), used before scanning for expect-contains.
// A translate (parse) error still yields an ERROR-variant Output, which is
// cached like any other output rather than aborting the drain.
func (e *Executor) drainPending() {
	for {
		out, ok, err := e.Runtime.TryFetchOutput()
		if !ok {
			return
		}
		if out != nil {
			e.Cache.Put(out)
		}
		_ = err
	}
}

func (e *Executor) await(exp OutputExpectation) error {
	for {
		out, err := e.Runtime.FetchOutput()
		if err != nil {
			if out == nil {
				// No output was produced at all: the channel itself is
				// torn down, so no further output will ever arrive.
				return err
			}
			// A parse error still carries an observable ERROR output;
			// cache it and keep waiting for a match.
			e.Cache.Put(out)
			continue
		}
		e.Cache.Put(out)
		matched, err := exp.Matches(out, e.Epsilon)
		if err != nil {
			return err
		}
		if matched {
			return nil
		}
	}
}

func (e *Executor) expectContains(exp OutputExpectation) error {
	e.drainPending()
	found := false
	var matchErr error
	e.Cache.ForEach(func(out navm.Output) bool {
		matched, err := exp.Matches(out, e.Epsilon)
		if err != nil {
			matchErr = err
			return false
		}
		if matched {
			found = true
			return false
		}
		return true
	})
	if matchErr != nil {
		return matchErr
	}
	if !found {
		return navm.ExpectationError{Expectation: exp}
	}
	return nil
}

func (e *Executor) expectCycle(v ExpectCycle) error {
	cycles := uint(0)
	first := true
	for {
		if !first {
			if err := e.Runtime.InputCmd(navm.CYC{N: v.Step}); err != nil {
				return err
			}
			cycles += v.Step
			if v.HasStepDur {
				time.Sleep(v.StepDuration)
			}
		}
		first = false
		e.drainPending()

		found := false
		var matchErr error
		e.Cache.ForEach(func(out navm.Output) bool {
			matched, err := v.Expectation.Matches(out, e.Epsilon)
			if err != nil {
				matchErr = err
				return false
			}
			if matched {
				found = true
				return false
			}
			return true
		})
		if matchErr != nil {
			return matchErr
		}
		if found {
			e.Cache.Put(navm.NewINFO(infoMessage(cycles, v.Expectation)))
			return nil
		}
		// A zero step can never advance cycles toward Max; give up after
		// the initial scan instead of spinning.
		if cycles >= v.Max || v.Step == 0 {
			return navm.ExpectationError{Expectation: v.Expectation}
		}
	}
}

func infoMessage(cycles uint, exp OutputExpectation) string {
	return "expect-cycle(" + strconv.FormatUint(uint64(cycles), 10) + "): " + exp.String()
}

func (e *Executor) saveOutputs(path string) error {
	if !filepath.IsAbs(path) && e.ScriptDir != "" {
		path = filepath.Join(e.ScriptDir, path)
	}
	outputs := e.Cache.Snapshot()
	data, err := json.MarshalIndent(outputs, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (e *Executor) terminate(t Terminate) error {
	if t.IfNoUser && e.EnabledUserInput {
		return nil
	}
	if err := e.Runtime.Terminate(); err != nil {
		return err
	}
	return t.Result
}
