// Package runtime implements the Command VM Runtime (C4) and VM Launcher
// (C5): the facade object that composes a Subprocess Channel with a
// translator pair and exposes the NAVM command/output contract, plus the
// builder that produces one.
package runtime

// Status is the Runtime's state machine: Running or Terminated(error).
// Terminal: once Terminated, a Status never re-enters Running.
type Status struct {
	terminated bool
	err        error
}

// Running is the initial state.
func Running() Status { return Status{} }

// TerminatedOk is the state reached by a successful terminate() call.
func TerminatedOk() Status { return Status{terminated: true} }

// TerminatedErr is the state reached when an incoming output decodes as
// TERMINATED or a worker observes an unrecoverable error.
func TerminatedErr(err error) Status { return Status{terminated: true, err: err} }

// IsRunning reports whether this Status is still Running.
func (s Status) IsRunning() bool { return !s.terminated }

// IsTerminated reports whether this Status is Terminated, in either the Ok
// or Err sub-state.
func (s Status) IsTerminated() bool { return s.terminated }

// Err returns the error associated with a Terminated(Err) status, or nil
// for Running / Terminated(Ok).
func (s Status) Err() error { return s.err }

func (s Status) String() string {
	switch {
	case !s.terminated:
		return "Running"
	case s.err != nil:
		return "Terminated(Err: " + s.err.Error() + ")"
	default:
		return "Terminated(Ok)"
	}
}
