package navm

import "fmt"

// ErrUnsupportedInput means a CIN's translator does not accept this Cmd
// variant at all. Callers should warn and proceed; it is
// distinct from a Cmd that translates to the empty-string suppression
// sentinel, which is not an error.
type ErrUnsupportedInput struct {
	Cmd Cmd
}

func (e ErrUnsupportedInput) Error() string {
	return fmt.Sprintf("unsupported input command: %s", e.Cmd.Text())
}

// ErrParse means dialect text could not be parsed into a structured Output
// or Narsese value. Cause is the underlying parser error, if any.
type ErrParse struct {
	Raw   string
	Cause error
}

func (e ErrParse) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error on %q: %v", e.Raw, e.Cause)
	}
	return fmt.Sprintf("parse error on %q", e.Raw)
}

func (e ErrParse) Unwrap() error { return e.Cause }

// LaunchError reports a failure to bring up a Runtime: a missing
// executable, a spawn failure, or a missing translator pair.
type LaunchError struct {
	Reason string
	Cause  error
}

func (e LaunchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("launch failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("launch failed: %s", e.Reason)
}

func (e LaunchError) Unwrap() error { return e.Cause }

// ChannelError reports a broken pipe on write or a decode error on read.
// Worker goroutines log and exit on this; they never panic out of the
// Channel boundary.
type ChannelError struct {
	Op    string
	Cause error
}

func (e ChannelError) Error() string {
	return fmt.Sprintf("channel %s error: %v", e.Op, e.Cause)
}

func (e ChannelError) Unwrap() error { return e.Cause }

// ExpectationError reports that an expectation never matched. It carries
// the full expectation for diagnostics.
type ExpectationError struct {
	Expectation OutputExpectationLike
}

func (e ExpectationError) Error() string {
	return fmt.Sprintf("expectation not satisfied: %s", e.Expectation.String())
}

// OutputExpectationLike avoids navm importing the nal package (which
// depends on navm); nal.OutputExpectation implements this via its own
// String method.
type OutputExpectationLike interface {
	String() string
}

// LockPoisonError is a conversion target for an unexpected internal
// synchronization failure; navm never produces it itself, but callers
// recovering from a panicked critical section have a uniform error to
// land on rather than re-panicking.
type LockPoisonError struct {
	Context string
}

func (e LockPoisonError) Error() string {
	return fmt.Sprintf("lock poisoned: %s", e.Context)
}
