// Package nal implements the NAL script parser and executor: a
// line-oriented test DSL layered on ASCII Narsese, and the semantic
// (variable-rename/commutative-aware) equality engine used to check its
// expectations.
package nal

import (
	"fmt"
	"time"

	"github.com/ARCJ137442/BabelNAR-go/navm"
)

// OutputExpectation is a partial pattern over a navm.Output: each of its
// three slots may be wildcarded by omission.
type OutputExpectation struct {
	OutputType *string
	Narsese    *navm.Narsese
	Operation  *navm.Operation
}

func (e OutputExpectation) String() string {
	tag := "*"
	if e.OutputType != nil {
		tag = *e.OutputType
	}
	body := ""
	if e.Narsese != nil {
		body = " " + e.Narsese.String()
	}
	op := ""
	if e.Operation != nil {
		op = fmt.Sprintf(" %s(...)", e.Operation.OperatorName)
	}
	return tag + body + op
}

// NALInput is the closed union of parsed script lines.
type NALInput interface {
	isNALInput()
}

// Put forwards a Cmd to the runtime (bare-integer CYC sugar, a bare
// Narsese line, or a `'/`-prefixed raw NAVM command all produce this).
type Put struct {
	Cmd navm.Cmd
}

func (Put) isNALInput() {}

// Sleep suspends execution for Duration.
type Sleep struct {
	Duration time.Duration
}

func (Sleep) isNALInput() {}

// Await blocks reading new outputs until one matches Expectation.
type Await struct {
	Expectation OutputExpectation
}

func (Await) isNALInput() {}

// ExpectContains asserts that some output already in the cache matches
// Expectation.
type ExpectContains struct {
	Expectation OutputExpectation
}

func (ExpectContains) isNALInput() {}

// ExpectCycle steps the reasoner in Step-sized increments up to Max cycles,
// sleeping StepDuration between steps, succeeding as soon as an output
// matches Expectation.
type ExpectCycle struct {
	Max          uint
	Step         uint
	StepDuration time.Duration
	HasStepDur   bool
	Expectation  OutputExpectation
}

func (ExpectCycle) isNALInput() {}

// SaveOutputs dumps the output cache as a JSON array to Path.
type SaveOutputs struct {
	Path string
}

func (SaveOutputs) isNALInput() {}

// Terminate ends the run. IfNoUser restricts this to only fire when no
// interactive user is present. Result carries a failure message when the
// line had a trailing comment.
type Terminate struct {
	IfNoUser bool
	Result   error
}

func (Terminate) isNALInput() {}

// Comment is a pass-through `'` comment line, kept so script round-tripping
// (e.g. an echo tool) can reproduce it; the executor ignores it.
type Comment struct {
	Text string
}

func (Comment) isNALInput() {}
