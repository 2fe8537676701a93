package navm

import "strings"

// InputTranslator converts a Cmd into a CIN's line-protocol text. Returning
// the empty string is the permitted sentinel meaning "suppress": the
// runtime writes nothing but still reports success. Translators
// must be stateless and safe for concurrent use from multiple goroutines.
type InputTranslator func(Cmd) (string, error)

// OutputTranslator converts one line of a CIN's stdout into a structured
// Output. Like InputTranslator it must be stateless.
type OutputTranslator func(line string) (Output, error)

// IoTranslators bundles one CIN's input and output translator functions.
type IoTranslators struct {
	In  InputTranslator
	Out OutputTranslator
}

// NewIoTranslators constructs an IoTranslators from an in/out pair.
func NewIoTranslators(in InputTranslator, out OutputTranslator) IoTranslators {
	return IoTranslators{In: in, Out: out}
}

// DefaultTranslators returns the debugging/pass-through pair: it maps every
// Cmd by its textual NAVM form and wraps every output line in OTHER. It
// must never be the silent fallback used by a production launcher; it
// exists for a debugging/pass-through mode only.
func DefaultTranslators() IoTranslators {
	return IoTranslators{
		In: func(c Cmd) (string, error) {
			return c.Text(), nil
		},
		Out: func(line string) (Output, error) {
			return NewOTHER(strings.TrimRight(line, "\r\n")), nil
		},
	}
}
