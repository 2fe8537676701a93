package runtime

import (
	"github.com/ARCJ137442/BabelNAR-go/navm"
	"github.com/ARCJ137442/BabelNAR-go/process"
)

// Launcher is a builder that takes a process.Recipe and an IoTranslators
// pair and produces a running Runtime.
type Launcher struct {
	recipe      process.Recipe
	translators navm.IoTranslators
	listener    process.OutputListener
}

// NewLauncher starts a builder for the given invocation recipe. No
// translator pair is set: Launch fails with a LaunchError until both
// translators are supplied (WithTranslators, or WithInputTranslator plus
// WithOutputTranslator), so navm.DefaultTranslators() is never a silent
// fallback.
func NewLauncher(recipe process.Recipe) *Launcher {
	return &Launcher{recipe: recipe}
}

// WithTranslators sets the translator pair.
func (l *Launcher) WithTranslators(t navm.IoTranslators) *Launcher {
	l.translators = t
	return l
}

// WithInputTranslator overrides only the input translator.
func (l *Launcher) WithInputTranslator(in navm.InputTranslator) *Launcher {
	l.translators.In = in
	return l
}

// WithOutputTranslator overrides only the output translator.
func (l *Launcher) WithOutputTranslator(out navm.OutputTranslator) *Launcher {
	l.translators.Out = out
	return l
}

// WithListener installs a tee listener offered every raw output line before
// translation, used e.g. to mirror output to a log file.
func (l *Launcher) WithListener(listener process.OutputListener) *Launcher {
	l.listener = listener
	return l
}

// Launch spawns the recipe and wires the translators into a new Runtime.
// Any failure after a successful spawn (none currently possible, since
// translator wiring cannot itself fail) kills the already-spawned child
// before returning, so no process is ever leaked on an error path.
func (l *Launcher) Launch() (*Runtime, error) {
	if l.translators.In == nil || l.translators.Out == nil {
		return nil, navm.LaunchError{Reason: "missing translator pair"}
	}
	channel, err := process.Spawn(l.recipe, l.listener)
	if err != nil {
		return nil, err
	}
	return New(channel, l.translators), nil
}
