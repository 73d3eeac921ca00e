package grammar

import (
	"github.com/nihei9/cmplgram/grammar/automaton"
	"github.com/nihei9/cmplgram/grammar/parser"
	"github.com/nihei9/cmplgram/grammar/regex"
)

// Compiled is everything the matcher needs to answer completion queries
// for one command: its name and the minimized DFA over its argument
// grammar. Augmented is kept alongside the DFA so callers like the
// describe CLI command and the exportspec package can report position
// tables without recomputing them.
type Compiled struct {
	Command   string
	DFA       *automaton.DFA
	Augmented *regex.Augmented
}

// CompileOption configures Compile.
type CompileOption func(*compileOptions)

type compileOptions struct {
	minimize bool
}

// WithMinimize toggles Hopcroft-style minimization of the constructed DFA.
// It defaults to on; pass WithMinimize(false) to inspect the raw
// subset-construction output, e.g. from the describe CLI command.
func WithMinimize(enabled bool) CompileOption {
	return func(o *compileOptions) {
		o.minimize = enabled
	}
}

// Compile runs the full pipeline over grammar text: parse, validate and
// resolve variable references, build the augmented regex, and construct
// (and by default minimize) the DFA.
func Compile(text string, opts ...CompileOption) (*Compiled, error) {
	options := compileOptions{minimize: true}
	for _, opt := range opts {
		opt(&options)
	}

	stmts, err := parser.ParseText(text)
	if err != nil {
		return nil, err
	}

	resolved, err := Resolve(stmts)
	if err != nil {
		return nil, err
	}

	aug := regex.Build(resolved.Body)
	dfa := automaton.Construct(aug)
	if options.minimize {
		dfa = automaton.Minimize(dfa)
	}

	return &Compiled{
		Command:   resolved.Command,
		DFA:       dfa,
		Augmented: aug,
	}, nil
}
