// Package error defines the error taxonomy shared by the grammar compiler
// pipeline (parser, resolver, regex builder, DFA constructor and minimizer).
package error

import "fmt"

// SpecError wraps a sentinel Cause with the source row at which it was
// detected. Row is 0 when the error is not tied to a specific line.
type SpecError struct {
	Cause error
	Row   int
}

func (e *SpecError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("error: %v", e.Cause)
	}
	return fmt.Sprintf("%v: error: %v", e.Row, e.Cause)
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

// SpecErrors is a non-empty collection of SpecError, used when a compile
// pass can usefully report more than one problem at once.
type SpecErrors []*SpecError

func (es SpecErrors) Error() string {
	if len(es) == 0 {
		return "no errors"
	}
	s := es[0].Error()
	for _, e := range es[1:] {
		s += "\n" + e.Error()
	}
	return s
}

var (
	// ErrEmptyGrammar means a grammar contains no call variants.
	ErrEmptyGrammar = fmt.Errorf("a grammar needs at least one call variant")

	// ErrCyclicVariables means variable definitions form a dependency cycle.
	ErrCyclicVariables = fmt.Errorf("variable definitions contain a cycle")

	// ErrTrailingInput means the parser stopped before consuming all input.
	ErrTrailingInput = fmt.Errorf("unparsed trailing input")
)

// VaryingCommandNames is raised when call variants disagree on the command
// name they define completions for.
type VaryingCommandNames struct {
	Names []string
}

func (e *VaryingCommandNames) Error() string {
	return fmt.Sprintf("call variants must share a single command name, found: %v", e.Names)
}

// CyclicVariables is raised when variable definitions form a dependency
// cycle; Cycle lists the nonterminal names participating in the cycle in
// discovery order.
type CyclicVariables struct {
	Cycle []string
}

func (e *CyclicVariables) Error() string {
	return fmt.Sprintf("%v: %v", ErrCyclicVariables, e.Cycle)
}

func (e *CyclicVariables) Unwrap() error {
	return ErrCyclicVariables
}

// ShellInvocationFailed means the Shell Bridge reported a non-zero exit
// status or an I/O error. A completion query never returns it directly; it
// only carries context into the logger that swallows it, so one bad
// external command degrades a single candidate source instead of failing
// the whole completion request.
type ShellInvocationFailed struct {
	Cmd    string
	Stdout string
	Stderr string
	Cause  error
}

func (e *ShellInvocationFailed) Error() string {
	return fmt.Sprintf("shell invocation failed: %v: cmd=%q stdout=%q stderr=%q", e.Cause, e.Cmd, e.Stdout, e.Stderr)
}

func (e *ShellInvocationFailed) Unwrap() error {
	return e.Cause
}
