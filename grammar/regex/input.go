// Package regex turns a resolved grammar expression into an augmented
// syntax tree with nullable/firstpos/lastpos/followpos annotations, the
// input the automaton package needs to run Aho/Sethi/Ullman direct
// construction of a DFA without ever building an NFA.
package regex

import "fmt"

// Input is one DFA transition label: either a concrete word the user must
// type exactly, or a match-anything slot resolved against the Shell Bridge
// or a free word at match time. Key identifies an Input for the purposes of
// grouping positions into DFA transitions; two Input values with equal Key
// always lead to the same target state.
type Input interface {
	fmt.Stringer
	isInput()
	Key() string
}

// Literal is an exact word, optionally carrying a human-readable
// description surfaced alongside the completion candidate.
type Literal struct {
	Token string
	Desc  string
}

func (*Literal) isInput()    {}
func (l *Literal) Key() string { return "L:" + l.Token }

// Any is a match-anything slot. Match is either a Command or a Nonterminal;
// both accept any single word during matching and differ only in how the
// matcher turns them into shell-completion candidates.
type Any struct {
	Match AnyMatch
}

func (*Any) isInput()    {}
func (a *Any) Key() string { return "A:" + a.Match.Key() }

// AnyMatch distinguishes the two flavors of match-anything input.
type AnyMatch interface {
	fmt.Stringer
	isAnyMatch()
	Key() string
}

// Command is a `{ shell command }` slot: completions come from running Cmd
// through the Shell Bridge.
type Command struct {
	Cmd string
}

func (*Command) isAnyMatch()  {}
func (c *Command) Key() string { return "cmd:" + c.Cmd }

// Nonterminal is a free nonterminal reference, including the well-known
// PATH and DIRECTORY names the Shell Bridge handles directly.
type Nonterminal struct {
	Name string
}

func (*Nonterminal) isAnyMatch()  {}
func (n *Nonterminal) Key() string { return "var:" + n.Name }

func (l *Literal) String() string {
	if l.Desc == "" {
		return fmt.Sprintf("Literal(%q)", l.Token)
	}
	return fmt.Sprintf("Literal(%q, %q)", l.Token, l.Desc)
}

func (a *Any) String() string {
	return fmt.Sprintf("Any(%v)", a.Match)
}

func (c *Command) String() string     { return fmt.Sprintf("Command(%q)", c.Cmd) }
func (n *Nonterminal) String() string { return fmt.Sprintf("Nonterminal(%v)", n.Name) }
