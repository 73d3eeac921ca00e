// Package match walks a compiled grammar DFA against the words typed so
// far to find every completion candidate for the word under the cursor.
package match

import (
	"context"
	"sort"
	"strings"

	"github.com/nihei9/cmplgram/grammar/automaton"
	"github.com/nihei9/cmplgram/grammar/regex"
	"github.com/nihei9/cmplgram/internal/log"
	"github.com/nihei9/cmplgram/shell"
)

// Candidate is one completion offered to the user.
type Candidate struct {
	Completion  string
	Description string
}

// Matcher answers completion queries against one compiled DFA.
type Matcher struct {
	DFA    *automaton.DFA
	Bridge shell.Bridge
}

// New returns a Matcher for dfa, resolving Any inputs through bridge.
func New(dfa *automaton.DFA, bridge shell.Bridge) *Matcher {
	return &Matcher{DFA: dfa, Bridge: bridge}
}

// finalState backtracks through the DFA consuming words[:completedWordIndex]
// and returns the state reached just before the word under the cursor. At
// each step matching Literal branches are pushed onto the LIFO stack before
// Any branches, so every Any branch is tried before any Literal branch; a
// branch that dead-ends backtracks into the remaining ones, so a literal
// path is still found when no wildcard path reaches the cursor.
func finalState(dfa *automaton.DFA, words []string, completedWordIndex int) (automaton.StateID, bool) {
	type frame struct {
		wordIndex int
		state     automaton.StateID
	}
	stack := []frame{{wordIndex: 0, state: dfa.Start}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.wordIndex >= len(words) || f.wordIndex >= completedWordIndex {
			return f.state, true
		}

		transitions := dfa.TransitionsFrom(f.state)
		for _, t := range transitions {
			if lit, ok := t.Input.(*regex.Literal); ok && lit.Token == words[f.wordIndex] {
				stack = append(stack, frame{wordIndex: f.wordIndex + 1, state: t.To})
			}
		}
		for _, t := range transitions {
			if _, ok := t.Input.(*regex.Any); ok {
				stack = append(stack, frame{wordIndex: f.wordIndex + 1, state: t.To})
			}
		}
	}
	return 0, false
}

// Complete returns every completion candidate for the word at
// completedWordIndex in words, given everything already typed before it.
func (m *Matcher) Complete(ctx context.Context, words []string, completedWordIndex int) []Candidate {
	prefix := ""
	if completedWordIndex < len(words) {
		prefix = words[completedWordIndex]
	}

	state, ok := finalState(m.DFA, words, completedWordIndex)
	if !ok {
		return nil
	}

	var candidates []Candidate
	for _, t := range m.DFA.TransitionsFrom(state) {
		candidates = append(candidates, m.candidatesForInput(ctx, t.Input, prefix)...)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Completion != candidates[j].Completion {
			return candidates[i].Completion < candidates[j].Completion
		}
		return candidates[i].Description < candidates[j].Description
	})
	return dedup(candidates)
}

func (m *Matcher) candidatesForInput(ctx context.Context, in regex.Input, prefix string) []Candidate {
	switch n := in.(type) {
	case *regex.Literal:
		if !strings.HasPrefix(n.Token, prefix) {
			return nil
		}
		return []Candidate{{Completion: n.Token, Description: n.Desc}}

	case *regex.Any:
		switch match := n.Match.(type) {
		case *regex.Command:
			return m.candidatesFromCommand(ctx, match.Cmd, prefix)
		case *regex.Nonterminal:
			switch match.Name {
			case "PATH":
				return m.candidatesFromLines(ctx, m.Bridge.CompletePaths, prefix)
			case "DIRECTORY":
				return m.candidatesFromLines(ctx, m.Bridge.CompleteDirectories, prefix)
			default:
				return nil
			}
		}
	}
	return nil
}

func (m *Matcher) candidatesFromCommand(ctx context.Context, cmd, prefix string) []Candidate {
	stdout, err := m.Bridge.ShellOut(ctx, cmd)
	if err != nil {
		log.WithError(err).Warnf("command completion failed")
		return nil
	}
	var candidates []Candidate
	for _, line := range strings.Split(stdout, "\n") {
		if line == "" {
			continue
		}
		completion, desc, _ := strings.Cut(line, "\t")
		if prefix != "" && !strings.HasPrefix(completion, prefix) {
			continue
		}
		candidates = append(candidates, Candidate{Completion: completion, Description: desc})
	}
	return candidates
}

func (m *Matcher) candidatesFromLines(ctx context.Context, fn func(context.Context, string) (string, error), prefix string) []Candidate {
	stdout, err := fn(ctx, prefix)
	if err != nil {
		log.WithError(err).Warnf("shell bridge listing failed")
		return nil
	}
	var candidates []Candidate
	for _, line := range strings.Split(stdout, "\n") {
		if line == "" {
			continue
		}
		candidates = append(candidates, Candidate{Completion: line})
	}
	return candidates
}

func dedup(sorted []Candidate) []Candidate {
	if len(sorted) == 0 {
		return sorted
	}
	result := sorted[:1]
	for _, c := range sorted[1:] {
		last := result[len(result)-1]
		if c.Completion == last.Completion && c.Description == last.Description {
			continue
		}
		result = append(result, c)
	}
	return result
}
