// Package exportspec turns a compiled DFA into a JSON-serializable,
// canonical representation that an out-of-scope shell emitter (bash, fish,
// zsh completion script generator) can consume without linking against the
// grammar compiler itself.
package exportspec

import (
	"sort"

	"github.com/nihei9/cmplgram/compressor"
	"github.com/nihei9/cmplgram/grammar"
	"github.com/nihei9/cmplgram/grammar/regex"
)

// InputSpec is the JSON shape of one regex.Input, flattened into a single
// tagged struct since encoding/json cannot decode back into the regex.Input
// and regex.AnyMatch interfaces.
type InputSpec struct {
	Kind  string `json:"kind"` // "literal", "command" or "nonterminal"
	Token string `json:"token,omitempty"`
	Desc  string `json:"desc,omitempty"`
	Cmd   string `json:"cmd,omitempty"`
	Name  string `json:"name,omitempty"`
}

func inputSpecOf(in regex.Input) InputSpec {
	switch n := in.(type) {
	case *regex.Literal:
		return InputSpec{Kind: "literal", Token: n.Token, Desc: n.Desc}
	case *regex.Any:
		switch m := n.Match.(type) {
		case *regex.Command:
			return InputSpec{Kind: "command", Cmd: m.Cmd}
		case *regex.Nonterminal:
			return InputSpec{Kind: "nonterminal", Name: m.Name}
		}
	}
	return InputSpec{Kind: "unknown"}
}

// PositionEntry associates one augmented-regex position with the Input it
// carries, surfaced for the describe CLI command's position table and for
// debugging a compiled grammar.
type PositionEntry struct {
	Position int       `json:"position"`
	Input    InputSpec `json:"input"`
}

// TransitionTable is the state x input-column transition matrix, either
// dense or compressed. Dense and Entries use -1 for "no transition", since
// state id 0 is a valid state.
type TransitionTable struct {
	Compressed      bool  `json:"compressed"`
	ColumnCount     int   `json:"column_count"`
	Dense           []int `json:"dense,omitempty"`
	Entries         []int `json:"entries,omitempty"`
	Bounds          []int `json:"bounds,omitempty"`
	RowDisplacement []int `json:"row_displacement,omitempty"`
}

const noTransition = -1

// Spec is the canonical, serializable representation of a compiled DFA.
type Spec struct {
	Command         string          `json:"command"`
	StateCount      int             `json:"state_count"`
	InitialState    int             `json:"initial_state"`
	AcceptingStates []int           `json:"accepting_states"`
	Inputs          []InputSpec     `json:"inputs"`
	Positions       []PositionEntry `json:"positions,omitempty"`
	Transitions     TransitionTable `json:"transitions"`
}

// From builds a Spec from a compiled grammar's DFA. Positions are included
// only when compiled.Augmented is non-nil, since the matcher itself never
// needs them.
func From(compiled *grammar.Compiled) *Spec {
	dfa := compiled.DFA

	inputByKey := map[string]regex.Input{}
	for _, state := range dfa.States {
		for _, t := range dfa.TransitionsFrom(state) {
			inputByKey[t.Input.Key()] = t.Input
		}
	}
	keys := make([]string, 0, len(inputByKey))
	for k := range inputByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	columnOf := make(map[string]int, len(keys))
	inputs := make([]InputSpec, len(keys))
	for i, k := range keys {
		columnOf[k] = i
		inputs[i] = inputSpecOf(inputByKey[k])
	}

	stateCount := len(dfa.States)
	colCount := len(keys)
	dense := make([]int, stateCount*colCount)
	for i := range dense {
		dense[i] = noTransition
	}
	for _, state := range dfa.States {
		row := int(state)
		for _, t := range dfa.TransitionsFrom(state) {
			col := columnOf[t.Input.Key()]
			dense[row*colCount+col] = int(t.To)
		}
	}

	var accepting []int
	for _, state := range dfa.States {
		if dfa.Accepting[state] {
			accepting = append(accepting, int(state))
		}
	}
	sort.Ints(accepting)

	var positions []PositionEntry
	if compiled.Augmented != nil {
		for pos, in := range compiled.Augmented.Symbols {
			positions = append(positions, PositionEntry{Position: int(pos), Input: inputSpecOf(in)})
		}
		sort.Slice(positions, func(i, j int) bool { return positions[i].Position < positions[j].Position })
	}

	return &Spec{
		Command:         compiled.Command,
		StateCount:      stateCount,
		InitialState:    int(dfa.Start),
		AcceptingStates: accepting,
		Inputs:          inputs,
		Positions:       positions,
		Transitions: TransitionTable{
			ColumnCount: colCount,
			Dense:       dense,
		},
	}
}

// Compress replaces spec's dense transition table with a row-displacement
// compressed one, shrinking the artifact for grammars with many literal
// alternatives and mostly-sparse rows.
func Compress(spec *Spec) error {
	if spec.Transitions.Compressed || spec.Transitions.ColumnCount == 0 {
		return nil
	}

	orig, err := compressor.NewOriginalTable(spec.Transitions.Dense, spec.Transitions.ColumnCount)
	if err != nil {
		return err
	}

	tab := compressor.NewRowDisplacementTable(noTransition)
	if err := tab.Compress(orig); err != nil {
		return err
	}

	spec.Transitions = TransitionTable{
		Compressed:      true,
		ColumnCount:     spec.Transitions.ColumnCount,
		Entries:         tab.Entries,
		Bounds:          tab.Bounds,
		RowDisplacement: tab.RowDisplacement,
	}
	return nil
}
