// Package automaton builds a deterministic finite automaton from an
// augmented grammar expression by direct (Aho/Sethi/Ullman) subset
// construction over followpos sets, then minimizes it with a
// Hopcroft-style partition refinement.
package automaton

import (
	"sort"

	"github.com/nihei9/cmplgram/grammar/regex"
)

// StateID identifies one DFA state. The start state is always 0.
type StateID int

// Transition is one outgoing edge of a state: matching Input moves the
// matcher to To.
type Transition struct {
	Input regex.Input
	To    StateID
}

// DFA is the compiled form of a grammar expression: every accepted word
// sequence is a path from Start to some state in Accepting.
type DFA struct {
	Start       StateID
	States      []StateID
	Accepting   map[StateID]bool
	Transitions map[StateID][]Transition
}

// TransitionsFrom returns s's outgoing transitions, Any inputs first, to
// match the branch order the matcher must explore.
func (d *DFA) TransitionsFrom(s StateID) []Transition {
	return d.Transitions[s]
}

type positionSetState struct {
	positions []regex.Position
}

func hashPositions(ps []regex.Position) string {
	sorted := append([]regex.Position{}, ps...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	dedup := sorted[:0]
	var last regex.Position
	for i, p := range sorted {
		if i == 0 || p != last {
			dedup = append(dedup, p)
			last = p
		}
	}
	b := make([]byte, 0, len(dedup)*5)
	for i, p := range dedup {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendUint(b, uint64(p))
	}
	return string(b)
}

func appendUint(b []byte, v uint64) []byte {
	if v == 0 {
		return append(b, '0')
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// Construct runs direct subset construction over aug, grouping each
// state's outgoing positions by Input identity (rather than by byte value,
// since this automaton's alphabet is grammar inputs, not bytes).
func Construct(aug *regex.Augmented) *DFA {
	startPositions := aug.Start()
	startHash := hashPositions(startPositions)

	stateOf := map[string]*positionSetState{
		startHash: {positions: startPositions},
	}
	order := []string{startHash}
	transTab := map[string][]rawTransition{}

	unmarked := []string{startHash}
	for len(unmarked) > 0 {
		var next []string
		for _, hash := range unmarked {
			state := stateOf[hash]
			groups := map[string]*group{}
			var groupKeys []string
			for _, pos := range state.positions {
				if pos == aug.EndPosition {
					continue
				}
				input := aug.Symbols[pos]
				k := input.Key()
				g, ok := groups[k]
				if !ok {
					g = &group{input: input}
					groups[k] = g
					groupKeys = append(groupKeys, k)
				}
				g.to = append(g.to, aug.FollowOf(pos)...)
			}
			sort.Strings(groupKeys)

			var trans []rawTransition
			for _, k := range groupKeys {
				g := groups[k]
				toHash := hashPositions(g.to)
				if _, ok := stateOf[toHash]; !ok {
					stateOf[toHash] = &positionSetState{positions: g.to}
					order = append(order, toHash)
					next = append(next, toHash)
				}
				trans = append(trans, rawTransition{input: g.input, toHash: toHash})
			}
			transTab[hash] = trans
		}
		unmarked = next
	}

	hashToID := map[string]StateID{}
	for i, hash := range order {
		hashToID[hash] = StateID(i)
	}

	accepting := map[StateID]bool{}
	for hash, state := range stateOf {
		for _, p := range state.positions {
			if p == aug.EndPosition {
				accepting[hashToID[hash]] = true
				break
			}
		}
	}

	transitions := map[StateID][]Transition{}
	states := make([]StateID, 0, len(order))
	for hash, id := range hashToID {
		states = append(states, id)
		for _, rt := range transTab[hash] {
			transitions[id] = append(transitions[id], Transition{Input: rt.input, To: hashToID[rt.toHash]})
		}
	}
	sort.Slice(states, func(i, j int) bool { return states[i] < states[j] })
	for id := range transitions {
		sortTransitions(transitions[id])
	}

	return &DFA{
		Start:       hashToID[startHash],
		States:      states,
		Accepting:   accepting,
		Transitions: transitions,
	}
}

type group struct {
	input regex.Input
	to    []regex.Position
}

type rawTransition struct {
	input  regex.Input
	toHash string
}

// sortTransitions orders Any inputs before Literal inputs, matching the
// branch order a backtracking matcher must try first, and otherwise sorts
// deterministically by the input's key so repeated compiles of the same
// grammar produce byte-identical DFAs.
func sortTransitions(ts []Transition) {
	sort.SliceStable(ts, func(i, j int) bool {
		iAny := isAny(ts[i].Input)
		jAny := isAny(ts[j].Input)
		if iAny != jAny {
			return iAny
		}
		return ts[i].Input.Key() < ts[j].Input.Key()
	})
}

func isAny(in regex.Input) bool {
	_, ok := in.(*regex.Any)
	return ok
}
