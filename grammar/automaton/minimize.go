package automaton

import "sort"

// Minimize reduces d to an equivalent DFA with the fewest states, using
// Hopcroft-style partition refinement: states start split only into
// accepting/non-accepting, then get split further whenever two states in
// the same group disagree on where some input leads.
//
// The teacher's lexer compiler never needed this pass (maleeni tables are
// used as generated, unminimized); this construction generalizes the same
// direct-construction DFA it builds to an alphabet of grammar inputs
// instead of bytes, then adds minimization on top since a completion DFA
// is inspected and walked interactively, where extra states are wasted
// work on every query.
func Minimize(d *DFA) *DFA {
	groupOf := map[StateID]int{}
	var groups [][]StateID
	accepting, nonAccepting := []StateID{}, []StateID{}
	for _, s := range d.States {
		if d.Accepting[s] {
			accepting = append(accepting, s)
		} else {
			nonAccepting = append(nonAccepting, s)
		}
	}
	if len(accepting) > 0 {
		groups = append(groups, accepting)
	}
	if len(nonAccepting) > 0 {
		groups = append(groups, nonAccepting)
	}
	assignGroups(groupOf, groups)

	for {
		var refined [][]StateID
		changed := false
		for _, group := range groups {
			split := splitGroup(d, groupOf, group)
			if len(split) > 1 {
				changed = true
			}
			refined = append(refined, split...)
		}
		groups = refined
		assignGroups(groupOf, groups)
		if !changed {
			break
		}
	}

	// Put the start state's group first so the rebuilt DFA starts at state 0.
	if g := groupOf[d.Start]; g != 0 {
		groups[0], groups[g] = groups[g], groups[0]
		assignGroups(groupOf, groups)
	}

	return rebuild(d, groupOf, groups)
}

// signature summarizes, for one state, which group each of its inputs
// leads into; two states with equal signatures behave identically and
// belong in the same group.
func signature(d *DFA, groupOf map[StateID]int, s StateID) string {
	trans := d.Transitions[s]
	keys := make([]string, len(trans))
	for i, t := range trans {
		keys[i] = t.Input.Key()
	}
	sort.Strings(keys)

	byKey := map[string]int{}
	for _, t := range trans {
		byKey[t.Input.Key()] = groupOf[t.To]
	}

	var b []byte
	for _, k := range keys {
		b = append(b, k...)
		b = append(b, ':')
		b = appendUint(b, uint64(byKey[k]))
		b = append(b, ';')
	}
	return string(b)
}

func splitGroup(d *DFA, groupOf map[StateID]int, group []StateID) [][]StateID {
	buckets := map[string][]StateID{}
	var order []string
	for _, s := range group {
		sig := signature(d, groupOf, s)
		if _, ok := buckets[sig]; !ok {
			order = append(order, sig)
		}
		buckets[sig] = append(buckets[sig], s)
	}
	result := make([][]StateID, 0, len(order))
	for _, sig := range order {
		result = append(result, buckets[sig])
	}
	return result
}

func assignGroups(groupOf map[StateID]int, groups [][]StateID) {
	for i, g := range groups {
		for _, s := range g {
			groupOf[s] = i
		}
	}
}

func rebuild(d *DFA, groupOf map[StateID]int, groups [][]StateID) *DFA {
	accepting := map[StateID]bool{}
	transitions := map[StateID][]Transition{}
	states := make([]StateID, len(groups))
	for i := range groups {
		states[i] = StateID(i)
	}

	for i, group := range groups {
		rep := group[0]
		id := StateID(i)
		if d.Accepting[rep] {
			accepting[id] = true
		}
		seen := map[string]bool{}
		for _, t := range d.Transitions[rep] {
			k := t.Input.Key()
			if seen[k] {
				continue
			}
			seen[k] = true
			transitions[id] = append(transitions[id], Transition{Input: t.Input, To: StateID(groupOf[t.To])})
		}
		sortTransitions(transitions[id])
	}

	return &DFA{
		Start:       StateID(groupOf[d.Start]),
		States:      states,
		Accepting:   accepting,
		Transitions: transitions,
	}
}
