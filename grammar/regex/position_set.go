package regex

import (
	"fmt"
	"sort"
	"strings"
)

// positionSet is a deduplicated, hashable set of positions. Immediately
// after add/merge, s may contain duplicates; normalize (called by slice,
// hash and String) sorts and deduplicates it on demand.
type positionSet struct {
	s      []Position
	sorted bool
}

func newPositionSet() *positionSet {
	return &positionSet{}
}

func (s *positionSet) add(p Position) *positionSet {
	s.s = append(s.s, p)
	s.sorted = false
	return s
}

func (s *positionSet) merge(t *positionSet) *positionSet {
	s.s = append(s.s, t.s...)
	s.sorted = false
	return s
}

func (s *positionSet) slice() []Position {
	s.normalize()
	return s.s
}

func (s *positionSet) normalize() {
	if s.sorted {
		return
	}
	sort.Slice(s.s, func(i, j int) bool { return s.s[i] < s.s[j] })
	if len(s.s) > 0 {
		dedup := s.s[:1]
		for _, p := range s.s[1:] {
			if p != dedup[len(dedup)-1] {
				dedup = append(dedup, p)
			}
		}
		s.s = dedup
	}
	s.sorted = true
}

// hash returns a value usable as a map key that uniquely identifies this
// set's normalized contents. The automaton package does not call it: it
// identifies DFA states with its own hashPositions over FollowOf slices.
func (s *positionSet) hash() string {
	s.normalize()
	if len(s.s) == 0 {
		return ""
	}
	var b strings.Builder
	for i, p := range s.s {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", p)
	}
	return b.String()
}

func (s *positionSet) String() string {
	s.normalize()
	parts := make([]string, len(s.s))
	for i, p := range s.s {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
