package exportspec

import (
	"testing"

	"github.com/nihei9/cmplgram/grammar"
)

func TestFromProducesDenseTransitionsMatchingDFA(t *testing.T) {
	compiled, err := grammar.Compile(`grep (-i|-v) <PATTERN>;`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	spec := From(compiled)
	if spec.Command != "grep" {
		t.Fatalf("unexpected command: %v", spec.Command)
	}
	if spec.StateCount != len(compiled.DFA.States) {
		t.Fatalf("unexpected state count: got %v want %v", spec.StateCount, len(compiled.DFA.States))
	}
	if spec.InitialState != int(compiled.DFA.Start) {
		t.Fatalf("unexpected initial state: got %v want %v", spec.InitialState, compiled.DFA.Start)
	}
	if len(spec.Transitions.Dense) != spec.StateCount*spec.Transitions.ColumnCount {
		t.Fatalf("dense table size mismatch: got %v want %v*%v", len(spec.Transitions.Dense), spec.StateCount, spec.Transitions.ColumnCount)
	}
	if len(spec.Positions) == 0 {
		t.Fatalf("expected position entries when Augmented is present")
	}

	for _, state := range compiled.DFA.States {
		for _, tr := range compiled.DFA.TransitionsFrom(state) {
			col := -1
			for i, in := range spec.Inputs {
				if in == inputSpecOf(tr.Input) {
					col = i
					break
				}
			}
			if col == -1 {
				t.Fatalf("transition input %v missing from exported columns", tr.Input)
			}
			got := spec.Transitions.Dense[int(state)*spec.Transitions.ColumnCount+col]
			if got != int(tr.To) {
				t.Fatalf("unexpected dense entry for state %v col %v: got %v want %v", state, col, got, tr.To)
			}
		}
	}
}

func TestCompressPreservesLookupsAgainstDenseTable(t *testing.T) {
	compiled, err := grammar.Compile(`grep (-i|-v) <PATTERN>;`)
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	spec := From(compiled)
	dense := append([]int{}, spec.Transitions.Dense...)
	colCount := spec.Transitions.ColumnCount

	if err := Compress(spec); err != nil {
		t.Fatalf("unexpected compress error: %v", err)
	}
	if !spec.Transitions.Compressed {
		t.Fatalf("expected Transitions.Compressed to be true")
	}

	for row := 0; row < spec.StateCount; row++ {
		for col := 0; col < colCount; col++ {
			want := dense[row*colCount+col]
			d := spec.Transitions.RowDisplacement[row]
			got := noTransition
			if spec.Transitions.Bounds[d+col] == row {
				got = spec.Transitions.Entries[d+col]
			}
			if got != want {
				t.Fatalf("compressed lookup mismatch at (%v,%v): got %v want %v", row, col, got, want)
			}
		}
	}
}
