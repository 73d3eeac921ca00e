package grammar

import "testing"

func TestCompileSimpleOptions(t *testing.T) {
	compiled, err := Compile(`grep (-i|-v) <PATTERN>;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if compiled.Command != "grep" {
		t.Fatalf("unexpected command: %v", compiled.Command)
	}
	if compiled.DFA.Accepting[compiled.DFA.Start] {
		t.Fatalf("start state must not accept")
	}
}

func TestCompileRejectsEmptyGrammar(t *testing.T) {
	_, err := Compile("")
	if err == nil {
		t.Fatalf("expected an error for an empty grammar")
	}
}

func TestCompileRejectsCyclicVariables(t *testing.T) {
	_, err := Compile("<A> ::= <B>;\n<B> ::= <A>;\ngrep <A>;\n")
	if err == nil {
		t.Fatalf("expected an error for a variable cycle")
	}
}

func TestCompileWithMinimizeDisabled(t *testing.T) {
	raw, err := Compile(`grep (-i|-v) <PATTERN>;`, WithMinimize(false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	minimized, err := Compile(`grep (-i|-v) <PATTERN>;`, WithMinimize(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(minimized.DFA.States) > len(raw.DFA.States) {
		t.Fatalf("minimized DFA must not have more states than the raw one")
	}
}
