package grammar

import (
	"reflect"
	"testing"

	cmplerr "github.com/nihei9/cmplgram/error"
	"github.com/nihei9/cmplgram/grammar/parser"
)

func mustParse(t *testing.T, text string) []Statement {
	t.Helper()
	stmts, err := parser.ParseText(text)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return stmts
}

func TestResolve(t *testing.T) {
	t.Run("single call variant", func(t *testing.T) {
		stmts := mustParse(t, `grep <PATTERN>;`)
		got, err := Resolve(stmts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Command != "grep" {
			t.Fatalf("unexpected command: %v", got.Command)
		}
		want := &Variable{Name: "PATTERN"}
		if !reflect.DeepEqual(got.Body, want) {
			t.Fatalf("unexpected body: %#v", got.Body)
		}
	})

	t.Run("multiple call variants become an alternative", func(t *testing.T) {
		stmts := mustParse(t, "grep -i;\ngrep -v;\n")
		got, err := Resolve(stmts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := NewAlternative(
			&Literal{Token: "-i"},
			&Literal{Token: "-v"},
		)
		if !reflect.DeepEqual(got.Body, want) {
			t.Fatalf("unexpected body: %#v", got.Body)
		}
	})

	t.Run("variable definitions are substituted", func(t *testing.T) {
		stmts := mustParse(t, "<TOOLCHAIN> ::= { rustup toolchain list };\nrustup +<TOOLCHAIN>;\n")
		got, err := Resolve(stmts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := NewSequence(
			&Literal{Token: "+"},
			&Command{Cmd: "rustup toolchain list"},
		)
		if !reflect.DeepEqual(got.Body, want) {
			t.Fatalf("unexpected body: %#v", got.Body)
		}
	})

	t.Run("well-known nonterminals are not substituted", func(t *testing.T) {
		stmts := mustParse(t, `cp <PATH> <PATH>;`)
		got, err := Resolve(stmts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := NewSequence(
			&Variable{Name: "PATH"},
			&Variable{Name: "PATH"},
		)
		if !reflect.DeepEqual(got.Body, want) {
			t.Fatalf("unexpected body: %#v", got.Body)
		}
	})

	t.Run("empty grammar", func(t *testing.T) {
		_, err := Resolve(nil)
		if err != cmplerr.ErrEmptyGrammar {
			t.Fatalf("expected ErrEmptyGrammar, got %v", err)
		}
	})

	t.Run("varying command names", func(t *testing.T) {
		stmts := mustParse(t, "grep -i;\nsed -n;\n")
		_, err := Resolve(stmts)
		if _, ok := err.(*cmplerr.VaryingCommandNames); !ok {
			t.Fatalf("expected *VaryingCommandNames, got %T: %v", err, err)
		}
	})

	t.Run("cyclic variable definitions", func(t *testing.T) {
		stmts := mustParse(t, "<A> ::= <B>;\n<B> ::= <A>;\ngrep <A>;\n")
		_, err := Resolve(stmts)
		if _, ok := err.(*cmplerr.CyclicVariables); !ok {
			t.Fatalf("expected *CyclicVariables, got %T: %v", err, err)
		}
	})
}
