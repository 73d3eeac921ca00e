package parser

import (
	"reflect"
	"testing"

	cmplerr "github.com/nihei9/cmplgram/error"
	"github.com/nihei9/cmplgram/grammar"
)

func TestStatements(t *testing.T) {
	tests := []struct {
		text        string
		stmts       []grammar.Statement
		syntaxError error
	}{
		{
			text: `grep <PATTERN>;`,
			stmts: []grammar.Statement{
				&grammar.CallVariant{
					Command: "grep",
					Body:    &grammar.Variable{Name: "PATTERN"},
				},
			},
		},
		{
			text: `cat <FILE>...;`,
			stmts: []grammar.Statement{
				&grammar.CallVariant{
					Command: "cat",
					Body:    &grammar.Many1{Child: &grammar.Variable{Name: "FILE"}},
				},
			},
		},
		{
			text: `ls [-l] [-a] <PATH>;`,
			stmts: []grammar.Statement{
				&grammar.CallVariant{
					Command: "ls",
					Body: grammar.NewSequence(
						&grammar.Optional{Child: &grammar.Literal{Token: "-l"}},
						&grammar.Optional{Child: &grammar.Literal{Token: "-a"}},
						&grammar.Variable{Name: "PATH"},
					),
				},
			},
		},
		{
			text: `grep (-i|-v) <PATTERN>;`,
			stmts: []grammar.Statement{
				&grammar.CallVariant{
					Command: "grep",
					Body: grammar.NewSequence(
						grammar.NewAlternative(
							&grammar.Literal{Token: "-i"},
							&grammar.Literal{Token: "-v"},
						),
						&grammar.Variable{Name: "PATTERN"},
					),
				},
			},
		},
		{
			text: `grep --context "print NUM lines of output context" <NUM>;`,
			stmts: []grammar.Statement{
				&grammar.CallVariant{
					Command: "grep",
					Body: grammar.NewSequence(
						&grammar.Literal{Token: "--context", Desc: "print NUM lines of output context"},
						&grammar.Variable{Name: "NUM"},
					),
				},
			},
		},
		{
			text: `<TOOLCHAIN> ::= { rustup toolchain list | cut -d' ' -f1 };
rustup +<TOOLCHAIN>;`,
			stmts: []grammar.Statement{
				&grammar.VariableDefinition{
					Name: "TOOLCHAIN",
					Body: &grammar.Command{Cmd: "rustup toolchain list | cut -d' ' -f1"},
				},
				&grammar.CallVariant{
					Command: "rustup",
					Body: grammar.NewSequence(
						&grammar.Literal{Token: "+"},
						&grammar.Variable{Name: "TOOLCHAIN"},
					),
				},
			},
		},
		{
			text:        `grep;`,
			syntaxError: synErrCallVariantNoBody,
		},
		{
			text:        `<X> ::= ;`,
			syntaxError: synErrVarDefNoBody,
		},
		{
			text:        `grep [-i;`,
			syntaxError: synErrOptionalUnclosed,
		},
		{
			text:        `grep (-i;`,
			syntaxError: synErrGroupUnclosed,
		},
		{
			text:        `grep -i | ;`,
			syntaxError: synErrExprLackOfOperand,
		},
		{
			text:        `grep <PATTERN>`,
			syntaxError: synErrUnexpectedToken,
		},
		{
			text:        `grep <PATTERN>; )`,
			syntaxError: cmplerr.ErrTrailingInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			stmts, err := ParseText(tt.text)
			if tt.syntaxError != nil {
				if err == nil {
					t.Fatalf("expected error %v, got none", tt.syntaxError)
				}
				perr, ok := err.(*ParseError)
				if !ok {
					t.Fatalf("expected *ParseError, got %T: %v", err, err)
				}
				if perr.Cause != tt.syntaxError {
					t.Fatalf("expected cause %v, got %v", tt.syntaxError, perr.Cause)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(stmts, tt.stmts) {
				t.Fatalf("unexpected statements\nwant: %#v\ngot:  %#v", tt.stmts, stmts)
			}
		})
	}
}
