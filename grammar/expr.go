// Package grammar holds the expression tree produced by parsing a
// completion grammar, the statements a grammar text compiles to, and the
// validation/resolution pass that turns a list of statements into a single
// expression tree rooted at one command.
package grammar

import "fmt"

// Expr is the expression tree for a command's argument grammar. Expr values
// form a DAG, not necessarily a tree: variable substitution (see Resolve)
// shares subtrees across multiple parents, and callers must treat a Expr as
// immutable once built.
type Expr interface {
	isExpr()
}

// Literal is a concrete word such as "--help" or "build". Desc, when
// non-empty, is the human-readable description attached to the literal in
// the grammar text (a quoted string following the literal).
type Literal struct {
	Token string
	Desc  string
}

func (*Literal) isExpr() {}

// Variable is a reference to a nonterminal, written <NAME> in grammar text.
// After Resolve, only well-known nonterminals (PATH, DIRECTORY) or free
// names (resolved at match time as match-anything) remain; every
// user-defined nonterminal has been substituted away.
type Variable struct {
	Name string
}

func (*Variable) isExpr() {}

// Command is a leaf written `{ shell command }` in grammar text. It lowers
// directly to an Any(Command(cmd)) regex input at augmentation time (see
// grammar/regex): unlike Variable, it never needs resolution against a
// named definition, since the shell command itself carries everything the
// Shell Bridge needs to produce completions for it.
type Command struct {
	Cmd string
}

func (*Command) isExpr() {}

// Sequence is an ordered concatenation of at least two children.
type Sequence struct {
	Children []Expr
}

func (*Sequence) isExpr() {}

// Alternative is an unordered choice among at least two children.
type Alternative struct {
	Children []Expr
}

func (*Alternative) isExpr() {}

// Optional matches zero or one occurrence of Child.
type Optional struct {
	Child Expr
}

func (*Optional) isExpr() {}

// Many1 matches one or more occurrences of Child.
type Many1 struct {
	Child Expr
}

func (*Many1) isExpr() {}

// NewSequence builds a Sequence from children, flattening away a
// single-child degenerate case. It panics if given fewer than one child;
// the grammar parser never calls it with zero.
func NewSequence(children ...Expr) Expr {
	if len(children) == 0 {
		panic(fmt.Errorf("grammar: NewSequence called with no children"))
	}
	if len(children) == 1 {
		return children[0]
	}
	return &Sequence{Children: children}
}

// NewAlternative builds an Alternative from children, flattening away a
// single-child degenerate case.
func NewAlternative(children ...Expr) Expr {
	if len(children) == 0 {
		panic(fmt.Errorf("grammar: NewAlternative called with no children"))
	}
	if len(children) == 1 {
		return children[0]
	}
	return &Alternative{Children: children}
}

// Statement is either a CallVariant or a VariableDefinition; a grammar text
// is a sequence of Statement values (see grammar/parser).
type Statement interface {
	isStatement()
}

// CallVariant is a top-level grammar rule `command expr;`.
type CallVariant struct {
	Command string
	Body    Expr
}

func (*CallVariant) isStatement() {}

// VariableDefinition is a rule `<NAME> ::= expr;`.
type VariableDefinition struct {
	Name string
	Body Expr
}

func (*VariableDefinition) isStatement() {}
