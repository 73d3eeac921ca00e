package grammar

import (
	cmplerr "github.com/nihei9/cmplgram/error"
)

// wellKnownNonterminals are never substituted by Resolve; the regex and
// automaton packages give them match-anything semantics of their own
// (PATH/DIRECTORY dispatch to the Shell Bridge, everything else is a free
// match-anything token).
var wellKnownNonterminals = map[string]bool{
	"PATH":      true,
	"DIRECTORY": true,
}

// Resolved is the result of validating and resolving a grammar's
// statements: a single command name and the expression tree describing all
// of its call variants, with every user-defined variable substituted away.
type Resolved struct {
	Command string
	Body    Expr
}

// Resolve validates stmts and substitutes variable definitions into the
// call variants that reference them, returning the single resolved grammar
// the remaining compiler stages operate on.
func Resolve(stmts []Statement) (*Resolved, error) {
	var variants []*CallVariant
	defs := map[string]*VariableDefinition{}
	var defOrder []string
	for _, stmt := range stmts {
		switch s := stmt.(type) {
		case *CallVariant:
			variants = append(variants, s)
		case *VariableDefinition:
			defs[s.Name] = s
			defOrder = append(defOrder, s.Name)
		}
	}

	if len(variants) == 0 {
		return nil, cmplerr.ErrEmptyGrammar
	}

	command := variants[0].Command
	var names []string
	seen := map[string]bool{}
	for _, v := range variants {
		if !seen[v.Command] {
			seen[v.Command] = true
			names = append(names, v.Command)
		}
	}
	if len(names) > 1 {
		return nil, &cmplerr.VaryingCommandNames{Names: names}
	}

	resolvedDefs, err := resolveDefinitions(defs, defOrder)
	if err != nil {
		return nil, err
	}

	bodies := make([]Expr, 0, len(variants))
	for _, v := range variants {
		bodies = append(bodies, substitute(v.Body, resolvedDefs))
	}

	return &Resolved{
		Command: command,
		Body:    NewAlternative(bodies...),
	}, nil
}

// resolveDefinitions substitutes every VariableDefinition's dependencies
// into its own body, bottom-up, detecting reference cycles along the way.
// The result maps a definition's name directly to its fully-substituted
// body so call-variant substitution is a single lookup.
func resolveDefinitions(defs map[string]*VariableDefinition, order []string) (map[string]Expr, error) {
	resolved := map[string]Expr{}
	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := map[string]int{}
	var path []string

	var visit func(name string) error
	visit = func(name string) error {
		def, ok := defs[name]
		if !ok {
			// Not a user-defined variable: PATH/DIRECTORY or a free
			// nonterminal resolved at match time instead.
			return nil
		}
		switch state[name] {
		case visited:
			return nil
		case visiting:
			cycle := append(append([]string{}, path...), name)
			return &cmplerr.CyclicVariables{Cycle: cycle}
		}
		state[name] = visiting
		path = append(path, name)
		if err := visitRefs(def.Body, visit); err != nil {
			return err
		}
		path = path[:len(path)-1]
		state[name] = visited
		resolved[name] = substitute(def.Body, resolved)
		return nil
	}

	for _, name := range order {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return resolved, nil
}

// visitRefs calls visit for every Variable name reachable from e, short of
// descending into well-known nonterminals.
func visitRefs(e Expr, visit func(string) error) error {
	switch n := e.(type) {
	case *Variable:
		if wellKnownNonterminals[n.Name] {
			return nil
		}
		return visit(n.Name)
	case *Sequence:
		for _, c := range n.Children {
			if err := visitRefs(c, visit); err != nil {
				return err
			}
		}
	case *Alternative:
		for _, c := range n.Children {
			if err := visitRefs(c, visit); err != nil {
				return err
			}
		}
	case *Optional:
		return visitRefs(n.Child, visit)
	case *Many1:
		return visitRefs(n.Child, visit)
	}
	return nil
}

// substitute replaces every Variable in e whose name is a key of resolved
// with its resolved body. Subtrees with no substitutable reference are
// returned unchanged, so unrelated call variants keep sharing them.
func substitute(e Expr, resolved map[string]Expr) Expr {
	switch n := e.(type) {
	case *Variable:
		if body, ok := resolved[n.Name]; ok {
			return body
		}
		return n
	case *Sequence:
		children := make([]Expr, len(n.Children))
		changed := false
		for i, c := range n.Children {
			children[i] = substitute(c, resolved)
			if children[i] != c {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return &Sequence{Children: children}
	case *Alternative:
		children := make([]Expr, len(n.Children))
		changed := false
		for i, c := range n.Children {
			children[i] = substitute(c, resolved)
			if children[i] != c {
				changed = true
			}
		}
		if !changed {
			return n
		}
		return &Alternative{Children: children}
	case *Optional:
		child := substitute(n.Child, resolved)
		if child == n.Child {
			return n
		}
		return &Optional{Child: child}
	case *Many1:
		child := substitute(n.Child, resolved)
		if child == n.Child {
			return n
		}
		return &Many1{Child: child}
	default:
		return n
	}
}
