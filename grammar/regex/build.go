package regex

import (
	"fmt"

	"github.com/nihei9/cmplgram/grammar"
)

// Augmented is the augmented regex tree built from a resolved grammar
// expression, plus the tables the automaton package needs to run direct
// (Aho/Sethi/Ullman) DFA construction over it.
type Augmented struct {
	Symbols     map[Position]Input
	EndPosition Position
	root        tree
	follow      followTable
}

// Start returns the firstpos set of the augmented tree: the DFA's starting
// state is exactly this set of positions.
func (a *Augmented) Start() []Position {
	return a.root.first().slice()
}

// FollowOf returns the followpos set of p: the positions that may come
// immediately after p in some matched sequence of words.
func (a *Augmented) FollowOf(p Position) []Position {
	s, ok := a.follow[p]
	if !ok {
		return nil
	}
	return s.slice()
}

// Build converts a resolved grammar expression into an augmented tree. Each
// atom in e gets its own position, including repeated occurrences
// introduced by lowering Many1 into concat(child, repeat(child)); distinct
// occurrences of the same literal or nonterminal still get distinct
// positions so followpos stays precise.
func Build(e grammar.Expr) *Augmented {
	root := newConcatNode(convert(e), newEndMarkerNode())
	assignPositions(root, 1)

	symbols := map[Position]Input{}
	var endPos Position
	var collect func(n tree)
	collect = func(n tree) {
		if n == nil {
			return
		}
		left, right := n.children()
		collect(left)
		collect(right)
		switch leaf := n.(type) {
		case *leafNode:
			symbols[leaf.pos] = leaf.input
		case *endMarkerNode:
			endPos = leaf.pos
		}
	}
	collect(root)

	return &Augmented{
		follow:      genFollowTable(root),
		Symbols:     symbols,
		EndPosition: endPos,
		root:        root,
	}
}

func convert(e grammar.Expr) tree {
	switch n := e.(type) {
	case *grammar.Literal:
		return newLeafNode(&Literal{Token: n.Token, Desc: n.Desc})
	case *grammar.Variable:
		return newLeafNode(&Any{Match: &Nonterminal{Name: n.Name}})
	case *grammar.Command:
		return newLeafNode(&Any{Match: &Command{Cmd: n.Cmd}})
	case *grammar.Sequence:
		return concatAll(n.Children)
	case *grammar.Alternative:
		return altAll(n.Children)
	case *grammar.Optional:
		return newOptionNode(convert(n.Child))
	case *grammar.Many1:
		return newConcatNode(convert(n.Child), newRepeatNode(convert(n.Child)))
	default:
		panic(fmt.Sprintf("regex: unsupported expression type %T", e))
	}
}

func concatAll(children []grammar.Expr) tree {
	t := convert(children[0])
	for _, c := range children[1:] {
		t = newConcatNode(t, convert(c))
	}
	return t
}

func altAll(children []grammar.Expr) tree {
	t := convert(children[0])
	for _, c := range children[1:] {
		t = newAltNode(t, convert(c))
	}
	return t
}
