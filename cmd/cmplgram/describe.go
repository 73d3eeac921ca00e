package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nihei9/cmplgram/grammar"
	"github.com/nihei9/cmplgram/grammar/regex"
)

var describeFlags = struct {
	noMinimize *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "describe <grammar file path>",
		Short:   "Print the command name, position table and DFA in readable form",
		Example: `  cmplgram describe grammar.cmpl`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runDescribe,
	}
	describeFlags.noMinimize = cmd.Flags().Bool("no-minimize", false, "describe the raw, unminimized DFA")
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	text, err := readGrammarText(grmPath)
	if err != nil {
		return err
	}

	minimize := cfg.Minimize && !*describeFlags.noMinimize
	compiled, err := grammar.Compile(text, grammar.WithMinimize(minimize))
	if err != nil {
		return err
	}

	writeDescription(os.Stdout, compiled)
	return nil
}

func writeDescription(w *os.File, compiled *grammar.Compiled) {
	colored := cfg.ColorEnabled(term.IsTerminal(int(w.Fd())))
	header := lipgloss.NewStyle()
	dim := lipgloss.NewStyle()
	if colored {
		header = header.Bold(true)
		dim = dim.Faint(true)
	}

	fmt.Fprintln(w, header.Render("# Command"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, compiled.Command)
	fmt.Fprintln(w)

	if compiled.Augmented != nil {
		fmt.Fprintln(w, header.Render("# Positions"))
		fmt.Fprintln(w)
		positions := make([]int, 0, len(compiled.Augmented.Symbols))
		for p := range compiled.Augmented.Symbols {
			positions = append(positions, int(p))
		}
		sort.Ints(positions)
		for _, p := range positions {
			in := compiled.Augmented.Symbols[regex.Position(p)]
			fmt.Fprintf(w, "%4v %v\n", p, in)
		}
		fmt.Fprintf(w, "%4v %v\n", int(compiled.Augmented.EndPosition), dim.Render("<end marker>"))
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, header.Render("# States"))
	fmt.Fprintln(w)
	for _, s := range compiled.DFA.States {
		marker := "  "
		if compiled.DFA.Accepting[s] {
			marker = "* "
		}
		if s == compiled.DFA.Start {
			marker = "> " + marker[2:]
		}
		fmt.Fprintf(w, "%sstate %v\n", marker, s)
		for _, t := range compiled.DFA.TransitionsFrom(s) {
			fmt.Fprintf(w, "    %v -> %v\n", t.Input, t.To)
		}
	}
	fmt.Fprintln(w)

	accepting := 0
	for _, ok := range compiled.DFA.Accepting {
		if ok {
			accepting++
		}
	}
	fmt.Fprintf(w, "%v states, %v accepting\n", humanize.Comma(int64(len(compiled.DFA.States))), humanize.Comma(int64(accepting)))
}
