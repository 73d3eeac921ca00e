package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nihei9/cmplgram/grammar"
	"github.com/nihei9/cmplgram/match"
	"github.com/nihei9/cmplgram/shell"
)

var completeFlags = struct {
	index *int
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "complete <grammar file path> -- <word>...",
		Short:   "Answer a completion query against a grammar",
		Example: `  cmplgram complete grammar.cmpl -- add --b`,
		Args:    cobra.MinimumNArgs(1),
		RunE:    runComplete,
	}
	completeFlags.index = cmd.Flags().Int("index", -1, "index of the word under completion (default: len(words))")
	rootCmd.AddCommand(cmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	grmPath := args[0]
	words := args[1:]

	text, err := readGrammarText(grmPath)
	if err != nil {
		return err
	}

	compiled, err := grammar.Compile(text, grammar.WithMinimize(cfg.Minimize))
	if err != nil {
		return err
	}

	index := *completeFlags.index
	if index < 0 {
		index = len(words)
	}

	bridge := shell.NewExecBridge(shell.Name(cfg.Shell))
	bridge.Timeout = cfg.ShellTimeout

	m := match.New(compiled.DFA, bridge)
	candidates := m.Complete(context.Background(), words, index)

	printCandidates(candidates)
	return nil
}

func printCandidates(candidates []match.Candidate) {
	colored := cfg.ColorEnabled(term.IsTerminal(int(os.Stdout.Fd())))
	descStyle := lipgloss.NewStyle()
	if colored {
		descStyle = descStyle.Faint(true)
	}

	for _, c := range candidates {
		if c.Description == "" {
			fmt.Fprintln(os.Stdout, c.Completion)
			continue
		}
		fmt.Fprintf(os.Stdout, "%s\t%s\n", c.Completion, descStyle.Render(c.Description))
	}
}
