package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/cmplgram/exportspec"
	"github.com/nihei9/cmplgram/grammar"
)

var compileFlags = struct {
	output     *string
	noMinimize *bool
	compress   *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile <grammar file path>",
		Short:   "Compile a grammar into a minimized DFA",
		Example: `  cmplgram compile grammar.cmpl -o grammar.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	compileFlags.noMinimize = cmd.Flags().Bool("no-minimize", false, "skip DFA minimization")
	compileFlags.compress = cmd.Flags().Bool("compress", false, "row-displacement compress the transition table")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}

	text, err := readGrammarText(grmPath)
	if err != nil {
		return err
	}

	minimize := cfg.Minimize && !*compileFlags.noMinimize
	compiled, err := grammar.Compile(text, grammar.WithMinimize(minimize))
	if err != nil {
		return err
	}

	spec := exportspec.From(compiled)
	if *compileFlags.compress {
		if err := exportspec.Compress(spec); err != nil {
			return fmt.Errorf("cannot compress transition table: %w", err)
		}
	}

	b, err := json.Marshal(spec)
	if err != nil {
		return err
	}

	if *compileFlags.output == "" {
		fmt.Fprintf(os.Stdout, "%v\n", string(b))
		return nil
	}
	return ioutil.WriteFile(*compileFlags.output, append(b, '\n'), 0644)
}

func readGrammarText(path string) (string, error) {
	if path == "" {
		src, err := ioutil.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(src), nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("cannot open the grammar file %s: %w", path, err)
	}
	return string(src), nil
}
