package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/cmplgram/scenario"
	"github.com/nihei9/cmplgram/shell"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <scenario file path>|<scenario directory path>",
		Short:   "Run scenario fixtures against their embedded grammars",
		Example: `  cmplgram test scenarios/`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cases := scenario.ListCases(args[0])

	errOccurred := false
	for _, c := range cases {
		if c.Error != nil {
			fmt.Fprintf(os.Stderr, "Failed to read a scenario file %v: %v\n", c.FilePath, c.Error)
			errOccurred = true
		}
	}
	if errOccurred {
		return errors.New("cannot run test")
	}

	bridge := shell.NewExecBridge(shell.Name(cfg.Shell))
	bridge.Timeout = cfg.ShellTimeout

	tester := &scenario.Tester{Bridge: bridge, Cases: cases}
	results := tester.Run(context.Background())

	testFailed := false
	for _, r := range results {
		fmt.Fprintln(os.Stdout, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("test failed")
	}
	return nil
}
