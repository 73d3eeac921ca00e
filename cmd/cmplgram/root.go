package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nihei9/cmplgram/internal/config"
)

var rootFlags = struct {
	cfgFile *string
}{}

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "cmplgram",
	Short: "Compile shell-completion grammars into matchable DFAs",
	Long: `cmplgram provides three features:
- Compiles a shell-completion grammar into a minimized DFA.
- Answers completion queries against a compiled grammar.
- Runs scenario fixtures against a grammar for regression testing.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(*rootFlags.cfgFile)
		if err != nil {
			return fmt.Errorf("cannot load config: %w", err)
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootFlags.cfgFile = rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default: $CMPLGRAM_CFG_FILE or built-in defaults)")
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
