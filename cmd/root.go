package cmd

import (
	"github.com/attestor-eth/attestor/logging"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// rootCmd represents the root CLI command object which all other commands are attached to.
var rootCmd = &cobra.Command{
	Use:   "attestor",
	Short: "A deployed smart contract bytecode verifier",
	Long:  "attestor verifies that compiled contract artifacts match the bytecode deployed on-chain",
}

// cmdLogger is the logger that will be used for the cmd package. Unlike the global logger, it outputs to console
// right away, since commands need to report progress and errors before a project configuration has been resolved.
var cmdLogger = logging.NewLogger(zerolog.InfoLevel).NewSubLogger("module", "cmd")

// Execute provides an exportable function that will execute the root command
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}
