package cmd

import (
	"fmt"

	"github.com/attestor-eth/attestor/verification/config"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// addVerifyFlags adds the various flags for the verify command
func addVerifyFlags() {
	// Get the default project config to reference default values in flag descriptions
	defaultConfig := config.GetDefaultProjectConfig()

	// Prevent alphabetical sorting of usage message
	verifyCmd.Flags().SortFlags = false

	// Config file
	verifyCmd.Flags().String("config", "", "path to config file")

	// Registry file
	verifyCmd.Flags().String("registry", "",
		fmt.Sprintf("path to the registry file listing contracts to verify (unless a config file is provided, default is %q)", defaultConfig.Verification.RegistryPath))

	// RPC endpoint
	verifyCmd.Flags().String("rpc-url", "",
		"JSON-RPC endpoint of the node to fetch on-chain bytecode and transactions from")

	// Number of workers
	verifyCmd.Flags().Int("workers", 0,
		fmt.Sprintf("number of registry entries to verify concurrently (unless a config file is provided, default is %d)", defaultConfig.Verification.Workers))

	// Diff behavior
	verifyCmd.Flags().Bool("no-diff", false,
		"skip the diagnostic bytecode diff on creation-code mismatches")
	verifyCmd.Flags().Int("max-diff-chars", 0,
		fmt.Sprintf("bound on hex characters per operand in diagnostic diffs, 0 for unbounded (unless a config file is provided, default is %d)", defaultConfig.Verification.MaxDiffChars))

	// Log level
	verifyCmd.Flags().String("verbosity", "",
		fmt.Sprintf("log level (trace, debug, info, warn, error) (unless a config file is provided, default is %q)", defaultConfig.Verification.Logging.Level.String()))
}

// updateProjectConfigWithVerifyFlags will update the given projectConfig with any CLI arguments that were provided
// to the verify command
func updateProjectConfigWithVerifyFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
	var err error

	// Update the registry path if --registry was used
	if cmd.Flags().Changed("registry") {
		projectConfig.Verification.RegistryPath, err = cmd.Flags().GetString("registry")
		if err != nil {
			return err
		}
	}

	// Update the RPC endpoint if --rpc-url was used
	if cmd.Flags().Changed("rpc-url") {
		projectConfig.Verification.RPCURL, err = cmd.Flags().GetString("rpc-url")
		if err != nil {
			return err
		}
	}

	// Update the worker count if --workers was used
	if cmd.Flags().Changed("workers") {
		projectConfig.Verification.Workers, err = cmd.Flags().GetInt("workers")
		if err != nil {
			return err
		}
	}

	// Update the diff policy if --no-diff or --max-diff-chars was used
	if cmd.Flags().Changed("no-diff") {
		projectConfig.Verification.DiffDisabled, err = cmd.Flags().GetBool("no-diff")
		if err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("max-diff-chars") {
		projectConfig.Verification.MaxDiffChars, err = cmd.Flags().GetInt("max-diff-chars")
		if err != nil {
			return err
		}
	}

	// Update the log level if --verbosity was used
	if cmd.Flags().Changed("verbosity") {
		verbosity, err := cmd.Flags().GetString("verbosity")
		if err != nil {
			return err
		}
		projectConfig.Verification.Logging.Level, err = zerolog.ParseLevel(verbosity)
		if err != nil {
			return errors.Wrapf(err, "invalid --verbosity value %q", verbosity)
		}
	}

	return nil
}
