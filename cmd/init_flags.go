package cmd

import (
	"github.com/attestor-eth/attestor/verification/config"
	"github.com/spf13/cobra"
)

// addInitFlags adds the various flags for the init command
func addInitFlags() {
	// Prevent alphabetical sorting of usage message
	initCmd.Flags().SortFlags = false

	// Output path for configuration
	initCmd.Flags().String("out", "", "output path for the new project configuration file")

	// Common fields worth seeding into a fresh configuration
	initCmd.Flags().String("registry", "", "path to the registry file listing contracts to verify")
	initCmd.Flags().String("rpc-url", "", "JSON-RPC endpoint of the node to fetch on-chain bytecode and transactions from")
}

// updateProjectConfigWithInitFlags will update the given projectConfig with any CLI arguments that were provided to
// the init command
func updateProjectConfigWithInitFlags(cmd *cobra.Command, projectConfig *config.ProjectConfig) error {
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

	return nil
}
