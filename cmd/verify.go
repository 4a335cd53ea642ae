package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/attestor-eth/attestor/artifacts"
	"github.com/attestor-eth/attestor/chain"
	"github.com/attestor-eth/attestor/cmd/exitcodes"
	"github.com/attestor-eth/attestor/logging"
	"github.com/attestor-eth/attestor/logging/colors"
	"github.com/attestor-eth/attestor/registry"
	"github.com/attestor-eth/attestor/reporting"
	"github.com/attestor-eth/attestor/utils"
	"github.com/attestor-eth/attestor/verification"
	"github.com/attestor-eth/attestor/verification/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// verifyCmd represents the command provider for verification
var verifyCmd = &cobra.Command{
	Use:               "verify",
	Short:             "Verifies deployed contracts against their compiled artifacts",
	Long:              `Verifies deployed contracts against their compiled artifacts`,
	Args:              cmdValidateVerifyArgs,
	ValidArgsFunction: cmdValidVerifyArgs,
	RunE:              cmdRunVerify,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	// Add all the flags allowed for the verify command
	addVerifyFlags()

	// Add the verify command and its associated flags to the root command
	rootCmd.AddCommand(verifyCmd)
}

// cmdValidVerifyArgs will return which flags and sub-commands are valid for dynamic completion for the verify command
func cmdValidVerifyArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	// Gather a list of flags that are available to be used in the current command but have not been used yet
	var unusedFlags []string

	// Examine all the flags, and add any flags that have not been set in the current command line
	// to a list of unused flags
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if !flag.Changed {
			// When adding a flag to a command, include the "--" prefix to indicate that it is a flag
			// and not a positional argument. Additionally, when the user presses the TAB key twice after typing
			// a flag name, the "--" prefix will appear again, indicating that more flags are available and that
			// none of the arguments are positional.
			unusedFlags = append(unusedFlags, "--"+flag.Name)
		}
	})
	// Provide a list of flags that can be used in the current command (but have not been used yet)
	// for autocompletion suggestions
	return unusedFlags, cobra.ShellCompDirectiveNoFileComp
}

// cmdValidateVerifyArgs makes sure that there are no positional arguments provided to the verify command
func cmdValidateVerifyArgs(cmd *cobra.Command, args []string) error {
	// Make sure we have no positional args
	if err := cobra.NoArgs(cmd, args); err != nil {
		err = fmt.Errorf("verify does not accept any positional arguments, only flags and their associated values")
		cmdLogger.Error("Failed to validate args to the verify command", err)
		return err
	}
	return nil
}

// cmdRunVerify executes the CLI verify command and navigates through the following possibilities:
// #1: We will search for either a custom config file (via --config) or the default (attestor.json).
// If we find it, read it. If we can't read it, throw an error.
// #2: If a custom file was provided (--config was used), and we can't find the file, throw an error.
// #3: If attestor.json can't be found, use the default project configuration.
func cmdRunVerify(cmd *cobra.Command, args []string) error {
	var projectConfig *config.ProjectConfig

	// Check to see if --config flag was used and store the value of --config flag
	configFlagUsed := cmd.Flags().Changed("config")
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		cmdLogger.Error("Failed to run the verify command", err)
		return err
	}

	// If --config was not used, look for `attestor.json` in the current work directory
	if !configFlagUsed {
		workingDirectory, err := os.Getwd()
		if err != nil {
			cmdLogger.Error("Failed to run the verify command", err)
			return err
		}
		configPath = filepath.Join(workingDirectory, DefaultProjectConfigFilename)
	}

	// Check to see if the file exists at configPath
	_, existenceError := os.Stat(configPath)

	// Possibility #1: File was found
	if existenceError == nil {
		// Try to read the configuration file and throw an error if something goes wrong
		cmdLogger.Info("Reading the configuration file at: ", colors.Bold, configPath, colors.Reset)
		projectConfig, err = config.ReadProjectConfigFromFile(configPath)
		if err != nil {
			cmdLogger.Error("Failed to run the verify command", err)
			return err
		}
	}

	// Possibility #2: If the --config flag was used, and we couldn't find the file, we'll throw an error
	if configFlagUsed && existenceError != nil {
		cmdLogger.Error("Failed to run the verify command", existenceError)
		return existenceError
	}

	// Possibility #3: --config flag was not used and attestor.json was not found, so use the default project config
	if !configFlagUsed && existenceError != nil {
		cmdLogger.Warn(fmt.Sprintf("Unable to find the config file at %v, will use the default project configuration instead", configPath))
		projectConfig = config.GetDefaultProjectConfig()
	}

	// Update the project configuration given whatever flags were set using the CLI
	err = updateProjectConfigWithVerifyFlags(cmd, projectConfig)
	if err != nil {
		cmdLogger.Error("Failed to run the verify command", err)
		return err
	}

	// Change our working directory to the parent directory of the project configuration file. Registry and artifact
	// paths are resolved relative to wherever the configuration is supplied from.
	err = os.Chdir(filepath.Dir(configPath))
	if err != nil {
		cmdLogger.Error("Failed to run the verify command", err)
		return err
	}

	// Validate the final configuration now that flag overrides have been applied
	err = projectConfig.Validate()
	if err != nil {
		cmdLogger.Error("Invalid verification configuration", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}

	// Set up the global logger per the resolved configuration
	logging.GlobalLogger = logging.NewLogger(projectConfig.Verification.Logging.Level)
	cmdLogger.SetLevel(projectConfig.Verification.Logging.Level)
	if projectConfig.Verification.Logging.LogDirectory != "" {
		file, err := utils.CreateFile(projectConfig.Verification.Logging.LogDirectory,
			fmt.Sprintf("attestor-%d.log", time.Now().Unix()))
		if err != nil {
			cmdLogger.Error("Failed to create log file", err)
			return err
		}
		defer file.Close()
		logging.GlobalLogger.AddWriter(file, logging.STRUCTURED)
	}

	// Read the registry of contracts to verify
	descriptors, err := registry.ReadRegistryFromFile(projectConfig.Verification.RegistryPath)
	if err != nil {
		cmdLogger.Error("Failed to read the contract registry", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	if len(descriptors) == 0 {
		cmdLogger.Warn("The contract registry at ", colors.Bold, projectConfig.Verification.RegistryPath, colors.Reset, " lists no contracts")
		return nil
	}

	// Connect to the chain
	chainReader, err := chain.NewRPCReader(projectConfig.Verification.RPCURL)
	if err != nil {
		cmdLogger.Error("Failed to connect to the RPC endpoint", err)
		return exitcodes.NewErrorWithExitCode(err, exitcodes.ExitCodeHandledError)
	}
	defer chainReader.Close()

	// Cancel outstanding RPC requests on keyboard interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	go func() {
		<-c
		cancel()
	}()

	// Verify every registry entry and report the outcomes
	verifier := verification.NewVerifier(artifacts.NewFileReader(), chainReader, projectConfig.Verification.Workers)
	cmdLogger.Info("Verifying ", colors.Bold, len(descriptors), colors.Reset, " contracts against ", colors.Bold, projectConfig.Verification.RPCURL, colors.Reset)
	outcomes := verifier.VerifyAll(ctx, descriptors)

	reporter := reporting.NewReporter(projectConfig.Verification.DiffDisabled, projectConfig.Verification.MaxDiffChars)
	summary := reporter.Report(outcomes)

	// If any contract failed to verify, we'll want to return a special exit code
	if summary.Failed() {
		return exitcodes.NewErrorWithExitCode(nil, exitcodes.ExitCodeVerificationFailed)
	}

	return nil
}
