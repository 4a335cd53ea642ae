package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// supportedShells are the shells we can generate completion scripts for
var supportedShells = []string{"bash", "zsh", "fish"}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Generate the autocompletion script for the specified shell (bash, zsh, or fish)",
	Long: `To load completions:

Bash:

  $ source <(attestor completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ attestor completion bash > /etc/bash_completion.d/attestor
  # macOS:
  $ attestor completion bash > $(brew --prefix)/etc/bash_completion.d/attestor

Zsh:

  $ source <(attestor completion zsh)

  # To load completions for each session, execute once:
  $ attestor completion zsh > "${fpath[1]}/_attestor"

Fish:

  $ attestor completion fish | source

  # To load completions for each session, execute once:
  $ attestor completion fish > ~/.config/fish/completions/attestor.fish`,
	Args:          cmdValidateCompletionArgs,
	RunE:          cmdRunCompletion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// cmdValidateCompletionArgs makes sure a single, supported shell name was provided to the completion command
func cmdValidateCompletionArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.ExactArgs(1)(cmd, args); err != nil {
		err = fmt.Errorf("completion requires exactly 1 shell argument (options: %s)", strings.Join(supportedShells, ", "))
		cmdLogger.Error("Failed to validate args to the completion command", err)
		return err
	}
	return nil
}

// cmdRunCompletion generates the completion script for the requested shell
func cmdRunCompletion(cmd *cobra.Command, args []string) error {
	var err error
	switch args[0] {
	case "bash":
		err = cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		err = cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		err = cmd.Root().GenFishCompletion(os.Stdout, true)
	default:
		err = fmt.Errorf("completion was provided invalid shell argument '%s' (options: %s)", args[0], strings.Join(supportedShells, ", "))
	}
	if err != nil {
		cmdLogger.Error("Failed to generate the completion script", err)
		return err
	}
	return nil
}
