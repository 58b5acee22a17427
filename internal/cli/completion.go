package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand generates shell completion scripts. The script is
// written to stdout so it can be sourced directly or saved to the shell's
// completion directory.
func (c *CLI) completionCommand() *cobra.Command {
	generators := map[string]func(cmd *cobra.Command) error{
		"bash": func(cmd *cobra.Command) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
		"zsh": func(cmd *cobra.Command) error {
			return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
		},
		"fish": func(cmd *cobra.Command) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
		"powershell": func(cmd *cobra.Command) error {
			return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
		},
	}

	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for the given shell.

Load it for the current session:

  source <(` + appName + ` completion bash)
  ` + appName + ` completion fish | source

or save it to your shell's completion directory to load on every session.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generators[args[0]](cmd)
		},
	}
}
