package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand prints shell completion scripts on stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for your shell.

  bash:        source <(acotour completion bash)
  zsh:         acotour completion zsh > "${fpath[1]}/_acotour"
  fish:        acotour completion fish > ~/.config/fish/completions/acotour.fish
  powershell:  acotour completion powershell | Out-String | Invoke-Expression

Start a new shell afterwards (zsh needs "autoload -U compinit; compinit").`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, out := cmd.Root(), cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			case "powershell":
				return root.GenPowerShellCompletionWithDesc(out)
			default:
				return root.GenBashCompletionV2(out, true)
			}
		},
	}
}
