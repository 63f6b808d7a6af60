package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand wires cobra's shell completion generators.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Generate a completion script for your shell.

The script is written to stdout; source it directly or install it into
your shell's completion directory:

  source <(ringforge completion bash)
  ringforge completion zsh > "${fpath[1]}/_ringforge"
  ringforge completion fish > ~/.config/fish/completions/ringforge.fish
  ringforge completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletion(os.Stdout)
			case "zsh":
				return root.GenZshCompletion(os.Stdout)
			case "fish":
				return root.GenFishCompletion(os.Stdout, true)
			default:
				return root.GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}
