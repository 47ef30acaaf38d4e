package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dazzle-layout.

To load completions:

Bash:
  $ source <(dazzle-layout completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dazzle-layout completion bash > /etc/bash_completion.d/dazzle-layout
  # macOS:
  $ dazzle-layout completion bash > $(brew --prefix)/etc/bash_completion.d/dazzle-layout

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dazzle-layout completion zsh > "${fpath[1]}/_dazzle-layout"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dazzle-layout completion fish | source

  # To load completions for each session, execute once:
  $ dazzle-layout completion fish > ~/.config/fish/completions/dazzle-layout.fish

PowerShell:
  PS> dazzle-layout completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> dazzle-layout completion powershell > dazzle-layout.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
