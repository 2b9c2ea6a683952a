package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// declarationExts are the file extensions offered when completing a
// declaration file argument.
var declarationExts = []string{"json", "yaml", "yml", "toml"}

// completeDeclaration completes the single declaration file argument of
// resolve, graph, watch and inspect.
func completeDeclaration(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return declarationExts, cobra.ShellCompDirectiveFilterFileExt
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	generators := map[string]func(root *cobra.Command, w io.Writer) error{
		"bash":       func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
		"zsh":        func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
		"fish":       func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
		"powershell": func(root *cobra.Command, w io.Writer) error { return root.GenPowerShellCompletionWithDesc(w) },
	}

	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for anchorlayout. Declaration file
arguments complete to .json, .yaml, .yml and .toml files.

  $ source <(anchorlayout completion bash)
  $ anchorlayout completion zsh > "${fpath[1]}/_anchorlayout"
  $ anchorlayout completion fish | source
  PS> anchorlayout completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return generators[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}
