package cmd

import (
	"fmt"
	"strings"

	"github.com/nadaso8/MARlea-parser/packages/core/config"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for marlea.

Bash:
  $ source <(marlea completion bash)

Zsh:
  $ marlea completion zsh > "${fpath[1]}/_marlea"

Fish:
  $ marlea completion fish > ~/.config/fish/completions/marlea.fish

PowerShell:
  PS> marlea completion powershell | Out-String | Invoke-Expression

File arguments complete to the network extensions from the config file.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletionV2(out, true)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unsupported shell %q", args[0])
	},
}

// completeNetworkFiles offers directories and files with a network extension.
// It runs before PersistentPreRunE, so the config is loaded here.
func completeNetworkFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	c, err := config.LoadConfig(configFlag)
	if err != nil {
		c = config.DefaultConfig()
	}
	exts := make([]string, 0, len(c.Extensions))
	for _, e := range c.Extensions {
		exts = append(exts, strings.TrimPrefix(e, "."))
	}
	return exts, cobra.ShellCompDirectiveFilterFileExt
}

func init() {
	rootCmd.AddCommand(completionCmd)

	for _, c := range []*cobra.Command{parseCmd, validateCmd, listCmd, fmtCmd, exportCmd, benchCmd} {
		c.ValidArgsFunction = completeNetworkFiles
	}
	queryCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return completeNetworkFiles(cmd, args, toComplete)
		}
		return []string{"reactions.#", "speciesCounts.#", "species"}, cobra.ShellCompDirectiveNoFileComp
	}
}
