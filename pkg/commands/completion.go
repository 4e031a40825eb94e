package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generates shell completion scripts",
		Long: `To load completion run

. <(diary completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(diary completion)
`,
		ValidArgs: []string{"bash", "zsh", "fish"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			switch shell {
			case "zsh":
				return topLevel.GenZshCompletion(os.Stdout)
			case "fish":
				return topLevel.GenFishCompletion(os.Stdout, true)
			default:
				return topLevel.GenBashCompletion(os.Stdout)
			}
		},
	}

	topLevel.AddCommand(cmd)
}
