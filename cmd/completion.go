package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/cbuild/log"
	"github.com/daedaleanai/cbuild/util"
)

// completionGenerators writes the completion script of the root command for each supported shell.
var completionGenerators = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletion(w)
	},
	"zsh": func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
}

var completionCmd = &cobra.Command{
	Use:   "completion SHELL",
	Short: "Prints the shell completion script",
	Long: `Prints the completion script for bash, fish, powershell or zsh.

For example, to enable completion in the current bash session:

  $ source <(cbuild completion bash)
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             util.OrderedKeys(completionGenerators),
	Args:                  cobra.ExactValidArgs(1),
	Run:                   runCompletion,
	Hidden:                true,
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

func runCompletion(cmd *cobra.Command, args []string) {
	generate := completionGenerators[args[0]]
	if err := generate(cmd.Root(), cmd.OutOrStdout()); err != nil {
		log.Fatal("Failed to generate %s completion: %s.\n", args[0], err)
	}
}
