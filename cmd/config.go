package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/cbuild/config"
	"github.com/daedaleanai/cbuild/log"
	"github.com/daedaleanai/cbuild/util"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Args:  cobra.NoArgs,
	Short: "Prints the effective configuration",
	Long: `Prints the configuration resulting from the configuration file and the
CBUILD_* environment variables.`,
	Run: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, args []string) {
	if configDir, err := config.Dir(); err == nil {
		log.Log("Configuration file: '%s'\n", config.FilePath(configDir))
	}

	settings := loadSettings(cmd)
	for _, entry := range util.OrderedEntries(settings.Values()) {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s='%s'\n", entry.Key, entry.Value)
	}
}
