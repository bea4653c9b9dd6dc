package cmd

import (
	"github.com/spf13/cobra"

	"github.com/daedaleanai/cbuild/builder"
	"github.com/daedaleanai/cbuild/config"
	"github.com/daedaleanai/cbuild/log"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [directory-path]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Removes the build directory",
	Long: `Removes the given directory (default: the build directory) and all of
its contents. Nothing happens if the directory does not exist.`,
	Run: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	config.AddBuildDirFlag(cleanCmd.Flags())
}

func runClean(cmd *cobra.Command, args []string) {
	var dir string
	if len(args) == 1 {
		dir = args[0]
	} else {
		buildDir, err := config.LoadBuildDir(cmd.Flags())
		if err != nil {
			log.Fatal("Invalid configuration: %s.\n", err)
		}
		dir = buildDir
	}

	stop := log.StartSpinner(" Removing " + dir)
	removed, err := builder.Clean(dir)
	stop()
	if err != nil {
		log.Fatal("Failed to remove '%s': %s.\n", dir, err)
	}
	if removed {
		log.Debug("Removed '%s'.\n", dir)
	}
}
