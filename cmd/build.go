package cmd

import (
	"os"
	"path"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/cbuild/builder"
	"github.com/daedaleanai/cbuild/config"
	"github.com/daedaleanai/cbuild/log"
	"github.com/daedaleanai/cbuild/runner"
	"github.com/daedaleanai/cbuild/util"
)

const cmakeListsFileName = "CMakeLists.txt"

var buildCmd = &cobra.Command{
	Use:   "build [source-root-path]",
	Args:  cobra.MaximumNArgs(1),
	Short: "Configures and builds the source tree in a fresh build directory",
	Long: `Removes the build directory if it exists, configures the source tree
(default: the current directory) into it with CMake and runs the build.
The build stops at the first step that fails.`,
	Run: runBuild,
}

var keepBuildDir bool

// newRunner creates the runner used to invoke CMake.
var newRunner = func() runner.Runner {
	return runner.Exec{Stdout: os.Stdout, Stderr: os.Stderr}
}

func init() {
	rootCmd.AddCommand(buildCmd)
	config.AddBuildDirFlag(buildCmd.Flags())
	config.AddToolFlags(buildCmd.Flags())
	buildCmd.Flags().BoolVar(&keepBuildDir, "keep", false, "Do not remove the build directory before configuring")
}

func runBuild(cmd *cobra.Command, args []string) {
	settings := loadSettings(cmd)
	if len(args) == 1 {
		settings.SourceRoot = args[0]
	}
	if !util.FileExists(path.Join(settings.SourceRoot, cmakeListsFileName)) {
		log.Debug("No %s in '%s'. Leaving it to CMake to report.\n", cmakeListsFileName, settings.SourceRoot)
	}

	b := builder.Builder{
		Runner:       newRunner(),
		Settings:     settings,
		KeepBuildDir: keepBuildDir,
	}
	if err := b.Run(cmd.Context()); err != nil {
		log.FatalWithStatus(exitStatus(err), "%s.\n", err)
	}
	log.Debug("Built '%s' into '%s'.\n", settings.SourceRoot, settings.BuildDir)
}
