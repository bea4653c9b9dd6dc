package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/cbuild/log"
	"github.com/daedaleanai/cbuild/runner"
	"github.com/daedaleanai/cbuild/util"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Args:  cobra.NoArgs,
	Short: "Prints the version of this tool and of CMake",
	Long:  `Prints the version of this tool and of the CMake executable it uses.`,
	Run:   runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) {
	fmt.Fprintf(cmd.OutOrStdout(), "cbuild %s\n", util.CbuildVersion)

	settings := loadSettings(cmd)
	version, err := cmakeVersion(cmd.Context(), runner.Exec{}, settings.CMake)
	if err != nil {
		log.Warning("Could not determine the version of '%s': %s.\n", settings.CMake, err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cmake %s\n", version)
}

func cmakeVersion(ctx context.Context, r runner.Runner, cmake string) (util.Version, error) {
	result, err := r.Run(ctx, runner.Command{Name: cmake, Args: []string{"--version"}})
	if err != nil {
		return util.Version{}, err
	}
	if !result.Success() {
		return util.Version{}, fmt.Errorf("exit status %d", result.ExitCode)
	}
	return util.ParseCMakeVersion(string(result.Stdout))
}
