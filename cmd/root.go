package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/daedaleanai/cbuild/builder"
	"github.com/daedaleanai/cbuild/config"
	"github.com/daedaleanai/cbuild/log"
)

var rootCmd = &cobra.Command{
	Use:   "cbuild",
	Short: "Regenerates and cleans CMake build directories",
	Long: `cbuild removes a CMake build directory, configures the source tree into
a fresh one and builds it. It can also just remove a build directory.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func loadSettings(cmd *cobra.Command) config.Settings {
	settings, err := config.Load(cmd.Flags())
	if err != nil {
		log.Fatal("Invalid configuration: %s.\n", err)
	}
	log.Debug("Running with configuration: %+v\n", settings)
	return settings
}

// exitStatus picks the exit status of cbuild for a failed operation. A
// failing CMake invocation passes its own exit status on.
func exitStatus(err error) int {
	var stepErr *builder.StepError
	if errors.As(err, &stepErr) && stepErr.Err == nil && stepErr.ExitCode > 0 {
		return stepErr.ExitCode
	}
	return 1
}
