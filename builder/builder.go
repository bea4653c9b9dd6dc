// Package builder implements the two operations of cbuild: removing a build
// directory, and regenerating it from scratch with CMake.
package builder

import (
	"context"
	"strconv"

	"github.com/daedaleanai/cbuild/config"
	"github.com/daedaleanai/cbuild/log"
	"github.com/daedaleanai/cbuild/runner"
	"github.com/daedaleanai/cbuild/util"
)

// Builder removes the build directory, configures the source root into it
// and runs the build. Steps run strictly in order and the first failure
// stops the build.
type Builder struct {
	Runner   runner.Runner
	Settings config.Settings
	// KeepBuildDir skips removing the build directory before configuring.
	KeepBuildDir bool
}

// ConfigureCommand returns the invocation of the configuration step.
func (b Builder) ConfigureCommand() runner.Command {
	s := b.Settings
	args := []string{"-S", s.SourceRoot, "-B", s.BuildDir}
	if s.Generator != "" {
		args = append(args, "-G", s.Generator)
	}
	if s.BuildType != "" {
		args = append(args, "-DCMAKE_BUILD_TYPE="+s.BuildType)
	}
	args = append(args, util.MappedSlice(util.OrderedEntries(s.Defines), func(e util.Entry[string, string]) string {
		return "-D" + e.Key + "=" + e.Value
	})...)
	return runner.Command{Name: s.CMake, Args: args}
}

// BuildCommand returns the invocation of the build step.
func (b Builder) BuildCommand() runner.Command {
	s := b.Settings
	args := []string{"--build", s.BuildDir}
	if s.Target != "" {
		args = append(args, "--target", s.Target)
	}
	if s.Jobs > 0 {
		args = append(args, "--parallel", strconv.Itoa(s.Jobs))
	}
	return runner.Command{Name: s.CMake, Args: args}
}

// Run executes the build. The returned error is a *StepError naming the step
// that failed.
func (b Builder) Run(ctx context.Context) error {
	log.Debug("Working directory: '%s'.\n", util.GetWorkingDir())
	log.Debug("Source root: '%s', build directory: '%s'.\n", b.Settings.SourceRoot, b.Settings.BuildDir)

	if b.KeepBuildDir {
		log.Debug("Keeping build directory '%s'.\n", b.Settings.BuildDir)
	} else {
		stop := log.StartSpinner(" Removing " + b.Settings.BuildDir)
		_, err := Clean(b.Settings.BuildDir)
		stop()
		if err != nil {
			return &StepError{Step: StepClean, Err: err}
		}
	}

	if err := b.runStep(ctx, StepConfigure, b.ConfigureCommand()); err != nil {
		return err
	}
	return b.runStep(ctx, StepBuild, b.BuildCommand())
}

func (b Builder) runStep(ctx context.Context, step Step, cmd runner.Command) error {
	log.Debug("Running %s step.\n", step)
	result, err := b.Runner.Run(ctx, cmd)
	if err != nil {
		return &StepError{Step: step, Err: err}
	}
	if !result.Success() {
		return &StepError{Step: step, ExitCode: result.ExitCode, Stderr: result.Stderr}
	}
	return nil
}
