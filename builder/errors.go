package builder

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFilesystem tags failures to inspect or remove a directory.
	ErrFilesystem = errors.New("filesystem error")
	// ErrNotDirectory is returned when the path to clean exists but is not a directory.
	ErrNotDirectory = fmt.Errorf("%w: not a directory", ErrFilesystem)
	// ErrConfigurationFailed tags failures of the configuration step.
	ErrConfigurationFailed = errors.New("configuration failed")
	// ErrBuildFailed tags failures of the build step.
	ErrBuildFailed = errors.New("build failed")
)

// Step names one stage of a build.
type Step string

const (
	StepClean     Step = "clean"
	StepConfigure Step = "configure"
	StepBuild     Step = "build"
)

// StepError reports which step of a build failed. When the step ran an
// external process that exited with a non-zero status, ExitCode and Stderr
// describe that process and Err is nil.
type StepError struct {
	Step     Step
	ExitCode int
	Stderr   []byte
	Err      error
}

func (e *StepError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s step failed: %s", e.Step, e.Err)
	} else {
		msg = fmt.Sprintf("%s step failed with exit status %d", e.Step, e.ExitCode)
	}
	if tail := lastLine(e.Stderr); tail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, tail)
	}
	return msg
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Is makes StepError match the sentinel of its step.
func (e *StepError) Is(target error) bool {
	switch e.Step {
	case StepConfigure:
		return target == ErrConfigurationFailed
	case StepBuild:
		return target == ErrBuildFailed
	}
	return false
}

func lastLine(output []byte) string {
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
