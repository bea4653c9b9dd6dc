// Package runner spawns external processes and reports how they ended.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/daedaleanai/cbuild/log"
)

// maxCapturedBytes is how much of each output stream is kept in a Result.
const maxCapturedBytes = 10000 // 10kb

// Command describes a single invocation of an external executable. The
// arguments are passed to the executable as is, without going through a shell.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory of the process. Empty means the current one.
	Dir string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	// Stdout and Stderr hold the tail of the respective output streams.
	Stdout []byte
	Stderr []byte
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner runs external processes. A process that starts and exits with a
// non-zero status is not an error: callers inspect Result.ExitCode instead.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Exec runs commands as child processes via os/exec. The output of the child
// is forwarded to Stdout and Stderr when they are set.
type Exec struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the command and waits for it to finish. The child is killed
// when ctx is canceled.
func (e Exec) Run(ctx context.Context, c Command) (Result, error) {
	log.Debug("Running command: '%s' (dir: '%s').\n", c, displayDir(c.Dir))

	stdout := newTailBuffer(maxCapturedBytes)
	stderr := newTailBuffer(maxCapturedBytes)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = tee(e.Stdout, stdout)
	cmd.Stderr = tee(e.Stderr, stderr)

	startTime := time.Now()
	err := cmd.Run()

	result := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return result, fmt.Errorf("running '%s': %w", c.Name, ctxErr)
		}
		status, ok := ExitStatus(err)
		if !ok {
			return result, fmt.Errorf("running '%s': %w", c.Name, err)
		}
		result.ExitCode = status
	}

	log.Debug("Command '%s' exited with status %d after %s.\n", c.Name, result.ExitCode, time.Since(startTime).Round(time.Millisecond))
	return result, nil
}

// ExitStatus will return the exit code from an error returned by exec.Cmd.Wait().
func ExitStatus(err error) (int, bool) {
	var exitError *exec.ExitError
	if !errors.As(err, &exitError) {
		return 0, false
	}
	return exitError.ExitCode(), true
}

func tee(passthrough io.Writer, capture io.Writer) io.Writer {
	if passthrough == nil {
		return capture
	}
	return io.MultiWriter(passthrough, capture)
}

func displayDir(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
