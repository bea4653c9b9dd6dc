package log

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Verbose controls whether debug messages are being printed.
var Verbose bool

// Spinner is shown while waiting on long running filesystem operations.
var Spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))

var logger = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &formatter{},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.DebugLevel,
	ExitFunc:  os.Exit,
}

// formatter renders entries with a coloured severity prefix and the message
// verbatim.
type formatter struct{}

func (f *formatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(prefix(entry))
	b.WriteString(entry.Message)
	return b.Bytes(), nil
}

func prefix(entry *logrus.Entry) string {
	switch entry.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return color.CyanString("Debug: ")
	case logrus.WarnLevel:
		return color.YellowString("Warning: ")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return color.RedString("Error: ")
	}
	return ""
}

// SetOutput redirects all log messages to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Log prints a formatted message to os.Stderr.
func Log(format string, a ...interface{}) {
	logger.Infof(format, a...)
}

// Debug prints a formatted debug message to os.Stderr if verbose output is selected.
func Debug(format string, a ...interface{}) {
	if Verbose {
		logger.Debugf(format, a...)
	}
}

// Warning prints a formatted warning to os.Stderr.
func Warning(format string, a ...interface{}) {
	logger.Warnf(format, a...)
}

// Error prints a formatted error message to os.Stderr.
func Error(format string, a ...interface{}) {
	logger.Errorf(format, a...)
}

// Fatal prints a formatted error message to os.Stderr and terminates the program.
func Fatal(format string, a ...interface{}) {
	FatalWithStatus(1, format, a...)
}

// FatalWithStatus is like Fatal but terminates the program with the given exit status.
func FatalWithStatus(status int, format string, a ...interface{}) {
	Error(format, a...)
	fmt.Fprint(logger.Out, color.RedString("A fatal error occured. Exiting...\n"))
	if status <= 0 {
		status = 1
	}
	logger.Exit(status)
}

// StartSpinner shows the spinner with the given suffix on an interactive
// terminal and returns the function that stops it. Nothing is shown in
// verbose mode, since debug output would interleave with the animation.
func StartSpinner(suffix string) func() {
	if Verbose || !isTerminal(os.Stderr) {
		return func() {}
	}
	Spinner.Suffix = suffix
	Spinner.Start()
	return Spinner.Stop
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
