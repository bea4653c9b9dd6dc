package util

import (
	"os"
)

// DefaultBuildDirName is the build directory used when none is configured.
const DefaultBuildDirName = "build"

// DefaultSourceRoot is the source root used when none is given on the command line.
const DefaultSourceRoot = "."

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// GetWorkingDir returns the current working directory, or "." if it cannot be determined.
func GetWorkingDir() string {
	workingDir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return workingDir
}
