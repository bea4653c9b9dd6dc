package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daedaleanai/cbuild/builder"
	"github.com/daedaleanai/cbuild/runner"
	"github.com/daedaleanai/cbuild/util"
)

type recordingRunner struct {
	commands []runner.Command
	result   runner.Result
}

func (r *recordingRunner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	r.commands = append(r.commands, cmd)
	return r.result, nil
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(oldDir))
	})
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("CBUILD_CONFIG_DIR", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCleanCommandDefault(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join("build", "CMakeFiles"), 0755))

	execute(t, "clean")

	assert.NoDirExists(t, filepath.Join(dir, "build"))
}

func TestCleanCommandExplicitDir(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll("build", 0755))
	require.NoError(t, os.MkdirAll("foo", 0755))

	execute(t, "clean", "foo")
	execute(t, "clean", "foo")

	assert.NoDirExists(t, "foo")
	assert.DirExists(t, "build")
}

func TestBuildCommand(t *testing.T) {
	chdir(t, t.TempDir())
	r := &recordingRunner{}
	oldRunner := newRunner
	newRunner = func() runner.Runner { return r }
	t.Cleanup(func() { newRunner = oldRunner })

	execute(t, "build", "some/path")

	require.Len(t, r.commands, 2)
	assert.Equal(t, []string{"-S", "some/path", "-B", "build"}, r.commands[0].Args)
	assert.Equal(t, []string{"--build", "build"}, r.commands[1].Args)
}

func TestConfigCommand(t *testing.T) {
	out := execute(t, "config")

	assert.Contains(t, out, "  build_dir='build'\n")
	assert.Contains(t, out, "  cmake='cmake'\n")
}

func TestExitStatus(t *testing.T) {
	assert.Equal(t, 2, exitStatus(&builder.StepError{Step: builder.StepBuild, ExitCode: 2}))
	assert.Equal(t, 1, exitStatus(&builder.StepError{Step: builder.StepBuild, ExitCode: -1}))
	assert.Equal(t, 1, exitStatus(&builder.StepError{Step: builder.StepConfigure, Err: errors.New("not found")}))
	assert.Equal(t, 1, exitStatus(errors.New("other")))
}

func TestCMakeVersion(t *testing.T) {
	r := &recordingRunner{result: runner.Result{Stdout: []byte("cmake version 3.27.4\n")}}

	version, err := cmakeVersion(context.Background(), r, "cmake")
	require.NoError(t, err)

	assert.Equal(t, util.Version{Major: 3, Minor: 27, Patch: 4}, version)
	assert.Equal(t, []string{"--version"}, r.commands[0].Args)

	r = &recordingRunner{result: runner.Result{ExitCode: 1}}
	_, err = cmakeVersion(context.Background(), r, "cmake")
	assert.Error(t, err)
}

func TestCleanCommandIgnoresUnrelatedSettings(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.MkdirAll("build", 0755))
	t.Setenv("CBUILD_JOBS", "many")

	execute(t, "clean")

	assert.NoDirExists(t, "build")
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "fish", "powershell", "zsh"} {
		t.Run(shell, func(t *testing.T) {
			out := execute(t, "completion", shell)
			assert.Contains(t, out, "cbuild")
		})
	}
}
