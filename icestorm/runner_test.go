package icestorm

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Technosystem-Labs/litex/util"
)

func writeExecutable(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0755))
}

// fakeToolchainDir creates stand-ins for the required toolchain programs.
func fakeToolchainDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, program := range requiredPrograms {
		writeExecutable(t, filepath.Join(dir, program), "#!/bin/sh\nexit 0\n")
	}
	return dir
}

func TestRunMissingToolchain(t *testing.T) {
	t.Setenv("PATH", t.TempDir())

	dir := t.TempDir()
	script := filepath.Join(dir, "build_top.sh")
	marker := filepath.Join(dir, "ran")
	writeExecutable(t, script, "touch "+marker+"\n")

	runner := Runner{}
	err := runner.Run(Posix, script)
	require.Error(t, err)

	var unavailable *ToolchainUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, []string{"yosys", "nextpnr-ice40"}, unavailable.Missing)
	assert.Contains(t, unavailable.Error(), "yosys and nextpnr-ice40")

	// The script must not have been spawned.
	assert.False(t, util.FileExists(marker))
}

func TestRunScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	t.Setenv("PATH", fakeToolchainDir(t)+string(os.PathListSeparator)+os.Getenv("PATH"))

	script := filepath.Join(t.TempDir(), "build_top.sh")
	writeExecutable(t, script, "echo hello\n")

	var stdout bytes.Buffer
	runner := Runner{Stdout: &stdout, Stderr: &bytes.Buffer{}}
	require.NoError(t, runner.Run(Posix, script))
	assert.Equal(t, "hello\n", stdout.String())
}

func TestRunScriptFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	t.Setenv("PATH", fakeToolchainDir(t)+string(os.PathListSeparator)+os.Getenv("PATH"))

	script := filepath.Join(t.TempDir(), "build_top.sh")
	writeExecutable(t, script, "exit 3\n")

	runner := Runner{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
	err := runner.Run(Posix, script)
	require.Error(t, err)

	var execErr *ToolchainExecutionError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, script, execErr.Script)
	assert.Equal(t, 3, execErr.ExitCode)
}

func TestRunExtraPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}

	extra := t.TempDir()
	writeExecutable(t, filepath.Join(extra, "yosys"), "#!/bin/sh\necho extra-yosys\n")
	writeExecutable(t, filepath.Join(extra, "nextpnr-ice40"), "#!/bin/sh\nexit 0\n")

	script := filepath.Join(t.TempDir(), "build_top.sh")
	writeExecutable(t, script, "yosys\n")

	var stdout bytes.Buffer
	runner := Runner{ExtraPath: []string{extra}, Stdout: &stdout, Stderr: &bytes.Buffer{}}
	require.NoError(t, runner.Run(Posix, script))

	// The script resolved yosys through the prepended directory.
	assert.Equal(t, "extra-yosys\n", stdout.String())
}

func TestRunExtraPathRequiresExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes do not apply")
	}
	t.Setenv("PATH", t.TempDir())

	// A plain data file named like a tool must not satisfy the check; the
	// script would fail to spawn it later.
	extra := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(extra, "yosys"), []byte("not a program"), 0644))
	writeExecutable(t, filepath.Join(extra, "nextpnr-ice40"), "#!/bin/sh\nexit 0\n")

	runner := Runner{ExtraPath: []string{extra}}
	err := runner.Run(Posix, filepath.Join(t.TempDir(), "build_top.sh"))
	require.Error(t, err)

	var unavailable *ToolchainUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, []string{"yosys"}, unavailable.Missing)
}

func TestEnviron(t *testing.T) {
	runner := Runner{}
	assert.Nil(t, runner.environ())

	runner.ExtraPath = []string{"/opt/oss-cad-suite/bin"}
	env := runner.environ()
	require.NotNil(t, env)

	found := ""
	for _, entry := range env {
		if strings.HasPrefix(strings.ToUpper(entry), "PATH=") {
			found = entry
			break
		}
	}
	require.NotEmpty(t, found)
	prefix := "/opt/oss-cad-suite/bin" + string(os.PathListSeparator)
	assert.True(t, strings.HasPrefix(found[5:], prefix))
}
