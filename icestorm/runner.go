package icestorm

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Technosystem-Labs/litex/log"
)

// requiredPrograms are resolved before any process is spawned. icepack ships
// with the same distributions and is not checked separately.
var requiredPrograms = []string{"yosys", "nextpnr-ice40"}

// Runner locates the external toolchain and executes generated build scripts.
type Runner struct {
	// ExtraPath lists directories searched for the toolchain programs
	// before PATH. The same directories are prepended to the script's PATH
	// when the script runs.
	ExtraPath []string

	// Stdout and Stderr receive the toolchain output. They default to the
	// process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// findProgram resolves one toolchain program against ExtraPath, then PATH.
// Candidates are checked with exec.LookPath so only executables count and
// Windows executable suffixes are honored.
func (r *Runner) findProgram(program string) (string, error) {
	for _, dir := range r.ExtraPath {
		if path, err := exec.LookPath(filepath.Join(dir, program)); err == nil {
			return path, nil
		}
	}
	return exec.LookPath(program)
}

// Run executes the build script with `shell`, after checking that the
// required toolchain programs can be found. The check happens before any
// process is spawned and reports every missing program at once. Log files
// written by the tools are left in the build directory.
func (r *Runner) Run(shell Shell, script string) error {
	missing := []string{}
	for _, program := range requiredPrograms {
		programPath, err := r.findProgram(program)
		if err != nil {
			missing = append(missing, program)
			continue
		}
		log.Debug("Found %s at `%s`.\n", program, programPath)
	}
	if len(missing) > 0 {
		return &ToolchainUnavailableError{Missing: missing}
	}

	argv := shell.Command(script)
	log.Debug("Executing `%s`.\n", strings.Join(argv, " "))

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = r.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Env = r.environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ToolchainExecutionError{Script: script, ExitCode: exitErr.ExitCode()}
		}
		return fmt.Errorf("Failed to execute %s: %w", script, err)
	}
	return nil
}

// environ returns the child environment with ExtraPath prepended to PATH, so
// the script resolves the toolchain programs the same way findProgram did.
// Without ExtraPath the environment is inherited untouched.
func (r *Runner) environ() []string {
	if len(r.ExtraPath) == 0 {
		return nil
	}
	searchPath := strings.Join(r.ExtraPath, string(os.PathListSeparator)) +
		string(os.PathListSeparator) + os.Getenv("PATH")
	env := os.Environ()
	for i, entry := range env {
		if len(entry) >= 5 && strings.EqualFold(entry[:5], "PATH=") {
			env[i] = "PATH=" + searchPath
			return env
		}
	}
	return append(env, "PATH="+searchPath)
}
