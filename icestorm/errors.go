package icestorm

import (
	"fmt"
	"strings"
)

// ValidationError reports a device identifier that does not name a supported
// part.
type ValidationError struct {
	Device string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Invalid device %q: %s", e.Device, e.Reason)
}

// ConstraintConflictError reports an attempt to constrain a clock that is
// already constrained to a different period.
type ConstraintConflictError struct {
	// Have is the period the clock is constrained to, in nanoseconds.
	Have float64
	// Want is the period of the rejected constraint, in nanoseconds.
	Want float64
}

func (e *ConstraintConflictError) Error() string {
	return fmt.Sprintf("Clock already constrained to %.2fns, new constraint to %.2fns", e.Have, e.Want)
}

// ToolchainUnavailableError reports toolchain programs that could not be
// found on the search path.
type ToolchainUnavailableError struct {
	Missing []string
}

func (e *ToolchainUnavailableError) Error() string {
	return fmt.Sprintf("Unable to find %s, please add the IceStorm toolchain to your PATH or set toolchain_path in the configuration",
		strings.Join(e.Missing, " and "))
}

// ToolchainExecutionError reports a build script that exited with a non-zero
// status. The log files written by the tools are left in the build directory.
type ToolchainExecutionError struct {
	Script   string
	ExitCode int
}

func (e *ToolchainExecutionError) Error() string {
	return fmt.Sprintf("Toolchain script %s exited with code %d", e.Script, e.ExitCode)
}
