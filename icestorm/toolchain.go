// Package icestorm drives the open source IceStorm flow for Lattice iCE40
// parts: it turns an elaborated design into the pin, timing and synthesis
// inputs of the yosys/nextpnr/icepack chain and runs that chain to produce a
// bitstream.
package icestorm

import (
	"fmt"
	"os"

	"github.com/Technosystem-Labs/litex/hdl"
	"github.com/Technosystem-Labs/litex/log"
	"github.com/Technosystem-Labs/litex/util"
)

// BuildOptions control one Build invocation.
type BuildOptions struct {
	// BuildDir is entered for the duration of the build. It is created if
	// needed; an existing directory is reused, never cleared.
	BuildDir string
	// BuildName names every generated artifact.
	BuildName string
	// SynthOpts are extra options passed to the synth_ice40 command.
	SynthOpts string
	// Run controls whether the generated build script is executed.
	Run bool
	// TimingStrict makes the build fail when timing is not met instead of
	// tolerating it.
	TimingStrict bool
	// IgnoreLoops makes nextpnr ignore combinational loops during timing
	// analysis.
	IgnoreLoops bool
	// Seed is the place-and-route seed.
	Seed int
}

// DefaultBuildOptions returns the options used when nothing is overridden.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		BuildDir:  "build",
		BuildName: "top",
		Run:       true,
		Seed:      1,
	}
}

// Toolchain coordinates one build session. Clock constraints accumulate on
// the instance until Build consumes them. An instance must not run two
// builds concurrently; callers are expected to serialize Build calls.
type Toolchain struct {
	// YosysTemplate and BuildTemplate may be replaced wholesale before
	// Build to customize the generated scripts.
	YosysTemplate []string
	BuildTemplate []string

	// Shell selects the build script flavor. NewToolchain picks the shell
	// of the host operating system.
	Shell Shell

	// Runner executes the generated build script.
	Runner Runner

	clocks []ClockConstraint
}

func NewToolchain() *Toolchain {
	return &Toolchain{
		YosysTemplate: DefaultYosysTemplate,
		BuildTemplate: DefaultBuildTemplate,
		Shell:         CurrentShell(),
	}
}

// AddPeriodConstraint constrains `clock` to a period in nanoseconds. The
// period must be positive, since the timing constraints are written as a
// frequency. The signal is marked "keep" so later optimization passes do
// not drop it. Constraining the same clock again with an equal period is a
// no-op; a different period is a ConstraintConflictError and leaves the
// stored period unchanged.
func (t *Toolchain) AddPeriodConstraint(clock hdl.Signal, period float64) error {
	if period <= 0 {
		return fmt.Errorf("Invalid clock period %vns, expected > 0", period)
	}
	clock.AddAttribute("keep")
	for _, existing := range t.clocks {
		if existing.Signal == clock {
			if existing.Period != period {
				return &ConstraintConflictError{Have: existing.Period, Want: period}
			}
			return nil
		}
	}
	t.clocks = append(t.clocks, ClockConstraint{Signal: clock, Period: period})
	return nil
}

// Clocks returns the accumulated clock constraints in the order they were
// added.
func (t *Toolchain) Clocks() []ClockConstraint {
	return t.clocks
}

// Build runs the full flow for `design` on `platform`: emit the verilog,
// write the constraint files and scripts into the build directory and, when
// options.Run is set, execute the toolchain. The working directory change is
// undone on every exit path. Artifacts written before a failure are left in
// place to help debugging.
//
// Build returns the namespace of the emitted verilog so callers can map
// logical signals to emitted identifiers.
func (t *Toolchain) Build(platform hdl.Platform, design hdl.Design, options BuildOptions) (hdl.Namespace, error) {
	if err := os.MkdirAll(options.BuildDir, util.DirMode); err != nil {
		return nil, fmt.Errorf("Failed to create build directory %s: %w", options.BuildDir, err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if err := os.Chdir(options.BuildDir); err != nil {
		return nil, fmt.Errorf("Failed to enter build directory %s: %w", options.BuildDir, err)
	}
	defer os.Chdir(cwd)

	if err := platform.Finalize(design); err != nil {
		return nil, err
	}

	verilog, err := platform.EmitVerilog(design, options.BuildName)
	if err != nil {
		return nil, err
	}
	signals, platformConstraints, err := platform.ResolveSignals(verilog.Namespace)
	if err != nil {
		return nil, err
	}

	verilogFile := options.BuildName + ".v"
	log.Debug("Writing `%s`.\n", verilogFile)
	if err := util.WriteTextFile(verilogFile, verilog.Text); err != nil {
		return nil, err
	}
	platform.AddSource(verilogFile)

	if err := util.WriteTextFile(options.BuildName+".pcf", BuildPCF(signals, platformConstraints)); err != nil {
		return nil, err
	}
	if err := util.WriteTextFile(options.BuildName+"_pre_pack.py", BuildPrePack(verilog.Namespace, t.clocks)); err != nil {
		return nil, err
	}
	if err := BuildYosysScript(t.YosysTemplate, platform, options.BuildName, options.SynthOpts); err != nil {
		return nil, err
	}

	device, err := ParseDevice(platform.Device())
	if err != nil {
		return nil, err
	}

	script, err := BuildScript(t.BuildTemplate, t.Shell, device, options)
	if err != nil {
		return nil, err
	}

	if options.Run {
		if err := t.Runner.Run(t.Shell, script); err != nil {
			return nil, err
		}
	}

	return verilog.Namespace, nil
}
