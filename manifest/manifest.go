// Package manifest reads design manifests, the YAML hand-off from the
// elaboration frontend describing an already elaborated design: its verilog
// output, supporting sources, pin bindings and clock constraints.
package manifest

import (
	"fmt"
	"path/filepath"

	"github.com/Technosystem-Labs/litex/util"
)

// Source describes one HDL source file of the design.
type Source struct {
	Path     string
	Language string
	Library  string
}

// SignalPins binds one logical signal to its physical pins. Multi-bit
// signals list one pin per bit.
type SignalPins struct {
	Name       string
	Pins       []string
	Attributes []string
	Resource   string
}

// Clock constrains one clock signal to a period in nanoseconds.
type Clock struct {
	Signal string
	Period float64
}

// Manifest is the on-disk description of an elaborated design.
type Manifest struct {
	// Name is the top module name of the design and the default build name.
	Name string
	// Device identifies the target part, e.g. "ice40-up5k-sg48".
	Device string
	// Top is the verilog file emitted by the frontend for the top module.
	Top string
	// Sources are additional HDL files compiled alongside Top.
	Sources []Source
	// IncludePaths are the verilog include search paths.
	IncludePaths []string `yaml:"include_paths"`
	// Signals are the pin bindings of the design.
	Signals []SignalPins
	// Constraints are free-form constraint blocks appended verbatim to the
	// generated pin constraint file.
	Constraints []string
	// Clocks are the period constraints, applied in order before the build.
	Clocks []Clock
}

// Read loads and validates the manifest at `path`. Relative file paths in
// the manifest are resolved against the manifest's own directory and made
// absolute, so they stay valid after the build enters the build directory.
func Read(path string) (Manifest, error) {
	var m Manifest
	if err := util.ReadYaml(path, &m); err != nil {
		return m, err
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return m, fmt.Errorf("Failed to resolve %s: %w", path, err)
	}
	m.Top = resolvePath(base, m.Top)
	for i := range m.Sources {
		m.Sources[i].Path = resolvePath(base, m.Sources[i].Path)
	}
	for i := range m.IncludePaths {
		m.IncludePaths[i] = resolvePath(base, m.IncludePaths[i])
	}

	if err := m.validate(); err != nil {
		return m, fmt.Errorf("Invalid manifest %s: %w", path, err)
	}
	return m, nil
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func (m Manifest) validate() error {
	if m.Device == "" {
		return fmt.Errorf("no device given")
	}
	if m.Top == "" {
		return fmt.Errorf("no top verilog file given")
	}
	for _, source := range m.Sources {
		if source.Path == "" {
			return fmt.Errorf("source with an empty path")
		}
	}
	for _, signal := range m.Signals {
		if signal.Name == "" {
			return fmt.Errorf("signal with an empty name")
		}
		if len(signal.Pins) == 0 {
			return fmt.Errorf("signal %q has no pins", signal.Name)
		}
	}
	for _, clock := range m.Clocks {
		if clock.Signal == "" {
			return fmt.Errorf("clock with an empty signal name")
		}
		if clock.Period <= 0 {
			return fmt.Errorf("clock %q has period %vns, expected > 0", clock.Signal, clock.Period)
		}
	}
	return nil
}
