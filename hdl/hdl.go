// Package hdl defines the contract between the build driver and the
// elaboration frontend that turns a hardware design into verilog.
package hdl

// Design is an opaque handle to an elaborated design. It is produced by the
// frontend and passed back to it unchanged.
type Design interface{}

// Signal identifies one logical signal of the design.
type Signal interface {
	// AddAttribute marks the signal with a synthesis attribute, e.g. "keep"
	// to protect it from being optimized away.
	AddAttribute(name string)
}

// Namespace resolves signals to the identifiers used in the emitted verilog.
type Namespace interface {
	SignalName(signal Signal) string
}

// SourceFile describes one HDL source file of the design.
type SourceFile struct {
	Path     string
	Language string
	Library  string
}

// SignalConstraint binds one logical signal to one or more physical pins.
// Multi-bit signals list one pin per bit in declaration order.
type SignalConstraint struct {
	Name       string
	Pins       []string
	Attributes []string
	Resource   string
}

// VerilogSource is the result of emitting a design as verilog.
type VerilogSource struct {
	Text      string
	Namespace Namespace
}

// Platform is the elaboration side of a build. It owns the design sources,
// names the target device and resolves logical signals to physical pins.
type Platform interface {
	// Device returns the device identifier string, e.g. "ice40-up5k-sg48".
	Device() string

	// Sources returns the HDL sources of the design in compilation order.
	Sources() []SourceFile

	// VerilogIncludePaths returns the include search paths for verilog sources.
	VerilogIncludePaths() []string

	// AddSource registers an additional source file, e.g. the emitted verilog.
	AddSource(path string)

	// Finalize completes the elaboration of the design. It must be called
	// exactly once, before EmitVerilog.
	Finalize(design Design) error

	// EmitVerilog renders the design as verilog named after the build and
	// returns the text together with the signal namespace.
	EmitVerilog(design Design, name string) (VerilogSource, error)

	// ResolveSignals maps the design's signals to physical pins. It returns
	// the pin bindings and any free-form platform constraint blocks.
	ResolveSignals(namespace Namespace) ([]SignalConstraint, []string, error)
}
