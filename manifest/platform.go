package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/Technosystem-Labs/litex/hdl"
	"github.com/Technosystem-Labs/litex/log"
	"github.com/Technosystem-Labs/litex/util"
)

// Signal is a named signal of a manifest design.
type Signal struct {
	name       string
	attributes []string
}

// AddAttribute marks the signal with a synthesis attribute. Adding the same
// attribute twice is a no-op.
func (s *Signal) AddAttribute(name string) {
	if !slices.Contains(s.attributes, name) {
		s.attributes = append(s.attributes, name)
	}
}

func (s *Signal) Name() string {
	return s.name
}

func (s *Signal) Attributes() []string {
	return s.attributes
}

// namespace resolves signals of a manifest design. The frontend already
// named every signal, so resolution is identity.
type namespace struct{}

func (namespace) SignalName(signal hdl.Signal) string {
	s, ok := signal.(*Signal)
	if !ok {
		log.Fatal("Signal %v does not belong to a manifest design\n", signal)
	}
	return s.name
}

// Platform is a manifest-backed hdl.Platform. The design was already
// elaborated by the frontend; its verilog, pin bindings and constraints all
// come from the manifest.
type Platform struct {
	manifest  Manifest
	sources   []hdl.SourceFile
	signals   map[string]*Signal
	finalized bool
}

func NewPlatform(m Manifest) *Platform {
	sources := util.MappedSlice(m.Sources, func(source Source) hdl.SourceFile {
		return hdl.SourceFile{Path: source.Path, Language: source.Language, Library: source.Library}
	})
	return &Platform{
		manifest: m,
		sources:  sources,
		signals:  map[string]*Signal{},
	}
}

// Signal returns the design signal with the given name, creating it on first
// use. Repeated calls return the same instance, so attributes and clock
// constraints attach to a single object.
func (p *Platform) Signal(name string) *Signal {
	if signal, ok := p.signals[name]; ok {
		return signal
	}
	signal := &Signal{name: name}
	p.signals[name] = signal
	return signal
}

func (p *Platform) Device() string {
	return p.manifest.Device
}

func (p *Platform) Sources() []hdl.SourceFile {
	return p.sources
}

func (p *Platform) VerilogIncludePaths() []string {
	return p.manifest.IncludePaths
}

// AddSource registers an additional source file. The language is inferred
// from the file extension.
func (p *Platform) AddSource(path string) {
	p.sources = append(p.sources, hdl.SourceFile{
		Path:     path,
		Language: languageByExtension(path),
		Library:  "work",
	})
}

func languageByExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vhd", ".vhdl":
		return "vhdl"
	case ".sv":
		return "systemverilog"
	default:
		return "verilog"
	}
}

// Finalize checks that the files the manifest refers to actually exist. It
// must be called exactly once per platform.
func (p *Platform) Finalize(design hdl.Design) error {
	if p.finalized {
		return fmt.Errorf("Design %q is already finalized", p.manifest.Name)
	}
	if !util.FileExists(p.manifest.Top) {
		return fmt.Errorf("Top verilog file %s does not exist", p.manifest.Top)
	}
	for _, source := range p.sources {
		if !util.FileExists(source.Path) {
			return fmt.Errorf("Source file %s does not exist", source.Path)
		}
	}
	p.finalized = true
	return nil
}

// EmitVerilog returns the frontend's verilog output for the top module. The
// text was emitted during elaboration, so the build name is not consulted.
func (p *Platform) EmitVerilog(design hdl.Design, name string) (hdl.VerilogSource, error) {
	if !p.finalized {
		return hdl.VerilogSource{}, fmt.Errorf("Design %q is not finalized", p.manifest.Name)
	}
	text, err := os.ReadFile(p.manifest.Top)
	if err != nil {
		return hdl.VerilogSource{}, fmt.Errorf("Failed to read top verilog file: %w", err)
	}
	return hdl.VerilogSource{Text: string(text), Namespace: namespace{}}, nil
}

// ResolveSignals returns the pin bindings and the free-form constraint
// blocks of the manifest, in declaration order.
func (p *Platform) ResolveSignals(ns hdl.Namespace) ([]hdl.SignalConstraint, []string, error) {
	constraints := util.MappedSlice(p.manifest.Signals, func(signal SignalPins) hdl.SignalConstraint {
		return hdl.SignalConstraint{
			Name:       signal.Name,
			Pins:       signal.Pins,
			Attributes: signal.Attributes,
			Resource:   signal.Resource,
		}
	})
	return constraints, p.manifest.Constraints, nil
}
