package icestorm

import (
	"bytes"
	"fmt"
	"runtime"
	"strings"
	"text/template"

	"github.com/Technosystem-Labs/litex/hdl"
	"github.com/Technosystem-Labs/litex/util"
)

// Shell selects the flavor of the generated build script and the interpreter
// used to run it. The selection is made once per build and never changes
// mid-build.
type Shell int

const (
	// Posix scripts rely on a single `set -e` header to abort on the first
	// failing stage.
	Posix Shell = iota
	// Windows scripts append ` || exit /b` to every stage instead. Both
	// mechanisms must be kept as they are; exit-code semantics differ
	// between the two shells.
	Windows
)

// CurrentShell returns the shell matching the host operating system.
func CurrentShell() Shell {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Posix
}

// ScriptExt returns the file extension of build scripts for this shell.
func (s Shell) ScriptExt() string {
	if s == Windows {
		return ".bat"
	}
	return ".sh"
}

// Command returns the argv that executes `script` with this shell.
func (s Shell) Command(script string) []string {
	if s == Windows {
		return []string{"cmd", "/c", script}
	}
	return []string{"bash", script}
}

func (s Shell) header(revision string) string {
	if s == Windows {
		return "@echo off\nrem Autogenerated by LiteX / git: " + revision + "\n\n"
	}
	return "# Autogenerated by LiteX / git: " + revision + "\nset -e\n"
}

func (s Shell) failSuffix() string {
	if s == Windows {
		return " || exit /b"
	}
	return ""
}

// DefaultYosysTemplate is the synthesis script template. Each fragment
// becomes one line of the generated .ys script.
var DefaultYosysTemplate = []string{
	"verilog_defaults -push",
	"verilog_defaults -add -defer",
	"{{.ReadFiles}}",
	"verilog_defaults -pop",
	"attrmap -tocase keep -imap keep=\"true\" keep=1 -imap keep=\"false\" keep=0 -remove keep=0",
	"synth_ice40 {{.SynthOpts}} -json {{.BuildName}}.json -top {{.BuildName}} -dsp",
}

// DefaultBuildTemplate chains synthesis, place-and-route and bitstream
// packing. Unset optional flags leave extra blanks behind; the shell ignores
// them and generated scripts stay byte-stable.
var DefaultBuildTemplate = []string{
	"yosys -l {{.BuildName}}.rpt {{.BuildName}}.ys",
	"nextpnr-ice40 --json {{.BuildName}}.json --pcf {{.BuildName}}.pcf --asc {{.BuildName}}.txt     --pre-pack {{.BuildName}}_pre_pack.py --{{.Architecture}} --package {{.Package}} {{.TimeFailArg}} {{.IgnoreLoops}} --seed {{.Seed}}",
	"icepack -s {{.BuildName}}.txt {{.BuildName}}.bin",
}

// YosysParams fills the placeholders of the synthesis script template.
type YosysParams struct {
	BuildName string
	SynthOpts string
	ReadFiles string
}

// ScriptParams fills the placeholders of the build script template.
type ScriptParams struct {
	BuildName    string
	Architecture string
	Package      string
	TimeFailArg  string
	IgnoreLoops  string
	Seed         int
}

// Compile a go text template, execute it, and return the result as a string.
func compileTemplate(tmpl, name string, data interface{}) (string, error) {
	t, err := template.New(name).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("Cannot parse the %s template: %w", name, err)
	}
	var buff bytes.Buffer
	if err := t.Execute(&buff, data); err != nil {
		return "", fmt.Errorf("Cannot execute the %s template: %w", name, err)
	}
	return buff.String(), nil
}

// readCommands returns the yosys read directive for every source of the
// design, with the include search paths appended to each.
func readCommands(platform hdl.Platform) string {
	includes := ""
	for _, path := range platform.VerilogIncludePaths() {
		includes += " -I" + path
	}
	reads := util.MappedSlice(platform.Sources(), func(source hdl.SourceFile) string {
		language := source.Language
		// yosys has no read_systemverilog command
		if language == "systemverilog" {
			language = "verilog -sv"
		}
		return fmt.Sprintf("read_%s%s %s", language, includes, source.Path)
	})
	return strings.Join(reads, "\n")
}

// BuildYosysScript renders the synthesis script for the design's sources and
// writes it to <buildName>.ys in the current directory.
func BuildYosysScript(fragments []string, platform hdl.Platform, buildName, synthOpts string) error {
	params := YosysParams{
		BuildName: buildName,
		SynthOpts: synthOpts,
		ReadFiles: readCommands(platform),
	}
	script, err := compileTemplate(strings.Join(fragments, "\n"), "yosys", params)
	if err != nil {
		return err
	}
	return util.WriteTextFile(buildName+".ys", script)
}

// BuildScript renders the shell-specific script that runs the three
// toolchain stages and writes it to build_<buildName> with the shell's
// extension. It returns the name of the written script.
func BuildScript(fragments []string, shell Shell, device Device, options BuildOptions) (string, error) {
	params := ScriptParams{
		BuildName:    options.BuildName,
		Architecture: device.Architecture,
		Package:      device.Package,
		Seed:         options.Seed,
	}
	if !options.TimingStrict {
		params.TimeFailArg = "--timing-allow-fail"
	}
	if options.IgnoreLoops {
		params.IgnoreLoops = "--ignore-loops"
	}

	contents := shell.header(util.RevisionTag())
	for _, fragment := range fragments {
		line, err := compileTemplate(fragment, "build", params)
		if err != nil {
			return "", err
		}
		contents += line + shell.failSuffix() + "\n"
	}

	script := "build_" + options.BuildName + shell.ScriptExt()
	if err := util.WriteTextFile(script, contents); err != nil {
		return "", err
	}
	return script, nil
}
