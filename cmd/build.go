package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Technosystem-Labs/litex/config"
	"github.com/Technosystem-Labs/litex/icestorm"
	"github.com/Technosystem-Labs/litex/log"
	"github.com/Technosystem-Labs/litex/manifest"
)

var buildCmd = &cobra.Command{
	Use:   "build <manifest>",
	Args:  cobra.ExactArgs(1),
	Short: "Builds a bitstream from a design manifest",
	Long: `Builds a bitstream from a design manifest: generates the pin and timing
constraint files and the synthesis and build scripts, then runs the
yosys/nextpnr/icepack toolchain unless --no-run is given.`,
	Run: runBuild,
}

var (
	buildDir     string
	buildName    string
	synthOpts    string
	noRun        bool
	quiet        bool
	timingStrict bool
	ignoreLoops  bool
	seed         int
)

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringVar(&buildDir, "build-dir", "build", "Directory for generated files and toolchain outputs")
	buildCmd.Flags().StringVar(&buildName, "build-name", "", "Base name of all generated artifacts. Defaults to the design name from the manifest")
	buildCmd.Flags().StringVar(&synthOpts, "synth-opts", "", "Extra options for the synth_ice40 command")
	buildCmd.Flags().BoolVar(&noRun, "no-run", false, "Generate all build files but do not run the toolchain")
	buildCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Hide the toolchain output and show a spinner instead")
	buildCmd.Flags().BoolVar(&timingStrict, "nextpnr-timingstrict", false, "Make the build fail when timing is not met")
	buildCmd.Flags().BoolVar(&ignoreLoops, "nextpnr-ignoreloops", false, "Ignore combinational loops in timing analysis")
	buildCmd.Flags().IntVar(&seed, "nextpnr-seed", 1, "Set nextpnr's seed")
}

func runBuild(cmd *cobra.Command, args []string) {
	m, err := manifest.Read(args[0])
	if err != nil {
		log.Fatal("%s\n", err)
	}

	platform := manifest.NewPlatform(m)
	toolchain := icestorm.NewToolchain()
	toolchain.Runner.ExtraPath = config.GetConfig().ToolchainPath

	for _, clock := range m.Clocks {
		if err := toolchain.AddPeriodConstraint(platform.Signal(clock.Signal), clock.Period); err != nil {
			log.Fatal("Cannot constrain clock %q: %s\n", clock.Signal, err)
		}
	}

	options := icestorm.DefaultBuildOptions()
	options.BuildDir = buildDir
	options.BuildName = buildName
	if options.BuildName == "" {
		options.BuildName = m.Name
	}
	if options.BuildName == "" {
		options.BuildName = "top"
	}
	options.SynthOpts = synthOpts
	options.Run = !noRun
	options.TimingStrict = timingStrict
	options.IgnoreLoops = ignoreLoops
	options.Seed = seed

	// In quiet mode the toolchain output is hidden behind a spinner; the
	// stderr of a failing run is replayed afterwards.
	var stderr bytes.Buffer
	if quiet {
		toolchain.Runner.Stdout = io.Discard
		toolchain.Runner.Stderr = &stderr
		log.Spinner.Start()
	}

	log.Log("Building %s for %s.\n", options.BuildName, m.Device)
	_, err = toolchain.Build(platform, m, options)
	if quiet {
		log.Spinner.Stop()
	}
	if err != nil {
		if quiet && stderr.Len() > 0 {
			os.Stderr.Write(stderr.Bytes())
		}
		log.Fatal("Build failed: %s\n", err)
	}

	if noRun {
		log.Success("Generated build files in '%s'.\n", buildDir)
	} else {
		log.Success("Built '%s'.\n", filepath.Join(buildDir, options.BuildName+".bin"))
	}
}
