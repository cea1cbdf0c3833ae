package cmd

import (
	"bytes"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Technosystem-Labs/litex/assets"
	"github.com/Technosystem-Labs/litex/icestorm"
	"github.com/Technosystem-Labs/litex/log"
	"github.com/Technosystem-Labs/litex/manifest"
	"github.com/Technosystem-Labs/litex/util"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Args:  cobra.NoArgs,
	Short: "Creates or validates design manifests",
	Long:  `Creates or validates design manifests.`,
}

var manifestName string
var manifestDevice string
var manifestOutput string

func init() {
	validateCommand := &cobra.Command{
		Use:   "validate <manifest>",
		Args:  cobra.ExactArgs(1),
		Short: "Validates a design manifest and prints a summary",
		Long:  `Validates a design manifest and prints a summary of the design it describes.`,
		Run:   runManifestValidate,
	}
	manifestCmd.AddCommand(validateCommand)

	initCommand := &cobra.Command{
		Use:   "init",
		Args:  cobra.NoArgs,
		Short: "Creates a starter design manifest",
		Long:  `Creates a starter design manifest.`,
		Run:   runManifestInit,
	}
	initCommand.Flags().StringVar(&manifestName, "name", "top", "Top module name of the design")
	initCommand.Flags().StringVar(&manifestDevice, "device", "ice40-up5k-sg48", "Target device identifier")
	initCommand.Flags().StringVarP(&manifestOutput, "output", "o", "design.yaml", "File where the manifest will be stored")
	manifestCmd.AddCommand(initCommand)

	rootCmd.AddCommand(manifestCmd)
}

func runManifestValidate(cmd *cobra.Command, args []string) {
	m, err := manifest.Read(args[0])
	if err != nil {
		log.Fatal("%s\n", err)
	}
	if _, err := icestorm.ParseDevice(m.Device); err != nil {
		log.Fatal("%s\n", err)
	}

	log.Log("Design %q:\n", m.Name)
	log.IndentationLevel = 1
	log.Log("Device: %s\n", m.Device)
	log.Log("Top: %s\n", m.Top)
	if len(m.Sources) > 0 {
		log.Log("Sources:\n")
		log.IndentationLevel = 2
		for _, source := range m.Sources {
			log.Log("%s\n", source.Path)
		}
		log.IndentationLevel = 1
	}
	for _, signal := range m.Signals {
		log.Log("Signal %s on %s\n", signal.Name, strings.Join(signal.Pins, ", "))
	}
	for _, clock := range m.Clocks {
		log.Log("Clock %s at %.2fns\n", clock.Signal, clock.Period)
	}
	log.IndentationLevel = 0
	log.Success("Manifest is valid.\n")
}

func runManifestInit(cmd *cobra.Command, args []string) {
	if _, err := icestorm.ParseDevice(manifestDevice); err != nil {
		log.Fatal("%s\n", err)
	}
	if util.FileExists(manifestOutput) {
		log.Fatal("Manifest file '%s' already exists.\n", manifestOutput)
	}

	var buffer bytes.Buffer
	data := assets.ManifestTemplate{Name: manifestName, Device: manifestDevice}
	if err := assets.Templates.ExecuteTemplate(&buffer, "design.yaml.tmpl", data); err != nil {
		log.Fatal("Failed to render the manifest template: %s\n", err)
	}
	if err := util.WriteTextFile(manifestOutput, buffer.String()); err != nil {
		log.Fatal("%s\n", err)
	}
	log.Success("Created '%s'.\n", manifestOutput)
}
