package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Technosystem-Labs/litex/log"
)

var rootCmd = &cobra.Command{
	Use:   "litex",
	Short: "The LiteX FPGA build driver",
	Long: `litex drives the open source IceStorm FPGA toolchain: it turns an
elaborated design manifest into the constraint files and scripts of the
yosys/nextpnr/icepack flow, and runs that flow to produce a bitstream.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
