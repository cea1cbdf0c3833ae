package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Technosystem-Labs/litex/icestorm"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Args:  cobra.NoArgs,
	Short: "Lists the supported devices",
	Long:  `Lists the identifiers of all supported devices.`,
	Run:   runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) {
	for _, device := range icestorm.SupportedDevices() {
		fmt.Println(device)
	}
}
