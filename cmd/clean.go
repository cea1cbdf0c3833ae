package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Technosystem-Labs/litex/log"
	"github.com/Technosystem-Labs/litex/util"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Args:  cobra.NoArgs,
	Short: "Removes all generated build files",
	Long:  `Removes all generated build files.`,
	Run:   runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().StringVar(&buildDir, "build-dir", "build", "Directory for generated files and toolchain outputs")
}

func runClean(cmd *cobra.Command, args []string) {
	if !util.DirExists(buildDir) {
		log.Log("Nothing to clean.\n")
		return
	}
	log.Debug("Removing build directory '%s'.\n", buildDir)
	if err := os.RemoveAll(buildDir); err != nil {
		log.Fatal("Failed to remove '%s': %s\n", buildDir, err)
	}
	log.Success("Removed '%s'.\n", buildDir)
}
