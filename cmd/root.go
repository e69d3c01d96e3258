package cmd

import (
	"github.com/spf13/cobra"
)

// Version is overridden from the embedded VERSION file at startup.
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "narsil",
	Short: "Narsil media sorter",
	Long:  "Sort a messy pool of photos and videos into a device/date library, fixing timestamps along the way.",
}

func Execute() error {
	return rootCmd.Execute()
}

// ApplyVersion pushes the current Version onto the root command.
func ApplyVersion() {
	rootCmd.Version = Version
}
