package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhite/hw/internal/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hw version",
	Run: func(_ *cobra.Command, _ []string) {
		if versionShort {
			fmt.Println(version.Short())
			return
		}
		fmt.Println("hw " + version.Full())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
}
