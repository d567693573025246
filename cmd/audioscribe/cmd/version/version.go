package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"audioscribe/internal/cli"
)

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of audioscribe",
	Long:  `All software has versions. This is audioscribe's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(cli.Version)
		return nil
	},
}
