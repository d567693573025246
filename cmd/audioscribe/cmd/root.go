package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"audioscribe/cmd/audioscribe/cmd/export"
	"audioscribe/cmd/audioscribe/cmd/serve"
	"audioscribe/cmd/audioscribe/cmd/transcribe"
	"audioscribe/cmd/audioscribe/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "audioscribe",
	Short: "An audio upload and transcription service",
	Long: `An audio upload and transcription service backed by whisper.

- Run the HTTP API with 'audioscribe serve'
- Batch transcribe a local directory with 'audioscribe transcribe'
- Export transcription records with 'audioscribe export'`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(version.Cmd)
}
