package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"assetpress/internal/config"
)

var (
	configPath string
	logFile    string
	noTUI      bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "assetpress",
	Short: "assetpress - batch-prepare game media assets for web deployment",
	Long: "assetpress batch-processes the media assets of a game project for web\n" +
		"deployment: aligning image dimensions for texture compression, shrinking\n" +
		"oversized images, transcoding audio to web-friendly codecs, and generating\n" +
		"subtitle files from speech.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML defaults file (default: ./"+config.DefaultFilename+" if present)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "append a structured JSON log to this file")
	rootCmd.PersistentFlags().BoolVar(&noTUI, "no-tui", false, "print plain per-file lines instead of the progress view")
}
