package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"assetpress/internal/logging"
	"assetpress/internal/subtitles"
)

var (
	subtitlesModel    string
	subtitlesLanguage string
	subtitlesOutput   string
)

var subtitlesCmd = &cobra.Command{
	Use:   "subtitles [flags] <path>",
	Short: "Generate SRT subtitle files from MP3 audio",
	Long: "Transcribe MP3 files with a pretrained speech-recognition model and write\n" +
		"one .srt per input. Files whose subtitle already exists are skipped, so\n" +
		"re-runs only pick up new audio.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("model") {
			subtitlesModel = cfg.Subtitles.Model
		}
		if !cmd.Flags().Changed("language") {
			subtitlesLanguage = cfg.Subtitles.Language
		}
		if !subtitles.ValidModel(subtitlesModel) {
			return fmt.Errorf("unknown model %q (want one of %s)", subtitlesModel, strings.Join(subtitles.Models, ", "))
		}

		language := subtitlesLanguage
		if language == "auto" {
			language = ""
		}

		whisper := subtitles.NewWhisperCLI(subtitlesModel, language)
		if err := whisper.Check(); err != nil {
			return err
		}

		logger, err := logging.New(logFile)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		generator := subtitles.NewGenerator(subtitlesOutput, whisper, logger)
		return runBatch("subtitles", args[0], subtitles.Extensions, false, generator.Process)
	},
}

func init() {
	subtitlesCmd.Flags().StringVar(&subtitlesModel, "model", subtitles.DefaultModel, "model size: "+strings.Join(subtitles.Models, ", "))
	subtitlesCmd.Flags().StringVar(&subtitlesLanguage, "language", "en", `language code, or "auto" to detect`)
	subtitlesCmd.Flags().StringVar(&subtitlesOutput, "output", "", "output directory for .srt files (default: next to each input)")

	rootCmd.AddCommand(subtitlesCmd)
}
