package cmd

import (
	"github.com/spf13/cobra"

	"assetpress/internal/audioconv"
	"assetpress/internal/logging"
)

var (
	audioFormat      string
	audioBitrate     string
	audioOutputDir   string
	audioNoRecursive bool
)

var audioCmd = &cobra.Command{
	Use:   "audio [flags] <path>",
	Short: "Transcode audio files to OGG/Vorbis or MP4/AAC",
	Long: "Convert MP3, WAV, and other audio files to web-friendly codecs via ffmpeg.\n" +
		"Outputs keep the base filename with the new extension; originals are\n" +
		"never modified, and existing outputs are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("format") {
			audioFormat = cfg.Audio.Format
		}
		if !cmd.Flags().Changed("quality") {
			audioBitrate = cfg.Audio.Bitrate
		}
		format, err := audioconv.ParseFormat(audioFormat)
		if err != nil {
			return err
		}

		ffmpeg := audioconv.NewFFmpeg()
		if err := ffmpeg.Check(); err != nil {
			return err
		}

		logger, err := logging.New(logFile)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		converter := audioconv.NewConverter(format, audioBitrate, audioOutputDir, ffmpeg, logger)
		return runBatch("audio", args[0], audioconv.Extensions, !audioNoRecursive, converter.Process)
	},
}

func init() {
	audioCmd.Flags().StringVarP(&audioFormat, "format", "f", "ogg", "output format: ogg, mp4, or aac")
	audioCmd.Flags().StringVarP(&audioBitrate, "quality", "q", audioconv.DefaultBitrate, "target bitrate, e.g. 128k, 192k, 320k")
	audioCmd.Flags().StringVarP(&audioOutputDir, "output-dir", "o", "", "output directory (default: next to each input)")
	audioCmd.Flags().BoolVar(&audioNoRecursive, "no-recursive", false, "do not process subdirectories")

	rootCmd.AddCommand(audioCmd)
}
