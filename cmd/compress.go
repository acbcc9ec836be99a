package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetpress/internal/images"
	"assetpress/internal/logging"
)

var (
	compressQuality     int
	compressMinSizeMB   float64
	compressNoRecursive bool
)

var compressCmd = &cobra.Command{
	Use:   "compress [flags] <path>",
	Short: "Recompress oversized PNG and JPEG files in place",
	Long: "Recompress images above the size threshold: lossless maximum compression\n" +
		"for PNG, lossy re-encode for JPEG (alpha flattened onto white). The\n" +
		"original is kept whenever the re-encode is not smaller.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("quality") {
			compressQuality = cfg.Images.Quality
		}
		if !cmd.Flags().Changed("min-size") {
			compressMinSizeMB = cfg.Images.MinSizeMB
		}
		if compressQuality < 1 || compressQuality > 100 {
			return fmt.Errorf("--quality must be between 1 and 100")
		}
		if compressMinSizeMB < 0 {
			return fmt.Errorf("--min-size must be non-negative")
		}

		logger, err := logging.New(logFile)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		compressor := images.NewCompressor(compressQuality, compressMinSizeMB, logger)
		return runBatch("compress", args[0], images.Extensions, !compressNoRecursive, compressor.Process)
	},
}

func init() {
	compressCmd.Flags().IntVar(&compressQuality, "quality", 85, "JPEG quality (1-100)")
	compressCmd.Flags().Float64Var(&compressMinSizeMB, "min-size", images.DefaultMinSizeMB, "minimum file size in MB to recompress")
	compressCmd.Flags().BoolVar(&compressNoRecursive, "no-recursive", false, "do not process subdirectories")

	rootCmd.AddCommand(compressCmd)
}
