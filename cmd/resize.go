package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetpress/internal/images"
	"assetpress/internal/logging"
)

var (
	resizeMaxDimension int
	resizeQuality      int
	resizeFlipPNG      bool
	resizeNoRecursive  bool
)

var resizeCmd = &cobra.Command{
	Use:   "resize [flags] <path>",
	Short: "Align image dimensions to multiples of 4 within a 4K cap",
	Long: "Resize PNG and JPEG files in place so both dimensions are multiples of 4\n" +
		"(the block size of GPU texture compression) and neither exceeds the\n" +
		"maximum. Aspect ratio is preserved up to the rounding step.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("max-dimension") {
			resizeMaxDimension = cfg.Images.MaxDimension
		}
		if !cmd.Flags().Changed("quality") {
			resizeQuality = cfg.Images.Quality
		}
		if resizeQuality < 1 || resizeQuality > 100 {
			return fmt.Errorf("--quality must be between 1 and 100")
		}
		if resizeMaxDimension < 4 {
			return fmt.Errorf("--max-dimension must be at least 4")
		}
		if resizeMaxDimension%4 != 0 {
			adjusted := (resizeMaxDimension / 4) * 4
			fmt.Printf("Adjusted max dimension to %d (multiple of 4)\n", adjusted)
			resizeMaxDimension = adjusted
		}

		logger, err := logging.New(logFile)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		resizer := images.NewResizer(resizeMaxDimension, resizeQuality, resizeFlipPNG, logger)
		return runBatch("resize", args[0], images.Extensions, !resizeNoRecursive, resizer.Process)
	},
}

func init() {
	resizeCmd.Flags().IntVar(&resizeMaxDimension, "max-dimension", images.DefaultMaxDimension, "maximum dimension in pixels")
	resizeCmd.Flags().IntVar(&resizeQuality, "quality", 85, "JPEG quality (1-100)")
	resizeCmd.Flags().BoolVar(&resizeFlipPNG, "flip-png", false, "flip PNG files vertically for engines with an inverted texture origin")
	resizeCmd.Flags().BoolVar(&resizeNoRecursive, "no-recursive", false, "do not process subdirectories")

	rootCmd.AddCommand(resizeCmd)
}
