package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report availability of the external tools",
	Long: "Check that ffmpeg (audio command) and whisper (subtitles command) are on\n" +
		"PATH. Informational only; always exits 0.",
	Run: func(cmd *cobra.Command, args []string) {
		checkTool("ffmpeg", "audio transcoding", ffmpegVersion)
		checkTool("whisper", "subtitle generation", nil)
	},
}

func checkTool(binary, purpose string, version func() string) {
	if _, err := exec.LookPath(binary); err != nil {
		fmt.Fprintf(os.Stdout, "missing  %s (%s)\n", binary, purpose)
		return
	}
	detail := ""
	if version != nil {
		if v := version(); v != "" {
			detail = " - " + v
		}
	}
	fmt.Fprintf(os.Stdout, "found    %s (%s)%s\n", binary, purpose, detail)
}

// ffmpegVersion returns the first line of `ffmpeg -version`.
func ffmpegVersion() string {
	out, err := exec.Command("ffmpeg", "-version").Output()
	if err != nil {
		return ""
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.Index(line, "\n"); idx > 0 {
		line = line[:idx]
	}
	return line
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
