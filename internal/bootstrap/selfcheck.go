package bootstrap

import (
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// selfCheckPause gives the user a moment to read each summary line
const selfCheckPause = 1500 * time.Millisecond

// ffmpegSummaryLimit truncates the banner to just the version part
const ffmpegSummaryLimit = 30

// runSelfChecks verifies both tools actually run. All failures here are
// informational; they never fail the bootstrap.
func (s *Service) runSelfChecks(events chan<- model.BootstrapEvent) {
	events <- model.BootstrapEvent{Kind: model.BootstrapStarting, Message: "Checking yt-dlp updates..."}
	if msg, err := updateYtdlp(s.cfg.Ytdlp.LookupPath); err != nil {
		events <- model.BootstrapEvent{Kind: model.BootstrapStarting, Message: fmt.Sprintf("yt-dlp update check failed: %v", err)}
	} else {
		events <- model.BootstrapEvent{Kind: model.BootstrapStarting, Message: "yt-dlp: " + msg}
	}
	time.Sleep(selfCheckPause)

	events <- model.BootstrapEvent{Kind: model.BootstrapStarting, Message: "Checking ffmpeg..."}
	if msg, err := checkFFmpeg(s.cfg.FFmpeg.LookupPath); err != nil {
		events <- model.BootstrapEvent{Kind: model.BootstrapStarting, Message: fmt.Sprintf("ffmpeg check failed: %v", err)}
	} else {
		events <- model.BootstrapEvent{Kind: model.BootstrapStarting, Message: "ffmpeg: " + msg}
	}
	time.Sleep(selfCheckPause)
}

// updateYtdlp runs the tool's self-update and returns its one-line outcome
func updateYtdlp(ytdlpPath string) (string, error) {
	cmd := exec.Command(ytdlpPath, "-U")
	platform.HideChildWindow(cmd)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("self-update failed: %v", err)
	}

	return summarizeUpdateOutput(string(output)), nil
}

// summarizeUpdateOutput picks the line reporting the update outcome
func summarizeUpdateOutput(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if strings.Contains(line, "up to date") || strings.Contains(line, "Updated") {
			return strings.TrimSpace(line)
		}
	}
	return "update check finished"
}

// checkFFmpeg runs ffmpeg -version and returns a short health summary
func checkFFmpeg(ffmpegPath string) (string, error) {
	cmd := exec.Command(ffmpegPath, "-version")
	platform.HideChildWindow(cmd)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("version check failed: %v", err)
	}

	return summarizeVersionOutput(string(output)), nil
}

// summarizeVersionOutput truncates the ffmpeg banner to its version part
func summarizeVersionOutput(output string) string {
	line, _, _ := strings.Cut(output, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		line = "ffmpeg detected"
	}
	if len(line) > ffmpegSummaryLimit {
		line = line[:ffmpegSummaryLimit]
	}
	return "OK (" + line + ")"
}
