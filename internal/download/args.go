package download

import (
	"path/filepath"

	"github.com/ytget/yt-grabber/internal/model"
)

// yt-dlp format selector expressions for the video formats
const (
	mp4Selector  = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"
	webmSelector = "bestvideo[ext=webm]+bestaudio/best"
)

// BuildArgs constructs the yt-dlp argument list for one job: playlist
// expansion disabled (jobs are single-URL), machine-friendly newline
// progress, thumbnail and metadata embedded, and an output template built
// from the sanitized title with yt-dlp's native extension substitution.
func BuildArgs(job model.DownloadJob) []string {
	outputTemplate := filepath.Join(job.OutputDir, SanitizeTitle(job.Title)+".%(ext)s")

	args := []string{
		"--no-playlist",
		"--newline",
		"--progress",
		"--embed-thumbnail",
		"--add-metadata",
		"-o", outputTemplate,
	}

	switch job.Format {
	case model.FormatMP3:
		args = append(args, "-x", "--audio-format", "mp3", "--audio-quality", job.AudioQuality)
	case model.FormatWAV:
		args = append(args, "-x", "--audio-format", "wav")
	case model.FormatM4A:
		args = append(args, "-x", "--audio-format", "m4a")
	case model.FormatFLAC:
		args = append(args, "-x", "--audio-format", "flac")
	case model.FormatMP4:
		args = append(args, "-f", mp4Selector, "--merge-output-format", "mp4")
	case model.FormatWebM:
		args = append(args, "-f", webmSelector, "--merge-output-format", "webm")
	}

	// URL always goes last
	return append(args, job.URL)
}
