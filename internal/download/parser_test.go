package download

import (
	"testing"

	"github.com/ytget/yt-grabber/internal/model"
)

func TestClassifyLineProgress(t *testing.T) {
	cases := []struct {
		line    string
		percent float64
		speed   string
	}{
		{"[download]  42.5% of 10.00MiB at 1.20MiB/s ETA 00:05", 42.5, "1.20MiB/s"},
		{"[download] 100% of 10.00MiB in 00:08", 100, ""},
		{"[download]   0.0% of ~3.50MiB at Unknown speed", 0, ""},
	}

	for _, c := range cases {
		ev, ok := ClassifyLine(c.line)
		if !ok {
			t.Errorf("ClassifyLine(%q) not recognized", c.line)
			continue
		}
		if ev.Kind != model.DownloadProgress {
			t.Errorf("ClassifyLine(%q) kind = %d, want progress", c.line, ev.Kind)
		}
		if ev.Percent != c.percent {
			t.Errorf("ClassifyLine(%q) percent = %v, want %v", c.line, ev.Percent, c.percent)
		}
		if ev.Speed != c.speed {
			t.Errorf("ClassifyLine(%q) speed = %q, want %q", c.line, ev.Speed, c.speed)
		}
		if ev.Percent < 0 || ev.Percent > 100 {
			t.Errorf("ClassifyLine(%q) percent %v out of range", c.line, ev.Percent)
		}
	}
}

func TestClassifyLineConverting(t *testing.T) {
	lines := []string{
		"[ExtractAudio] Destination: /tmp/song.mp3",
		"[Merger] Merging formats into \"/tmp/video.mp4\"",
	}
	for _, line := range lines {
		ev, ok := ClassifyLine(line)
		if !ok || ev.Kind != model.DownloadConverting {
			t.Errorf("ClassifyLine(%q) = (%v, %v), want converting", line, ev, ok)
		}
	}
}

func TestClassifyLineIgnored(t *testing.T) {
	lines := []string{
		"",
		"[youtube] abc123: Downloading webpage",
		"[download] Destination: /tmp/song.webm",
		"[download] garbage% of nothing",
		"random noise with a % sign",
	}
	for _, line := range lines {
		if ev, ok := ClassifyLine(line); ok {
			t.Errorf("ClassifyLine(%q) unexpectedly produced %v", line, ev)
		}
	}
}
