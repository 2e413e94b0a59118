package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ytget/yt-grabber/internal/model"
)

// Fallback titles when the metadata omits them
const (
	UntitledVideo    = "Untitled"
	UntitledPlaylist = "Playlist"
)

// YouTubeVideoURLTemplate rebuilds a watch URL from a bare video ID
const YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"

// probeResponse is the subset of the yt-dlp -J shape the app reads
type probeResponse struct {
	Type           string       `json:"_type"`
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	WebpageURL     string       `json:"webpage_url"`
	Thumbnail      string       `json:"thumbnail"`
	Duration       float64      `json:"duration"`
	DurationString string       `json:"duration_string"`
	Entries        []probeEntry `json:"entries"`
}

type probeEntry struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Thumbnail      string  `json:"thumbnail"`
	Duration       float64 `json:"duration"`
	DurationString string  `json:"duration_string"`
}

// ProbeURL asks yt-dlp to describe a URL without downloading anything and
// returns the single video or flat playlist listing it reports.
func ProbeURL(ctx context.Context, ytdlpPath, url string) (*model.PlaylistInfo, error) {
	cmd := exec.CommandContext(ctx, ytdlpPath, "--flat-playlist", "-J", "--no-warnings", url)
	cmd.Env = append(os.Environ(), "PATH="+ChildPathEnv())
	HideChildWindow(cmd)

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("yt-dlp could not analyze URL: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("failed to run yt-dlp: %w", err)
	}

	return parseProbeOutput(output, url)
}

// parseProbeOutput converts the -J JSON document into a PlaylistInfo
func parseProbeOutput(output []byte, url string) (*model.PlaylistInfo, error) {
	var resp probeResponse
	if err := json.Unmarshal(output, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp JSON: %w", err)
	}

	if resp.Type == "playlist" {
		entries := make([]model.VideoEntry, 0, len(resp.Entries))
		for _, e := range resp.Entries {
			if e.ID == "" {
				continue
			}
			entryURL := e.URL
			if entryURL == "" {
				entryURL = fmt.Sprintf(YouTubeVideoURLTemplate, e.ID)
			}
			title := e.Title
			if title == "" {
				title = UntitledVideo
			}
			entries = append(entries, model.VideoEntry{
				ID:             e.ID,
				Title:          title,
				URL:            entryURL,
				Thumbnail:      e.Thumbnail,
				Duration:       e.Duration,
				DurationString: e.DurationString,
				Selected:       true,
			})
		}
		title := resp.Title
		if title == "" {
			title = UntitledPlaylist
		}
		return &model.PlaylistInfo{Title: title, Entries: entries, IsPlaylist: true}, nil
	}

	title := resp.Title
	if title == "" {
		title = UntitledVideo
	}
	entryURL := resp.WebpageURL
	if entryURL == "" {
		entryURL = url
	}
	entry := model.VideoEntry{
		ID:             resp.ID,
		Title:          title,
		URL:            entryURL,
		Thumbnail:      resp.Thumbnail,
		Duration:       resp.Duration,
		DurationString: resp.DurationString,
		Selected:       true,
	}
	return &model.PlaylistInfo{Title: title, Entries: []model.VideoEntry{entry}, IsPlaylist: false}, nil
}
