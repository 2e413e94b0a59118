package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-grabber/internal/model"
)

// DefaultParseTimeout bounds playlist enumeration
const DefaultParseTimeout = 60 * time.Second

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// PlaylistParser enumerates playlist items without spawning the yt-dlp
// binary; used as the fast path for recognizable playlist URLs.
type PlaylistParser struct {
	timeout time.Duration
}

// NewPlaylistParser creates a new parser
func NewPlaylistParser() *PlaylistParser {
	return &PlaylistParser{timeout: DefaultParseTimeout}
}

// SetTimeout sets the timeout for parsing operations
func (p *PlaylistParser) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// IsPlaylistURL reports whether the URL carries a playlist parameter
func IsPlaylistURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ExtractPlaylistID extracts the playlist ID from various URL formats,
// empty when absent
func ExtractPlaylistID(url string) string {
	idx := strings.Index(url, PlaylistParam)
	if idx < 0 {
		return ""
	}
	id := url[idx+len(PlaylistParam):]
	if sep := strings.Index(id, ParamSeparator); sep >= 0 {
		id = id[:sep]
	}
	return id
}

// Parse lists the videos of a playlist URL
func (p *PlaylistParser) Parse(ctx context.Context, url string) (*model.PlaylistInfo, error) {
	playlistID := ExtractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]model.VideoEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.VideoEntry{
			ID:       it.VideoID,
			Title:    it.Title,
			URL:      fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
			Selected: true,
		})
	}

	title := UntitledPlaylist
	if len(entries) > 0 {
		title = entries[0].Title + " Playlist"
	}

	return &model.PlaylistInfo{Title: title, Entries: entries, IsPlaylist: true}, nil
}
