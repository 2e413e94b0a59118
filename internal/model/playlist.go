package model

import "fmt"

// VideoEntry is a single video discovered by URL analysis. Selected marks
// it for inclusion in the download queue.
type VideoEntry struct {
	ID             string
	Title          string
	URL            string
	Thumbnail      string
	Duration       float64 // seconds, 0 if unknown
	DurationString string  // provider-formatted duration, preferred if set
	Selected       bool
}

// FormatDuration renders the entry duration as the provider string when
// present, m:ss otherwise, or "??:??" when unknown
func (v VideoEntry) FormatDuration() string {
	if v.DurationString != "" {
		return v.DurationString
	}
	if v.Duration > 0 {
		mins := int(v.Duration) / 60
		secs := int(v.Duration) % 60
		return fmt.Sprintf("%d:%02d", mins, secs)
	}
	return "??:??"
}

// PlaylistInfo is the result of analyzing a URL: either one entry for a
// single video, or all entries of a playlist.
type PlaylistInfo struct {
	Title      string
	Entries    []VideoEntry
	IsPlaylist bool
}

// SelectedEntries returns the entries marked for download, in order
func (p *PlaylistInfo) SelectedEntries() []VideoEntry {
	selected := make([]VideoEntry, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e.Selected {
			selected = append(selected, e)
		}
	}
	return selected
}
