package download

import (
	"strconv"
	"strings"

	"github.com/ytget/yt-grabber/internal/model"
)

// Literal tags yt-dlp prefixes its stage output with (case-sensitive)
const (
	progressTag     = "[download]"
	extractAudioTag = "[ExtractAudio]"
	mergerTag       = "[Merger]"
)

// ClassifyLine maps one line of child stdout to a status event. Lines that
// carry no status return ok=false and are ignored; a progress line whose
// percent token does not parse is ignored the same way.
func ClassifyLine(line string) (model.DownloadEvent, bool) {
	if strings.Contains(line, progressTag) && strings.Contains(line, "%") {
		fields := strings.Fields(line)

		var percentToken string
		for _, f := range fields {
			if strings.HasSuffix(f, "%") {
				percentToken = strings.TrimSuffix(f, "%")
				break
			}
		}
		if percentToken == "" {
			return model.DownloadEvent{}, false
		}

		percent, err := strconv.ParseFloat(percentToken, 64)
		if err != nil {
			return model.DownloadEvent{}, false
		}

		var speed string
		for _, f := range fields {
			if strings.HasSuffix(f, "/s") {
				speed = f
				break
			}
		}

		return model.DownloadEvent{Kind: model.DownloadProgress, Percent: percent, Speed: speed}, true
	}

	if strings.Contains(line, extractAudioTag) || strings.Contains(line, mergerTag) {
		return model.DownloadEvent{Kind: model.DownloadConverting}, true
	}

	return model.DownloadEvent{}, false
}
