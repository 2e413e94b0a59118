package model

// Format is the target output format of a download job.
type Format string

const (
	FormatMP3  Format = "mp3"
	FormatWAV  Format = "wav"
	FormatM4A  Format = "m4a"
	FormatFLAC Format = "flac"
	FormatMP4  Format = "mp4"
	FormatWebM Format = "webm"
)

// String returns the string representation of Format
func (f Format) String() string {
	return string(f)
}

// IsAudio returns true for extract-to-audio formats
func (f Format) IsAudio() bool {
	switch f {
	case FormatMP3, FormatWAV, FormatM4A, FormatFLAC:
		return true
	}
	return false
}

// Ext returns the container extension for the format
func (f Format) Ext() string {
	return "." + string(f)
}

// AllFormats returns the selectable formats in display order
func AllFormats() []Format {
	return []Format{FormatMP3, FormatWAV, FormatM4A, FormatFLAC, FormatMP4, FormatWebM}
}

// ParseFormat maps a stored string to a Format, defaulting to mp3 for
// anything unrecognized
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatWAV, FormatM4A, FormatFLAC, FormatMP4, FormatWebM:
		return Format(s)
	default:
		return FormatMP3
	}
}
