package download

// Package download implements the core job pipeline on top of the yt-dlp
// binary: argument construction per target format, line-oriented progress
// classification of the child's stdout, cooperative kill-based cancellation,
// and an ordered relay that bridges the blocking worker to the UI's
// non-blocking consumer. Jobs run strictly one at a time.
