package bootstrap

// Package bootstrap ensures the external yt-dlp and ffmpeg binaries are
// present and runnable before any download can proceed. Missing tools are
// fetched over HTTPS with bounded exponential backoff, extracted when the
// artifact is an archive, and marked executable. Progress is streamed as
// model.BootstrapEvent values; Completed or Failed is emitted exactly once
// per run. Concurrent runs are not supported; callers serialize.
