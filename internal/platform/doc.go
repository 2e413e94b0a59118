package platform

// Package platform contains OS/platform integration and external tooling
// glue: tool binary location policy, per-OS download sources, child process
// environment, filesystem helpers, and URL analysis via the yt-dlp CLI.
