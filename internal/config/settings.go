package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir  = "download_directory"
	KeyOutputFormat = "output_format"
	KeyAudioQuality = "audio_quality"
	KeyLanguage     = "app_language"
	KeyRunSelfCheck = "run_tool_self_check"
	KeyYtdlpURL     = "ytdlp_download_url"
	KeyFFmpegURL    = "ffmpeg_download_url"
)

// Default values
const (
	DefaultAudioQuality = "320K"
	DefaultLanguage     = "en"
	DefaultRunSelfCheck = true
)

// AudioQualityOptions are the mp3 bitrates offered in the settings dialog.
var AudioQualityOptions = []string{"128K", "192K", "256K", "320K"}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetOutputFormat returns the configured output format
func (s *Settings) GetOutputFormat() model.Format {
	return model.ParseFormat(s.app.Preferences().String(KeyOutputFormat))
}

// SetOutputFormat sets the output format
func (s *Settings) SetOutputFormat(format model.Format) {
	s.app.Preferences().SetString(KeyOutputFormat, string(format))
}

// GetAudioQuality returns the configured mp3 bitrate
func (s *Settings) GetAudioQuality() string {
	quality := s.app.Preferences().String(KeyAudioQuality)
	if quality == "" {
		s.SetAudioQuality(DefaultAudioQuality)
		return DefaultAudioQuality
	}
	return quality
}

// SetAudioQuality sets the mp3 bitrate
func (s *Settings) SetAudioQuality(quality string) {
	if quality == "" {
		quality = DefaultAudioQuality
	}
	s.app.Preferences().SetString(KeyAudioQuality, quality)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetRunSelfCheck returns whether tool self-checks run after bootstrap
func (s *Settings) GetRunSelfCheck() bool {
	return s.app.Preferences().BoolWithFallback(KeyRunSelfCheck, DefaultRunSelfCheck)
}

// SetRunSelfCheck sets whether tool self-checks run after bootstrap
func (s *Settings) SetRunSelfCheck(enabled bool) {
	s.app.Preferences().SetBool(KeyRunSelfCheck, enabled)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"en": "English",
		"ko": "한국어",
		"ja": "日本語",
	}
}

// YtdlpSource returns the yt-dlp download source, honoring a URL override.
func (s *Settings) YtdlpSource() platform.ToolSource {
	src := platform.DefaultYtdlpSource()
	if url := s.app.Preferences().String(KeyYtdlpURL); url != "" {
		src.URL = url
	}
	return src
}

// FFmpegSource returns the ffmpeg download source, honoring a URL override.
func (s *Settings) FFmpegSource() platform.ToolSource {
	src := platform.DefaultFFmpegSource()
	if url := s.app.Preferences().String(KeyFFmpegURL); url != "" {
		src.URL = url
		src.Archive = stagingNameFor(url)
	}
	return src
}

// stagingNameFor picks the staging filename for an overridden ffmpeg URL so
// the extractor recognizes the archive type. A URL with no known archive
// suffix is treated as a bare binary.
func stagingNameFor(url string) string {
	switch {
	case strings.HasSuffix(url, ".zip"):
		return platform.FFmpegName + ".zip"
	case strings.HasSuffix(url, ".tar.xz"):
		return platform.FFmpegName + ".tar.xz"
	default:
		return ""
	}
}

// AppConfig is an immutable snapshot of the settings for worker goroutines.
// Preferences must only be touched from the UI; workers read the snapshot.
type AppConfig struct {
	DownloadDir  string
	OutputFormat model.Format
	AudioQuality string
	Language     string
	RunSelfCheck bool
}

// Snapshot captures the current settings.
func (s *Settings) Snapshot() AppConfig {
	return AppConfig{
		DownloadDir:  s.GetDownloadDirectory(),
		OutputFormat: s.GetOutputFormat(),
		AudioQuality: s.GetAudioQuality(),
		Language:     s.GetLanguage(),
		RunSelfCheck: s.GetRunSelfCheck(),
	}
}
