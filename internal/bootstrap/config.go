package bootstrap

import (
	"time"

	"github.com/ytget/yt-grabber/internal/platform"
)

// Retry and transfer timeouts
const (
	DefaultInitialInterval = 1 * time.Second
	DefaultMaxInterval     = 10 * time.Second
	DefaultMaxElapsed      = 60 * time.Second
	DefaultRequestTimeout  = 300 * time.Second
	DefaultConnectTimeout  = 30 * time.Second
)

// Tool identifies one external dependency: where to look for it, where to
// install it, and where to fetch it from. Immutable once resolved.
type Tool struct {
	Name        string
	LookupPath  string // locator result; may be a bare name resolved via PATH
	InstallPath string // absolute install target inside the app dir
	Source      platform.ToolSource
}

// Config is the immutable bootstrap configuration, constructed once at
// startup and passed down; nothing here is read from globals afterwards.
type Config struct {
	AppDir    string
	Ytdlp     Tool
	FFmpeg    Tool
	SelfCheck bool

	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
	RequestTimeout  time.Duration
	ConnectTimeout  time.Duration
}

// DefaultConfig resolves the platform policy into a ready-to-use config.
// Source URLs are defaults, not constants; settings may override them.
func DefaultConfig() Config {
	return Config{
		AppDir: platform.AppDir(),
		Ytdlp: Tool{
			Name:        platform.YtdlpName,
			LookupPath:  platform.YtdlpPath(),
			InstallPath: platform.InstallYtdlpPath(),
			Source:      platform.DefaultYtdlpSource(),
		},
		FFmpeg: Tool{
			Name:        platform.FFmpegName,
			LookupPath:  platform.FFmpegPath(),
			InstallPath: platform.InstallFFmpegPath(),
			Source:      platform.DefaultFFmpegSource(),
		},
		SelfCheck:       true,
		InitialInterval: DefaultInitialInterval,
		MaxInterval:     DefaultMaxInterval,
		MaxElapsed:      DefaultMaxElapsed,
		RequestTimeout:  DefaultRequestTimeout,
		ConnectTimeout:  DefaultConnectTimeout,
	}
}
