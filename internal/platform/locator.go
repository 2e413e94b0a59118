package platform

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// Tool binary names
const (
	YtdlpName  = "yt-dlp"
	FFmpegName = "ffmpeg"
)

// AppDirName is the per-application directory under the OS local-data root
const AppDirName = "yt-grabber"

// AppDir returns the per-application local-data directory where bootstrapped
// binaries and staging files live. Pure path computation; the directory may
// not exist yet.
func AppDir() string {
	switch runtime.GOOS {
	case OSWindows:
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, AppDirName)
		}
	case OSDarwin:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, "Library", "Application Support", AppDirName)
		}
	default:
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, ".local", "share", AppDirName)
		}
	}
	return AppDirName
}

// YtdlpPath returns the yt-dlp path to invoke. Always returns a best-guess
// path even if the file does not exist yet.
//   - Windows: the bootstrapped binary in AppDir.
//   - macOS: bare name, resolved on the (augmented) PATH.
//   - Other: a user-local install (pipx and friends) first, then the
//     bootstrapped binary, then bare name.
func YtdlpPath() string {
	switch runtime.GOOS {
	case OSWindows:
		return filepath.Join(AppDir(), YtdlpName+".exe")
	case OSDarwin:
		return YtdlpName
	default:
		if home, err := os.UserHomeDir(); err == nil {
			local := filepath.Join(home, ".local", "bin", YtdlpName)
			if _, statErr := os.Stat(local); statErr == nil {
				return local
			}
		}
		installed := filepath.Join(AppDir(), YtdlpName)
		if _, err := os.Stat(installed); err == nil {
			return installed
		}
		return YtdlpName
	}
}

// FFmpegPath returns the ffmpeg path to invoke, same policy as YtdlpPath
func FFmpegPath() string {
	switch runtime.GOOS {
	case OSWindows:
		return filepath.Join(AppDir(), FFmpegName+".exe")
	case OSDarwin:
		return FFmpegName
	default:
		installed := filepath.Join(AppDir(), FFmpegName)
		if _, err := os.Stat(installed); err == nil {
			return installed
		}
		return FFmpegName
	}
}

// InstallYtdlpPath returns the path the bootstrapper installs yt-dlp to
func InstallYtdlpPath() string {
	name := YtdlpName
	if runtime.GOOS == OSWindows {
		name += ".exe"
	}
	return filepath.Join(AppDir(), name)
}

// InstallFFmpegPath returns the path the bootstrapper installs ffmpeg to
func InstallFFmpegPath() string {
	name := FFmpegName
	if runtime.GOOS == OSWindows {
		name += ".exe"
	}
	return filepath.Join(AppDir(), name)
}

// ToolPresent reports whether a located tool is actually invocable: absolute
// paths are checked on disk, bare names resolved via PATH.
func ToolPresent(path string) bool {
	if filepath.IsAbs(path) {
		_, err := os.Stat(path)
		return err == nil
	}
	_, err := exec.LookPath(path)
	return err == nil
}

// ChildPathEnv returns the PATH value for child process launches. The
// augmentation is per-child only, never applied to this process globally:
// Windows and Linux prepend AppDir so a bootstrapped ffmpeg is found, macOS
// appends Homebrew locations that GUI apps do not inherit.
func ChildPathEnv() string {
	current := os.Getenv("PATH")
	switch runtime.GOOS {
	case OSWindows:
		return AppDir() + ";" + current
	case OSDarwin:
		home, _ := os.UserHomeDir()
		return current + ":/opt/homebrew/bin:/usr/local/bin:" + filepath.Join(home, ".cargo", "bin")
	default:
		return AppDir() + ":" + current
	}
}

// ToolSource describes where a tool binary is fetched from and, when the
// artifact is an archive, the staging filename it is saved under.
type ToolSource struct {
	URL     string
	Archive string // empty when the download is the binary itself
}

// DefaultYtdlpSource returns the platform download source for yt-dlp.
// The release artifact is the bare binary on every platform.
func DefaultYtdlpSource() ToolSource {
	switch runtime.GOOS {
	case OSWindows:
		return ToolSource{URL: "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp.exe"}
	case OSDarwin:
		return ToolSource{URL: "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp_macos"}
	default:
		return ToolSource{URL: "https://github.com/yt-dlp/yt-dlp/releases/latest/download/yt-dlp"}
	}
}

// DefaultFFmpegSource returns the platform download source for ffmpeg.
// The macOS URL pins one evermeet.cx build; upstream publishes no "latest"
// static archive, so this default goes stale and exists as a settings
// override for that reason.
func DefaultFFmpegSource() ToolSource {
	switch runtime.GOOS {
	case OSWindows:
		return ToolSource{
			URL:     "https://github.com/BtbN/FFmpeg-Builds/releases/download/latest/ffmpeg-master-latest-win64-gpl.zip",
			Archive: "ffmpeg.zip",
		}
	case OSDarwin:
		return ToolSource{
			URL:     "https://evermeet.cx/ffmpeg/ffmpeg-6.0.zip",
			Archive: "ffmpeg.zip",
		}
	default:
		return ToolSource{
			URL:     "https://github.com/BtbN/FFmpeg-Builds/releases/download/latest/ffmpeg-master-latest-linux64-gpl.tar.xz",
			Archive: "ffmpeg.tar.xz",
		}
	}
}
