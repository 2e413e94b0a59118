package platform

import (
	"os"
	"path/filepath"
	"runtime"
)

// File permissions
const (
	DefaultDirPermissions = 0755
	ExecutablePermissions = 0755
)

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// MarkExecutable sets the owner/group/other execute bits on a freshly placed
// binary. No-op on Windows, where the extension carries executability.
func MarkExecutable(path string) error {
	if runtime.GOOS == OSWindows {
		return nil
	}
	return os.Chmod(path, ExecutablePermissions)
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "Downloads"), nil
}
