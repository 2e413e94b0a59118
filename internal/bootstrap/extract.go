package bootstrap

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ArchiveKind is the closed set of artifact layouts the bootstrapper knows
// how to unpack. The kind is fixed per platform at config time.
type ArchiveKind int

const (
	ArchiveNone ArchiveKind = iota
	ArchiveZip
	ArchiveTarXz
)

// KindForArchive maps a staging filename to its archive kind
func KindForArchive(name string) ArchiveKind {
	switch {
	case name == "":
		return ArchiveNone
	case strings.HasSuffix(name, ".zip"):
		return ArchiveZip
	case strings.HasSuffix(name, ".tar.xz"):
		return ArchiveTarXz
	default:
		return ArchiveNone
	}
}

// extractArchive places the tool binary from archivePath into installPath.
// An archive with no matching entry returns nil without placing a binary.
func extractArchive(kind ArchiveKind, archivePath, appDir, binName, installPath string) error {
	switch kind {
	case ArchiveZip:
		return extractZip(archivePath, binName, installPath)
	case ArchiveTarXz:
		return extractTarXz(archivePath, appDir, binName, installPath)
	default:
		return fmt.Errorf("no extraction strategy for %s", archivePath)
	}
}

// extractZip scans the archive for the one entry whose name ends with the
// expected executable name, with or without the Windows extension, and
// copies only that entry.
func extractZip(archivePath, binName, installPath string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("cannot open zip: %w", err)
	}
	defer reader.Close()

	for _, entry := range reader.File {
		if !strings.HasSuffix(entry.Name, binName) && !strings.HasSuffix(entry.Name, binName+".exe") {
			continue
		}

		in, err := entry.Open()
		if err != nil {
			return fmt.Errorf("cannot read zip entry %s: %w", entry.Name, err)
		}

		out, err := os.Create(installPath)
		if err != nil {
			in.Close()
			return fmt.Errorf("cannot create %s: %w", installPath, err)
		}

		_, copyErr := io.Copy(out, in)
		in.Close()
		out.Close()
		if copyErr != nil {
			return fmt.Errorf("cannot extract %s: %w", entry.Name, copyErr)
		}
		return nil
	}

	return nil
}

// extractTarXz shells out to tar, then looks for a bin/<binName> inside the
// extracted release directory (the BtbN builds always use that layout) and
// moves it into place.
func extractTarXz(archivePath, appDir, binName, installPath string) error {
	cmd := exec.Command("tar", "-xf", archivePath, "-C", appDir)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("tar failed: %v: %s", err, strings.TrimSpace(string(output)))
	}

	entries, err := os.ReadDir(appDir)
	if err != nil {
		return fmt.Errorf("cannot scan %s: %w", appDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() || !strings.Contains(entry.Name(), binName) {
			continue
		}
		binPath := filepath.Join(appDir, entry.Name(), "bin", binName)
		if _, err := os.Stat(binPath); err == nil {
			return os.Rename(binPath, installPath)
		}
	}

	return nil
}
