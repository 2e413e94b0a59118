package bootstrap

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func TestKindForArchive(t *testing.T) {
	cases := []struct {
		name string
		want ArchiveKind
	}{
		{"", ArchiveNone},
		{"ffmpeg.zip", ArchiveZip},
		{"ffmpeg.tar.xz", ArchiveTarXz},
		{"ffmpeg.tar.gz", ArchiveNone},
	}

	for _, c := range cases {
		if got := KindForArchive(c.name); got != c.want {
			t.Errorf("KindForArchive(%q) = %d, want %d", c.name, got, c.want)
		}
	}
}

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w := zip.NewWriter(f)
	for name, data := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write([]byte(data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractZipPicksMatchingEntry(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool.zip")
	writeZip(t, archive, map[string]string{
		"release/bin/ffprobe": "not this one",
		"release/bin/ffmpeg":  "the binary",
	})

	install := filepath.Join(dir, "ffmpeg")
	if err := extractZip(archive, "ffmpeg", install); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	data, err := os.ReadFile(install)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "the binary" {
		t.Errorf("extracted wrong entry: %q", data)
	}
}

func TestExtractZipWindowsExtension(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool.zip")
	writeZip(t, archive, map[string]string{
		"release/bin/ffmpeg.exe": "windows binary",
	})

	install := filepath.Join(dir, "ffmpeg.exe")
	if err := extractZip(archive, "ffmpeg", install); err != nil {
		t.Fatalf("extract failed: %v", err)
	}

	if _, err := os.Stat(install); err != nil {
		t.Errorf("binary not placed: %v", err)
	}
}

func TestExtractZipNoMatchIsSilent(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "tool.zip")
	writeZip(t, archive, map[string]string{
		"release/readme.txt": "nothing useful",
	})

	install := filepath.Join(dir, "ffmpeg")
	if err := extractZip(archive, "ffmpeg", install); err != nil {
		t.Fatalf("unmatched archive should not error: %v", err)
	}
	if _, err := os.Stat(install); !os.IsNotExist(err) {
		t.Error("no binary should have been placed")
	}
}

func TestSummarizeUpdateOutput(t *testing.T) {
	out := "Checking...\nyt-dlp is up to date (2025.08.11)\n"
	if got := summarizeUpdateOutput(out); got != "yt-dlp is up to date (2025.08.11)" {
		t.Errorf("unexpected summary %q", got)
	}

	out = "Updating...\nUpdated yt-dlp to 2025.08.20\n"
	if got := summarizeUpdateOutput(out); got != "Updated yt-dlp to 2025.08.20" {
		t.Errorf("unexpected summary %q", got)
	}

	if got := summarizeUpdateOutput("no matching line"); got != "update check finished" {
		t.Errorf("unexpected fallback %q", got)
	}
}

func TestSummarizeVersionOutput(t *testing.T) {
	out := "ffmpeg version n6.0-45-g1234 Copyright (c) 2000-2023\nbuilt with gcc\n"
	got := summarizeVersionOutput(out)
	// Banner is truncated to its first 30 characters
	if got != "OK (ffmpeg version n6.0-45-g1234 C)" {
		t.Errorf("unexpected summary %q", got)
	}

	short := "ffmpeg version 6.0\n"
	if got := summarizeVersionOutput(short); got != "OK (ffmpeg version 6.0)" {
		t.Errorf("unexpected short summary %q", got)
	}

	if got := summarizeVersionOutput("\n"); got != "OK (ffmpeg detected)" {
		t.Errorf("unexpected empty-banner summary %q", got)
	}
}
