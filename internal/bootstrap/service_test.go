package bootstrap

import (
	"archive/zip"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// testConfig returns a config pointing every path into dir, with retry
// timings short enough for tests
func testConfig(dir string) Config {
	return Config{
		AppDir: dir,
		Ytdlp: Tool{
			Name:        "yt-dlp",
			LookupPath:  filepath.Join(dir, "yt-dlp"),
			InstallPath: filepath.Join(dir, "yt-dlp"),
			Source:      platform.ToolSource{},
		},
		FFmpeg: Tool{
			Name:        "ffmpeg",
			LookupPath:  filepath.Join(dir, "ffmpeg"),
			InstallPath: filepath.Join(dir, "ffmpeg"),
			Source:      platform.ToolSource{},
		},
		SelfCheck:       false,
		InitialInterval: 5 * time.Millisecond,
		MaxInterval:     10 * time.Millisecond,
		MaxElapsed:      50 * time.Millisecond,
		RequestTimeout:  2 * time.Second,
		ConnectTimeout:  2 * time.Second,
	}
}

func collectEvents(t *testing.T, events <-chan model.BootstrapEvent) []model.BootstrapEvent {
	t.Helper()
	var collected []model.BootstrapEvent
	deadline := time.After(10 * time.Second)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				return collected
			}
			collected = append(collected, e)
		case <-deadline:
			t.Fatal("timed out waiting for bootstrap events")
		}
	}
}

func writeFakeTool(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestRunSkipsPresentTools(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFakeTool(t, cfg.Ytdlp.InstallPath)
	writeFakeTool(t, cfg.FFmpeg.InstallPath)

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()
	cfg.Ytdlp.Source.URL = server.URL
	cfg.FFmpeg.Source.URL = server.URL

	events := collectEvents(t, NewService(cfg).Run())

	if requests.Load() != 0 {
		t.Errorf("expected no network calls, got %d", requests.Load())
	}
	if len(events) != 1 || events[0].Kind != model.BootstrapCompleted {
		t.Fatalf("expected a single Completed event, got %+v", events)
	}
}

func TestRunDownloadsMissingTool(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFakeTool(t, cfg.FFmpeg.InstallPath)

	payload := make([]byte, 200*1024)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()
	cfg.Ytdlp.Source.URL = server.URL

	events := collectEvents(t, NewService(cfg).Run())

	// Percent sequence is monotonically non-decreasing and ends at 100
	last := -1.0
	sawProgress := false
	for _, e := range events {
		if e.Kind != model.BootstrapDownloadProgress {
			continue
		}
		sawProgress = true
		if e.Percent < last {
			t.Errorf("progress went backwards: %.2f after %.2f", e.Percent, last)
		}
		if e.Label != "yt-dlp" {
			t.Errorf("unexpected progress label %q", e.Label)
		}
		last = e.Percent
	}
	if !sawProgress {
		t.Fatal("expected DownloadProgress events")
	}
	if last != 100 {
		t.Errorf("final percent should be 100, got %.2f", last)
	}

	final := events[len(events)-1]
	if final.Kind != model.BootstrapCompleted {
		t.Fatalf("expected Completed, got %+v", final)
	}

	data, err := os.ReadFile(cfg.Ytdlp.InstallPath)
	if err != nil {
		t.Fatalf("binary was not installed: %v", err)
	}
	if len(data) != len(payload) {
		t.Errorf("installed %d bytes, want %d", len(data), len(payload))
	}
}

func TestRunFailsAfterRetryExhaustion(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFakeTool(t, cfg.FFmpeg.InstallPath)

	// A closed server makes every attempt a connection error (transient),
	// so the backoff policy runs to exhaustion
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()
	cfg.Ytdlp.Source.URL = url

	events := collectEvents(t, NewService(cfg).Run())

	terminal := 0
	for _, e := range events {
		if e.IsTerminal() {
			terminal++
		}
	}
	if terminal != 1 {
		t.Fatalf("expected exactly one terminal event, got %d", terminal)
	}
	if events[len(events)-1].Kind != model.BootstrapFailed {
		t.Fatalf("expected Failed, got %+v", events[len(events)-1])
	}
}

func TestRunFailsWhenAppDirUncreatable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(filepath.Join(blocker, "appdir"))
	events := collectEvents(t, NewService(cfg).Run())

	if len(events) != 1 || events[0].Kind != model.BootstrapFailed {
		t.Fatalf("expected a single Failed event, got %+v", events)
	}
}

func TestRunExtractsZipArchive(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	writeFakeTool(t, cfg.Ytdlp.InstallPath)
	cfg.FFmpeg.Source = platform.ToolSource{Archive: "ffmpeg.zip"}

	archive := buildZip(t, map[string][]byte{
		"ffmpeg-release/doc/README": []byte("docs"),
		"ffmpeg-release/bin/ffmpeg": []byte("ffmpeg binary bytes"),
	})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	}))
	defer server.Close()
	cfg.FFmpeg.Source.URL = server.URL

	events := collectEvents(t, NewService(cfg).Run())

	sawExtracting := false
	for _, e := range events {
		if e.Kind == model.BootstrapExtracting && e.Label == "ffmpeg" {
			sawExtracting = true
		}
	}
	if !sawExtracting {
		t.Error("expected an Extracting event for ffmpeg")
	}
	if events[len(events)-1].Kind != model.BootstrapCompleted {
		t.Fatalf("expected Completed, got %+v", events[len(events)-1])
	}

	data, err := os.ReadFile(cfg.FFmpeg.InstallPath)
	if err != nil {
		t.Fatalf("binary was not extracted: %v", err)
	}
	if string(data) != "ffmpeg binary bytes" {
		t.Errorf("wrong entry extracted: %q", data)
	}

	// The staging archive is cleaned up
	if _, err := os.Stat(filepath.Join(dir, "ffmpeg.zip")); !os.IsNotExist(err) {
		t.Error("staging archive should have been deleted")
	}
}

func buildZip(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	w := zip.NewWriter(f)
	for name, data := range entries {
		entry, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := entry.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
