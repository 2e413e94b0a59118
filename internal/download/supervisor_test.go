package download

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/ytget/yt-grabber/internal/model"
)

// writeStub creates an executable shell script standing in for yt-dlp.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "yt-dlp")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func stubSupervisor(t *testing.T, body string) *Supervisor {
	t.Helper()
	return NewSupervisor(writeStub(t, body), os.Getenv("PATH"))
}

func drain(t *testing.T, events <-chan model.DownloadEvent) []model.DownloadEvent {
	t.Helper()
	var got []model.DownloadEvent
	deadline := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return got
			}
			got = append(got, ev)
		case <-deadline:
			t.Fatalf("stream did not close; events so far: %v", got)
		}
	}
}

func terminalEvents(events []model.DownloadEvent) []model.DownloadEvent {
	var out []model.DownloadEvent
	for _, ev := range events {
		if ev.IsTerminal() {
			out = append(out, ev)
		}
	}
	return out
}

func TestStartCompletesOnCleanExit(t *testing.T) {
	s := stubSupervisor(t, `
echo "[youtube] abc: Downloading webpage"
echo "[download]  50.0% of 4.00MiB at 2.00MiB/s ETA 00:01"
echo "[download] 100% of 4.00MiB in 00:02"
echo "[ExtractAudio] Destination: out.mp3"
exit 0`)

	events, _ := s.Start(model.DownloadJob{Title: "clean run", Format: model.FormatMP3, OutputDir: t.TempDir()})
	got := drain(t, events)

	terms := terminalEvents(got)
	if len(terms) != 1 || terms[0].Kind != model.DownloadCompleted {
		t.Fatalf("want exactly one Completed terminal, got %v", got)
	}
	if terms[0].Title != "clean run" {
		t.Errorf("terminal title = %q", terms[0].Title)
	}
	if !got[len(got)-1].IsTerminal() {
		t.Error("terminal event must be last")
	}

	var sawProgress, sawConverting bool
	for _, ev := range got {
		if ev.Kind == model.DownloadProgress {
			sawProgress = true
		}
		if ev.Kind == model.DownloadConverting {
			sawConverting = true
		}
	}
	if !sawProgress || !sawConverting {
		t.Errorf("expected progress and converting events, got %v", got)
	}
}

func TestStartFailsOnNonZeroExit(t *testing.T) {
	s := stubSupervisor(t, `
echo "[download]  10.0% of 4.00MiB at 2.00MiB/s"
exit 1`)

	events, _ := s.Start(model.DownloadJob{Title: "bad run", OutputDir: t.TempDir()})
	terms := terminalEvents(drain(t, events))

	if len(terms) != 1 || terms[0].Kind != model.DownloadFailed {
		t.Fatalf("want exactly one Failed terminal, got %v", terms)
	}
}

func TestStartFailsOnSpawnError(t *testing.T) {
	s := NewSupervisor(filepath.Join(t.TempDir(), "missing-binary"), os.Getenv("PATH"))

	events, _ := s.Start(model.DownloadJob{Title: "no binary", OutputDir: t.TempDir()})
	got := drain(t, events)

	if len(got) != 1 || got[0].Kind != model.DownloadFailed {
		t.Fatalf("want a single Failed event, got %v", got)
	}
}

func TestStopKillsChildWithinBound(t *testing.T) {
	s := stubSupervisor(t, `
echo "[download]   1.0% of 99.00MiB at 0.50MiB/s"
sleep 60`)

	events, stop := s.Start(model.DownloadJob{Title: "long run", OutputDir: t.TempDir()})

	// Wait for the first progress event so the child is known to be up.
	deadline := time.After(10 * time.Second)
	for running := true; running; {
		select {
		case ev := <-events:
			if ev.Kind == model.DownloadProgress {
				running = false
			}
		case <-deadline:
			t.Fatal("child never reported progress")
		}
	}

	start := time.Now()
	stop()
	stop() // idempotent

	terms := terminalEvents(drain(t, events))
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("stop took %v", elapsed)
	}
	if len(terms) != 1 || terms[0].Kind != model.DownloadStopped {
		t.Fatalf("want exactly one Stopped terminal, got %v", terms)
	}
}

func TestStopAfterExitStaysCompleted(t *testing.T) {
	s := stubSupervisor(t, `exit 0`)

	events, stop := s.Start(model.DownloadJob{Title: "quick", OutputDir: t.TempDir()})
	got := drain(t, events)
	stop() // child is long gone; must not panic or change anything

	terms := terminalEvents(got)
	if len(terms) != 1 || terms[0].Kind != model.DownloadCompleted {
		t.Fatalf("want Completed terminal, got %v", got)
	}
}
