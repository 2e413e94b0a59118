package history_test

import (
	"testing"

	"github.com/ytget/yt-grabber/internal/history"
	"github.com/ytget/yt-grabber/internal/model"
)

func setupTestStore(t *testing.T) *history.Store {
	t.Helper()
	s, err := history.Open(":memory:")
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := setupTestStore(t)

	job := model.NewDownloadJob("https://youtube.com/watch?v=abc", "Test Video", model.FormatMP3, "320K", "/tmp")
	if err := s.Record(job, model.OutcomeCompleted, ""); err != nil {
		t.Fatalf("Failed to record: %v", err)
	}

	entries, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}

	e := entries[0]
	if e.JobID != job.ID || e.URL != job.URL || e.Title != "Test Video" {
		t.Errorf("Entry does not match job: %+v", e)
	}
	if e.Format != "mp3" || e.Outcome != "completed" {
		t.Errorf("Unexpected format/outcome: %q %q", e.Format, e.Outcome)
	}
}

func TestRecentOrderAndLimit(t *testing.T) {
	s := setupTestStore(t)

	for i, title := range []string{"first", "second", "third"} {
		job := model.NewDownloadJob("https://example.com", title, model.FormatMP4, "", "/tmp")
		outcome := model.OutcomeCompleted
		errText := ""
		if i == 1 {
			outcome = model.OutcomeFailed
			errText = "yt-dlp exited with an error"
		}
		if err := s.Record(job, outcome, errText); err != nil {
			t.Fatalf("Failed to record %q: %v", title, err)
		}
	}

	entries, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Failed to query: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "third" || entries[1].Title != "second" {
		t.Errorf("Wrong order: %q, %q", entries[0].Title, entries[1].Title)
	}
	if entries[1].ErrorText != "yt-dlp exited with an error" {
		t.Errorf("Failed entry should keep its error text, got %q", entries[1].ErrorText)
	}
}

func TestCountByOutcome(t *testing.T) {
	s := setupTestStore(t)

	outcomes := []model.Outcome{
		model.OutcomeCompleted,
		model.OutcomeCompleted,
		model.OutcomeStopped,
	}
	for _, o := range outcomes {
		job := model.NewDownloadJob("https://example.com", "v", model.FormatWebM, "", "/tmp")
		if err := s.Record(job, o, ""); err != nil {
			t.Fatalf("Failed to record: %v", err)
		}
	}

	count, err := s.CountByOutcome(model.OutcomeCompleted)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 completed, got %d", count)
	}

	count, err = s.CountByOutcome(model.OutcomeFailed)
	if err != nil {
		t.Fatalf("Failed to count: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 failed, got %d", count)
	}
}
