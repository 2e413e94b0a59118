package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DownloadJob is one requested transfer. It is immutable for the job's
// duration; the supervisor reads it, never writes it.
type DownloadJob struct {
	ID           string
	URL          string
	Title        string
	Format       Format
	AudioQuality string // e.g. "320K"; used by mp3 only
	OutputDir    string
	CreatedAt    time.Time
}

// NewDownloadJob creates a job with a fresh ID
func NewDownloadJob(url, title string, format Format, audioQuality, outputDir string) DownloadJob {
	return DownloadJob{
		ID:           generateJobID(),
		URL:          url,
		Title:        title,
		Format:       format,
		AudioQuality: audioQuality,
		OutputDir:    outputDir,
		CreatedAt:    time.Now(),
	}
}

// Outcome is the resolved terminal state of a job. It is computed from the
// child's exit status combined with whether a kill was requested, never from
// exit-code heuristics alone.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeFailed
	OutcomeStopped
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// ResolveOutcome combines the process exit success flag with the caller's
// kill-requested bookkeeping into a single terminal outcome.
func ResolveOutcome(exitSuccess, killRequested bool) Outcome {
	switch {
	case exitSuccess:
		return OutcomeCompleted
	case killRequested:
		return OutcomeStopped
	default:
		return OutcomeFailed
	}
}

// generateJobID generates a unique job ID using UUID v7 for better uniqueness
// and time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("job-%d", time.Now().UnixNano())
	}
	return "job-" + id.String()
}
