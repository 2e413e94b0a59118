package model

import "testing"

func TestBootstrapEventIsTerminal(t *testing.T) {
	cases := []struct {
		kind     BootstrapEventKind
		terminal bool
	}{
		{BootstrapStarting, false},
		{BootstrapDownloadProgress, false},
		{BootstrapExtracting, false},
		{BootstrapCompleted, true},
		{BootstrapFailed, true},
	}

	for _, c := range cases {
		e := BootstrapEvent{Kind: c.kind}
		if e.IsTerminal() != c.terminal {
			t.Errorf("kind %d: expected IsTerminal %v, got %v", c.kind, c.terminal, e.IsTerminal())
		}
	}
}

func TestDownloadEventIsTerminal(t *testing.T) {
	cases := []struct {
		kind     DownloadEventKind
		terminal bool
	}{
		{DownloadStarting, false},
		{DownloadProgress, false},
		{DownloadConverting, false},
		{DownloadCompleted, true},
		{DownloadFailed, true},
		{DownloadStopped, true},
	}

	for _, c := range cases {
		e := DownloadEvent{Kind: c.kind}
		if e.IsTerminal() != c.terminal {
			t.Errorf("kind %d: expected IsTerminal %v, got %v", c.kind, c.terminal, e.IsTerminal())
		}
	}
}

func TestResolveOutcome(t *testing.T) {
	cases := []struct {
		exitSuccess   bool
		killRequested bool
		want          Outcome
	}{
		{true, false, OutcomeCompleted},
		// A kill racing with natural completion still counts as completed
		{true, true, OutcomeCompleted},
		{false, true, OutcomeStopped},
		{false, false, OutcomeFailed},
	}

	for _, c := range cases {
		got := ResolveOutcome(c.exitSuccess, c.killRequested)
		if got != c.want {
			t.Errorf("ResolveOutcome(%v, %v) = %s, want %s", c.exitSuccess, c.killRequested, got, c.want)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeCompleted.String() != "completed" {
		t.Errorf("expected 'completed', got %q", OutcomeCompleted.String())
	}
	if OutcomeFailed.String() != "failed" {
		t.Errorf("expected 'failed', got %q", OutcomeFailed.String())
	}
	if OutcomeStopped.String() != "stopped" {
		t.Errorf("expected 'stopped', got %q", OutcomeStopped.String())
	}
}
