package model

// BootstrapEventKind enumerates the stages reported while external tool
// binaries are installed.
type BootstrapEventKind int

const (
	BootstrapStarting BootstrapEventKind = iota
	BootstrapDownloadProgress
	BootstrapExtracting
	BootstrapCompleted
	BootstrapFailed
)

// BootstrapEvent is one status update from the dependency bootstrapper.
// Completed and Failed are terminal; nothing is sent after them.
type BootstrapEvent struct {
	Kind    BootstrapEventKind
	Percent float64 // DownloadProgress only, 0 when length unknown
	Label   string  // tool name for DownloadProgress/Extracting
	Message string  // Starting/Failed text
}

// IsTerminal returns true if no further bootstrap events will follow
func (e BootstrapEvent) IsTerminal() bool {
	return e.Kind == BootstrapCompleted || e.Kind == BootstrapFailed
}

// DownloadEventKind enumerates the states a running job reports.
type DownloadEventKind int

const (
	DownloadStarting DownloadEventKind = iota
	DownloadProgress
	DownloadConverting
	DownloadCompleted
	DownloadFailed
	DownloadStopped
)

// DownloadEvent is one status update from the download supervisor. Exactly
// one terminal variant (Completed, Failed or Stopped) is emitted per job.
type DownloadEvent struct {
	Kind    DownloadEventKind
	Percent float64 // Progress only, 0-100
	Speed   string  // Progress only, e.g. "1.2MiB/s", may be empty
	Title   string  // Completed only
	Message string  // Starting/Failed text
}

// IsTerminal returns true if no further events for this job will follow
func (e DownloadEvent) IsTerminal() bool {
	switch e.Kind {
	case DownloadCompleted, DownloadFailed, DownloadStopped:
		return true
	}
	return false
}
