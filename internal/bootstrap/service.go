package bootstrap

import (
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// Event channel and copy buffer sizing
const (
	eventBuffer    = 16
	copyBufferSize = 32 * 1024
)

// Service installs missing tool binaries and reports progress
type Service struct {
	cfg    Config
	client *http.Client
}

// NewService creates a bootstrapper for the given config
func NewService(cfg Config) *Service {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	return &Service{
		cfg: cfg,
		client: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: &http.Transport{DialContext: dialer.DialContext},
		},
	}
}

// Run performs one bootstrap pass on a background goroutine and returns the
// event stream. The channel is closed after the terminal event.
func (s *Service) Run() <-chan model.BootstrapEvent {
	events := make(chan model.BootstrapEvent, eventBuffer)
	go func() {
		defer close(events)
		s.run(events)
	}()
	return events
}

func (s *Service) run(events chan<- model.BootstrapEvent) {
	if err := platform.CreateDirectoryIfNotExists(s.cfg.AppDir); err != nil {
		events <- model.BootstrapEvent{
			Kind:    model.BootstrapFailed,
			Message: fmt.Sprintf("cannot create app directory: %v", err),
		}
		return
	}

	for _, tool := range []Tool{s.cfg.Ytdlp, s.cfg.FFmpeg} {
		if s.toolPresent(tool) {
			continue
		}
		if err := s.install(tool, events); err != nil {
			events <- model.BootstrapEvent{
				Kind:    model.BootstrapFailed,
				Message: fmt.Sprintf("%s install failed: %v", tool.Name, err),
			}
			return
		}
	}

	if s.cfg.SelfCheck {
		s.runSelfChecks(events)
	}

	events <- model.BootstrapEvent{Kind: model.BootstrapCompleted}
}

// toolPresent checks both the locator's preferred path and the install
// target, so a PATH-resolved tool skips its download stage entirely
func (s *Service) toolPresent(tool Tool) bool {
	return platform.ToolPresent(tool.LookupPath) || platform.ToolPresent(tool.InstallPath)
}

// install downloads one tool and, when the artifact is an archive, extracts
// the binary out of it. The staging file is deleted regardless of outcome.
func (s *Service) install(tool Tool, events chan<- model.BootstrapEvent) error {
	if tool.Source.Archive == "" {
		// The artifact is the binary itself
		if err := s.download(tool.Source.URL, tool.InstallPath, tool.Name, events); err != nil {
			return err
		}
		return platform.MarkExecutable(tool.InstallPath)
	}

	stagingPath := filepath.Join(s.cfg.AppDir, tool.Source.Archive)
	defer func() {
		// Best-effort cleanup, extraction outcome does not matter
		if err := os.Remove(stagingPath); err != nil && !os.IsNotExist(err) {
			log.Printf("could not remove staging file %s: %v", stagingPath, err)
		}
	}()

	if err := s.download(tool.Source.URL, stagingPath, tool.Name, events); err != nil {
		return err
	}

	events <- model.BootstrapEvent{Kind: model.BootstrapExtracting, Label: tool.Name}

	kind := KindForArchive(tool.Source.Archive)
	if err := extractArchive(kind, stagingPath, s.cfg.AppDir, tool.Name, tool.InstallPath); err != nil {
		return err
	}

	if _, err := os.Stat(tool.InstallPath); err == nil {
		return platform.MarkExecutable(tool.InstallPath)
	}
	// An archive without a matching entry silently places no binary; the
	// first attempt to invoke the tool surfaces the problem
	return nil
}

// download fetches url into dest, streaming byte progress. The request is
// retried with bounded exponential backoff; exhaustion is fatal.
func (s *Service) download(url, dest, label string, events chan<- model.BootstrapEvent) error {
	events <- model.BootstrapEvent{
		Kind:    model.BootstrapStarting,
		Message: fmt.Sprintf("Downloading %s...", label),
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.cfg.InitialInterval
	policy.MaxInterval = s.cfg.MaxInterval
	policy.MaxElapsedTime = s.cfg.MaxElapsed

	resp, err := backoff.RetryWithData(func() (*http.Response, error) {
		resp, err := s.client.Get(url)
		if err != nil {
			events <- model.BootstrapEvent{
				Kind:    model.BootstrapStarting,
				Message: fmt.Sprintf("Retrying %s download...", label),
			}
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return nil, backoff.Permanent(fmt.Errorf("unexpected status %s", resp.Status))
		}
		return resp, nil
	}, policy)
	if err != nil {
		return fmt.Errorf("download failed after retries: %w", err)
	}
	defer resp.Body.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dest, err)
	}
	defer out.Close()

	total := resp.ContentLength
	var received int64
	buf := make([]byte, copyBufferSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("cannot write %s: %w", dest, writeErr)
			}
			received += int64(n)
			if total > 0 {
				events <- model.BootstrapEvent{
					Kind:    model.BootstrapDownloadProgress,
					Percent: float64(received) / float64(total) * 100,
					Label:   label,
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("download interrupted: %w", readErr)
		}
	}

	return nil
}
