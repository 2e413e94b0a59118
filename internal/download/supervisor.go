package download

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"sync"

	"github.com/ytget/yt-grabber/internal/model"
	"github.com/ytget/yt-grabber/internal/platform"
)

// Supervisor spawns yt-dlp for one job at a time and translates the child's
// stdout into a stream of events. It holds no per-job state; each Start call
// is independent.
type Supervisor struct {
	ytdlpPath string
	pathEnv   string
}

// NewSupervisor creates a supervisor that runs the given yt-dlp binary with
// PATH set to pathEnv so the child can find ffmpeg.
func NewSupervisor(ytdlpPath, pathEnv string) *Supervisor {
	return &Supervisor{ytdlpPath: ytdlpPath, pathEnv: pathEnv}
}

// childProcess tracks the running child together with the kill bookkeeping.
// The mutex is never held across Kill or Wait; it only guards the flags.
type childProcess struct {
	mu            sync.Mutex
	cmd           *exec.Cmd
	killRequested bool
	finished      bool
}

// kill records the stop request and signals the child. A kill after the
// child has already exited is a no-op.
func (c *childProcess) kill() {
	c.mu.Lock()
	c.killRequested = true
	done := c.finished
	proc := c.cmd.Process
	c.mu.Unlock()

	if done || proc == nil {
		return
	}
	if err := proc.Kill(); err != nil {
		log.Printf("kill child: %v", err)
	}
}

// wait blocks until the child exits and returns whether it succeeded and
// whether a kill had been requested before or during the wait.
func (c *childProcess) wait() (exitSuccess, killRequested bool) {
	err := c.cmd.Wait()

	c.mu.Lock()
	c.finished = true
	killRequested = c.killRequested
	c.mu.Unlock()

	return err == nil, killRequested
}

// Start launches the job and returns its event stream plus a stop function.
// The stream carries zero or more non-terminal events followed by exactly one
// terminal event, then closes. A relay sits between the worker and the
// returned channel, so a slow consumer never blocks the worker. stop is
// idempotent and safe from any goroutine; after a stop the terminal event is
// Stopped unless the child had already exited.
func (s *Supervisor) Start(job model.DownloadJob) (<-chan model.DownloadEvent, func()) {
	produced := make(chan model.DownloadEvent)
	events := make(chan model.DownloadEvent)
	cancel := make(chan struct{})

	var once sync.Once
	stop := func() { once.Do(func() { close(cancel) }) }

	go s.runJob(job, produced, cancel)
	go Relay(produced, events)

	return events, stop
}

func (s *Supervisor) runJob(job model.DownloadJob, events chan<- model.DownloadEvent, cancel <-chan struct{}) {
	defer close(events)

	cmd := exec.Command(s.ytdlpPath, BuildArgs(job)...)
	cmd.Env = append(os.Environ(), "PATH="+s.pathEnv)
	platform.HideChildWindow(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		events <- model.DownloadEvent{Kind: model.DownloadFailed, Message: fmt.Sprintf("stdout pipe: %v", err)}
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		events <- model.DownloadEvent{Kind: model.DownloadFailed, Message: fmt.Sprintf("stderr pipe: %v", err)}
		return
	}

	if err := cmd.Start(); err != nil {
		events <- model.DownloadEvent{Kind: model.DownloadFailed, Message: fmt.Sprintf("spawn yt-dlp: %v", err)}
		return
	}

	child := &childProcess{cmd: cmd}

	// The child writes warnings to stderr; drain it so a chatty run cannot
	// fill the pipe and wedge the process.
	go func() {
		_, _ = io.Copy(io.Discard, stderr)
	}()

	// Killer goroutine. done stops it once the job finishes on its own.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-cancel:
			child.kill()
		case <-done:
		}
	}()

	events <- model.DownloadEvent{Kind: model.DownloadStarting, Message: job.Title}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if ev, ok := ClassifyLine(scanner.Text()); ok {
			events <- ev
		}
	}
	// A scan error here means the pipe broke, typically because the child
	// died; the exit status below is authoritative either way.

	exitSuccess, killRequested := child.wait()

	switch model.ResolveOutcome(exitSuccess, killRequested) {
	case model.OutcomeCompleted:
		events <- model.DownloadEvent{Kind: model.DownloadCompleted, Title: job.Title}
	case model.OutcomeStopped:
		events <- model.DownloadEvent{Kind: model.DownloadStopped}
	default:
		events <- model.DownloadEvent{Kind: model.DownloadFailed, Message: "yt-dlp exited with an error"}
	}
}
