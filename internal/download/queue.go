package download

import (
	"sync"

	"github.com/ytget/yt-grabber/internal/model"
)

// JobEvent is a download event tagged with the job it belongs to, for
// consumers watching a multi-job run.
type JobEvent struct {
	Index int
	Job   model.DownloadJob
	Event model.DownloadEvent
}

// RunSequential runs the jobs strictly one at a time and returns a merged,
// ordered event stream. Job k+1 starts only after job k's terminal event has
// been forwarded, and only if that event was Completed; a Failed or Stopped
// job ends the run. The returned stop function cancels the currently running
// job. The stream closes after the last forwarded event.
func (s *Supervisor) RunSequential(jobs []model.DownloadJob) (<-chan JobEvent, func()) {
	out := make(chan JobEvent)
	cancel := make(chan struct{})

	var once sync.Once
	stop := func() { once.Do(func() { close(cancel) }) }

	go func() {
		defer close(out)

		for i, job := range jobs {
			select {
			case <-cancel:
				return
			default:
			}

			events, stopJob := s.Start(job)

			// Forward the cancel signal to the running job. jobDone
			// releases the forwarder once the job's stream closes.
			jobDone := make(chan struct{})
			go func() {
				select {
				case <-cancel:
					stopJob()
				case <-jobDone:
				}
			}()

			var terminal model.DownloadEvent
			for ev := range events {
				if ev.IsTerminal() {
					terminal = ev
				}
				out <- JobEvent{Index: i, Job: job, Event: ev}
			}
			close(jobDone)

			if terminal.Kind != model.DownloadCompleted {
				return
			}
		}
	}()

	return out, stop
}

// Relay forwards events from src to dst without ever blocking the producer:
// events queue in memory while the consumer lags. dst is closed once src is
// closed and the queue has drained.
func Relay[T any](src <-chan T, dst chan<- T) {
	var queue []T

	for src != nil || len(queue) > 0 {
		var sendCh chan<- T
		var next T
		if len(queue) > 0 {
			sendCh = dst
			next = queue[0]
		}

		select {
		case ev, ok := <-src:
			if !ok {
				src = nil
				continue
			}
			queue = append(queue, ev)
		case sendCh <- next:
			queue = queue[1:]
		}
	}

	close(dst)
}
