// Package compress re-encodes downloaded videos to a smaller H.264 MP4
// using the bootstrapped ffmpeg binary. Progress comes from ffmpeg's
// machine-readable -progress output scaled against the input duration.
package compress

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-grabber/internal/platform"
)

// Encoder settings for the compressed output
const (
	videoCodec   = "libx264"
	videoPreset  = "medium"
	videoCRF     = "23"
	audioCodec   = "aac"
	audioBitrate = "128k"

	compressedSuffix = "-compressed"
	outputExtension  = ".mp4"

	progressTimePrefix = "out_time_us="
	durationPrefix     = "Duration:"
	taskIDPrefix       = "compress-"
)

// EventKind enumerates compression task states.
type EventKind int

const (
	Starting EventKind = iota
	Progress
	Completed
	Failed
	Stopped
)

// Event is one status update from a compression task. Completed, Failed and
// Stopped are terminal; the stream closes after one of them.
type Event struct {
	TaskID     string
	Kind       EventKind
	Percent    float64 // Progress only, 0-100
	OutputPath string  // Completed only
	Message    string  // Failed text
}

// IsTerminal returns true if no further events for this task will follow
func (e Event) IsTerminal() bool {
	return e.Kind == Completed || e.Kind == Failed || e.Kind == Stopped
}

// Service runs one-shot compression tasks against a located ffmpeg binary.
type Service struct {
	ffmpegPath string
	pathEnv    string
}

// NewService creates a service that invokes the given ffmpeg binary with
// PATH set to pathEnv.
func NewService(ffmpegPath, pathEnv string) *Service {
	return &Service{ffmpegPath: ffmpegPath, pathEnv: pathEnv}
}

// Start begins compressing inputPath next to itself with a "-compressed"
// suffix. It returns the task's event stream and an idempotent stop
// function. Errors surface as a Failed event; a stopped task removes its
// partial output.
func (s *Service) Start(inputPath string) (<-chan Event, func()) {
	events := make(chan Event)

	ctx, cancel := context.WithCancel(context.Background())
	var once sync.Once
	stop := func() { once.Do(cancel) }

	go s.run(ctx, generateTaskID(), inputPath, events)

	return events, stop
}

func (s *Service) run(ctx context.Context, taskID, inputPath string, events chan<- Event) {
	defer close(events)

	fail := func(format string, args ...any) {
		events <- Event{TaskID: taskID, Kind: Failed, Message: fmt.Sprintf(format, args...)}
	}

	if _, err := os.Stat(inputPath); err != nil {
		fail("input file not readable: %v", err)
		return
	}

	events <- Event{TaskID: taskID, Kind: Starting}

	duration, err := s.probeDuration(inputPath)
	if err != nil {
		fail("probe duration: %v", err)
		return
	}

	outputPath := OutputPathFor(inputPath)

	cmd := exec.CommandContext(ctx, s.ffmpegPath, buildArgs(inputPath, outputPath)...)
	cmd.Env = append(os.Environ(), "PATH="+s.pathEnv)
	platform.HideChildWindow(cmd)

	// -progress pipe:2 sends key=value progress records to stderr
	stderr, err := cmd.StderrPipe()
	if err != nil {
		fail("stderr pipe: %v", err)
		return
	}

	if err := cmd.Start(); err != nil {
		fail("spawn ffmpeg: %v", err)
		return
	}

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, progressTimePrefix) {
			continue
		}
		us, err := strconv.ParseInt(strings.TrimPrefix(line, progressTimePrefix), 10, 64)
		if err != nil || duration <= 0 {
			continue
		}
		percent := float64(us) / 1e6 / duration.Seconds() * 100
		if percent > 100 {
			percent = 100
		}
		events <- Event{TaskID: taskID, Kind: Progress, Percent: percent}
	}

	err = cmd.Wait()

	switch {
	case ctx.Err() == context.Canceled:
		os.Remove(outputPath)
		events <- Event{TaskID: taskID, Kind: Stopped}
	case err != nil:
		os.Remove(outputPath)
		fail("ffmpeg exited with an error: %v", err)
	default:
		events <- Event{TaskID: taskID, Kind: Completed, Percent: 100, OutputPath: outputPath}
	}
}

// probeDuration reads the input duration from ffmpeg's own banner. The bare
// "-i" invocation exits non-zero because no output is given; only the banner
// matters.
func (s *Service) probeDuration(inputPath string) (time.Duration, error) {
	cmd := exec.Command(s.ffmpegPath, "-i", inputPath)
	cmd.Env = append(os.Environ(), "PATH="+s.pathEnv)
	platform.HideChildWindow(cmd)

	out, _ := cmd.CombinedOutput()
	return parseBannerDuration(string(out))
}

// parseBannerDuration extracts "Duration: HH:MM:SS.cc" from an ffmpeg banner.
func parseBannerDuration(banner string) (time.Duration, error) {
	for _, line := range strings.Split(banner, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, durationPrefix) {
			continue
		}
		stamp := strings.TrimSpace(strings.TrimPrefix(line, durationPrefix))
		if i := strings.Index(stamp, ","); i >= 0 {
			stamp = stamp[:i]
		}

		parts := strings.Split(stamp, ":")
		if len(parts) != 3 {
			return 0, fmt.Errorf("malformed duration %q", stamp)
		}
		hours, err1 := strconv.Atoi(parts[0])
		minutes, err2 := strconv.Atoi(parts[1])
		seconds, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return 0, fmt.Errorf("malformed duration %q", stamp)
		}

		total := time.Duration(hours)*time.Hour +
			time.Duration(minutes)*time.Minute +
			time.Duration(seconds*float64(time.Second))
		return total, nil
	}
	return 0, fmt.Errorf("no duration in ffmpeg output")
}

// OutputPathFor returns where the compressed copy of inputPath is written.
func OutputPathFor(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + compressedSuffix + outputExtension
}

func buildArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c:v", videoCodec,
		"-preset", videoPreset,
		"-crf", videoCRF,
		"-c:a", audioCodec,
		"-b:a", audioBitrate,
		"-movflags", "+faststart",
		"-progress", "pipe:2",
		"-nostats",
		outputPath,
	}
}

// generateTaskID generates a unique task ID using UUID v7 for better
// uniqueness and time ordering
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(taskIDPrefix+"%d", time.Now().UnixNano())
	}
	return taskIDPrefix + id.String()
}
