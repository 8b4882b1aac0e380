package video

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"framesift/internal/logging"
	"framesift/internal/media/ffprobe"
)

// Source yields decoded frames in strictly increasing index order.
type Source interface {
	// Next returns the next frame or io.EOF at end of stream.
	Next() (*Frame, error)
	FPS() float64
	// TotalFrames is best-effort; 0 means unknown.
	TotalFrames() int64
	Width() int
	Height() int
	Close() error
}

// OpenOptions configures the ffmpeg-backed source.
type OpenOptions struct {
	FFmpegBinary  string
	FFprobeBinary string
	// FPSOverride replaces the probed frame rate when positive.
	FPSOverride float64
	// Remediator enables the one-shot transcode fallback. Nil disables it.
	Remediator Remediator
	Logger     *slog.Logger
}

// FFmpegSource streams rawvideo frames off an ffmpeg pipe.
type FFmpegSource struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	path   string

	fps       float64
	total     int64
	width     int
	height    int
	frameSize int

	nextIndex int
	pending   []byte

	release func()
	closed  bool
	logger  *slog.Logger
}

// Open probes the source and starts the decode pipe. When the first frame
// cannot be decoded it performs exactly one remediation attempt through
// opts.Remediator and retries; a second failure is fatal and carries a manual
// transcode hint.
func Open(ctx context.Context, path string, opts OpenOptions) (*FFmpegSource, error) {
	logger := logging.WithComponent(opts.Logger, "framesource")

	src, firstErr := openOnce(ctx, path, opts, logger)
	if firstErr == nil {
		return src, nil
	}
	if opts.Remediator == nil {
		return nil, firstErr
	}

	logger.Warn("source unreadable, attempting one-shot remediation",
		slog.String("path", path),
		slog.Any("error", firstErr))

	remediated, err := opts.Remediator.Remediate(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is unreadable and remediation failed (%v); transcode manually: %s", ErrDecode, path, err, RemediationHint)
	}

	src, retryErr := openOnce(ctx, remediated.Path, opts, logger)
	if retryErr != nil {
		remediated.Release()
		return nil, fmt.Errorf("%w: %s stayed unreadable after remediation (%v); transcode manually: %s", ErrDecode, path, retryErr, RemediationHint)
	}
	src.release = remediated.Release
	logger.Info("remediation succeeded", slog.String("path", path))
	return src, nil
}

func openOnce(ctx context.Context, path string, opts OpenOptions, logger *slog.Logger) (*FFmpegSource, error) {
	probe, err := ffprobe.Inspect(ctx, opts.FFprobeBinary, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	width, height := probe.Dimensions()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %s has no decodable video stream", ErrDecode, path)
	}
	fps := probe.FPS()
	if opts.FPSOverride > 0 {
		fps = opts.FPSOverride
	}
	if fps <= 0 {
		return nil, fmt.Errorf("%w: %s reports no usable frame rate", ErrDecode, path)
	}

	binary := strings.TrimSpace(opts.FFmpegBinary)
	if binary == "" {
		binary = "ffmpeg"
	}
	total := probe.FrameCount()
	if total == 0 {
		// Some containers omit nb_frames; fall back to duration so progress
		// reporting still gets a total.
		if d := probe.DurationSeconds(); d > 0 {
			total = int64(d * fps)
		}
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-nostdin",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-",
	)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: open decode pipe: %v", ErrDecode, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: start decoder: %v", ErrDecode, err)
	}

	src := &FFmpegSource{
		cmd:       cmd,
		stdout:    stdout,
		stderr:    stderr,
		path:      path,
		fps:       fps,
		total:     total,
		width:     width,
		height:    height,
		frameSize: width * height * 3,
		logger:    logger,
	}

	// Pull the first frame eagerly so an undecodable source fails at open
	// time, where the remediation policy applies.
	first := make([]byte, src.frameSize)
	if _, err := io.ReadFull(stdout, first); err != nil {
		detail := strings.TrimSpace(stderr.String())
		src.Close()
		return nil, fmt.Errorf("%w: decode first frame of %s: %v: %s", ErrDecode, path, err, detail)
	}
	src.pending = first
	return src, nil
}

// Next returns the next frame in index order, or io.EOF once the decoder
// drains. A trailing partial frame is treated as end of stream.
func (s *FFmpegSource) Next() (*Frame, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: source is closed", ErrDecode)
	}
	var buf []byte
	if s.pending != nil {
		buf = s.pending
		s.pending = nil
	} else {
		buf = make([]byte, s.frameSize)
		if _, err := io.ReadFull(s.stdout, buf); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("%w: read frame %d: %v: %s", ErrDecode, s.nextIndex, err, strings.TrimSpace(s.stderr.String()))
		}
	}
	frame := NewFrame(s.nextIndex, s.fps, s.width, s.height, buf)
	s.nextIndex++
	return frame, nil
}

// Path returns the path the decoder is actually reading. After a successful
// remediation this is the remediated artifact, not the original input, so
// downstream re-encodes must use it too.
func (s *FFmpegSource) Path() string { return s.path }

// FPS returns the effective frame rate for the run.
func (s *FFmpegSource) FPS() float64 { return s.fps }

// TotalFrames returns the container-reported frame total, 0 when unknown.
func (s *FFmpegSource) TotalFrames() int64 { return s.total }

// Width returns the frame width in pixels.
func (s *FFmpegSource) Width() int { return s.width }

// Height returns the frame height in pixels.
func (s *FFmpegSource) Height() int { return s.height }

// Close stops the decoder and releases any remediation artifact. Safe to call
// more than once.
func (s *FFmpegSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.pending = nil
	_ = s.stdout.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
	if s.release != nil {
		s.release()
		s.release = nil
	}
	return nil
}
