package sink

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"framesift/internal/fileutil"
	"framesift/internal/logging"
	"framesift/internal/segmenter"
	"framesift/internal/video"
)

const (
	// ImagesDirName holds sampled frames.
	ImagesDirName = "images"
	// ClipsDirName holds exported segment clips.
	ClipsDirName = "clips"

	lockFileName = ".framesift.lock"
)

// Sink persists run artifacts under one output directory. The directory is
// held under an advisory lock for the life of the run so two runs cannot
// interleave ordinal artifact names.
type Sink struct {
	dir    string
	lock   *flock.Flock
	logger *slog.Logger
}

// New prepares the output directory and acquires its lock. Directory
// creation is idempotent.
func New(dir string, logger *slog.Logger) (*Sink, error) {
	expanded, err := fileutil.ExpandHome(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrEncode, err)
	}
	if err := fileutil.EnsureDir(expanded); err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrEncode, err)
	}

	lock := flock.New(filepath.Join(expanded, lockFileName))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire output lock: %v", video.ErrEncode, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: output directory %s is in use by another run", video.ErrEncode, expanded)
	}

	return &Sink{
		dir:    expanded,
		lock:   lock,
		logger: logging.WithComponent(logger, "sink"),
	}, nil
}

// Dir returns the root output directory.
func (s *Sink) Dir() string { return s.dir }

// Close releases the output lock. Artifacts already written stay on disk.
func (s *Sink) Close() error {
	if s.lock == nil {
		return nil
	}
	err := s.lock.Unlock()
	s.lock = nil
	return err
}

// WriteImage persists a sampled frame as a PNG named by frame index and
// returns the relative artifact name. Resize semantics follow the run
// configuration: one target dimension preserves aspect ratio, two force
// exact geometry, zero means no resize.
func (s *Sink) WriteImage(frame *video.Frame, resizeWidth, resizeHeight int) (string, error) {
	if err := fileutil.EnsureDir(filepath.Join(s.dir, ImagesDirName)); err != nil {
		return "", fmt.Errorf("%w: %v", video.ErrEncode, err)
	}

	img := frameToImage(frame)
	if resizeWidth > 0 || resizeHeight > 0 {
		w, h := fitDimensions(frame.Width, frame.Height, resizeWidth, resizeHeight)
		img = resizeBilinear(img, w, h)
	}

	name := filepath.Join(ImagesDirName, fmt.Sprintf("frame_%06d.png", frame.Index))
	path := filepath.Join(s.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: create %s: %v", video.ErrEncode, path, err)
	}
	if err := png.Encode(file, img); err != nil {
		file.Close()
		return "", fmt.Errorf("%w: encode %s: %v", video.ErrEncode, path, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("%w: close %s: %v", video.ErrEncode, path, err)
	}
	return name, nil
}

// ExportClips re-encodes every accepted segment into an independently named
// clip, in order, using deterministic 1-based ordinals. The first write
// failure aborts the export.
func (s *Sink) ExportClips(ctx context.Context, source string, segments []segmenter.VideoSegment, fps float64, writer video.ClipWriter) ([]string, error) {
	if err := fileutil.EnsureDir(filepath.Join(s.dir, ClipsDirName)); err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrEncode, err)
	}

	names := make([]string, 0, len(segments))
	for i, seg := range segments {
		name := filepath.Join(ClipsDirName, fmt.Sprintf("clip_%04d.mp4", i+1))
		out := filepath.Join(s.dir, name)
		if err := writer.WriteClip(ctx, source, seg.StartTime, seg.FrameCount(), fps, out); err != nil {
			return names, err
		}
		names = append(names, name)
		s.logger.Debug("exported clip", slog.String("clip", name),
			slog.Int("start", seg.StartFrame), slog.Int("end", seg.EndFrame))
	}
	return names, nil
}

// WriteMetadata serializes the run sidecar next to the artifact directories.
func (s *Sink) WriteMetadata(name string, meta Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal metadata: %v", video.ErrEncode, err)
	}
	data = append(data, '\n')
	path := filepath.Join(s.dir, name)
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", video.ErrEncode, err)
	}
	return nil
}

// IsEncodeError reports whether err belongs to the writer failure taxonomy.
func IsEncodeError(err error) bool {
	return errors.Is(err, video.ErrEncode)
}

func frameToImage(frame *video.Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for i := 0; i < frame.Width*frame.Height; i++ {
		img.Pix[i*4] = frame.RGB[i*3]
		img.Pix[i*4+1] = frame.RGB[i*3+1]
		img.Pix[i*4+2] = frame.RGB[i*3+2]
		img.Pix[i*4+3] = 0xff
	}
	return img
}
