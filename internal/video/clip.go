package video

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ClipWriter re-encodes frame ranges of a source into standalone clips.
type ClipWriter struct {
	Binary string
}

// WriteClip encodes frameCount frames starting at startTime seconds into an
// H.264 MP4 at the requested frame rate. Failures wrap ErrEncode and are
// fatal to the run.
func (w ClipWriter) WriteClip(ctx context.Context, src string, startTime float64, frameCount int, fps float64, out string) error {
	binary := strings.TrimSpace(w.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if frameCount <= 0 {
		return fmt.Errorf("%w: clip %s would contain no frames", ErrEncode, out)
	}
	if fps <= 0 {
		return fmt.Errorf("%w: clip %s requested non-positive frame rate", ErrEncode, out)
	}

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-y",
		"-ss", strconv.FormatFloat(startTime, 'f', 6, 64),
		"-i", src,
		"-frames:v", strconv.Itoa(frameCount),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-an",
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%w: encode clip %s: %v: %s", ErrEncode, out, err, strings.TrimSpace(string(output)))
	}
	return nil
}
