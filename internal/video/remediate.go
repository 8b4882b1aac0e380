package video

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// RemediationHint is the manual transcode command suggested when the
// one-shot remediation also fails.
const RemediationHint = "ffmpeg -i INPUT -c:v libx264 -pix_fmt yuv420p -an output.mp4"

// Remediated is the product of a successful remediation attempt. Release
// must be called exactly once, on every downstream path, to drop the
// temporary artifact.
type Remediated struct {
	Path    string
	Release func()
}

// Remediator converts an undecodable source into a canonical container so
// opening can be retried once. Implementations perform a single deterministic
// attempt; there is no retry loop.
type Remediator interface {
	Remediate(ctx context.Context, src string) (Remediated, error)
}

// FFmpegRemediator transcodes the source to H.264 in an MP4 container inside
// a scoped temporary directory.
type FFmpegRemediator struct {
	Binary string
}

// Remediate runs the transcode. The returned Release removes the temporary
// directory; on error nothing is left behind.
func (r FFmpegRemediator) Remediate(ctx context.Context, src string) (Remediated, error) {
	binary := strings.TrimSpace(r.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}

	dir, err := os.MkdirTemp("", "framesift-remux-*")
	if err != nil {
		return Remediated{}, fmt.Errorf("%w: create remediation dir: %v", ErrDecode, err)
	}
	out := filepath.Join(dir, "remediated.mp4")

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-y",
		"-i", src,
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-an",
		out,
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		return Remediated{}, fmt.Errorf("%w: remediation transcode failed: %v: %s", ErrDecode, err, strings.TrimSpace(string(output)))
	}

	return Remediated{
		Path:    out,
		Release: func() { os.RemoveAll(dir) },
	}, nil
}
