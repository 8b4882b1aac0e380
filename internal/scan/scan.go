package scan

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"framesift/internal/logging"
	"framesift/internal/similarity"
	"framesift/internal/video"
)

// Reason explains why a sample decision fired.
type Reason string

const (
	ReasonInitial           Reason = "initial"
	ReasonSceneChange       Reason = "scene_change"
	ReasonSignificantChange Reason = "significant_change"
	ReasonInterval          Reason = "interval"
)

// Kind enumerates the decisions a policy can make for one frame.
type Kind int

const (
	// Skip takes no action for the frame.
	Skip Kind = iota
	// Sample persists the current frame.
	Sample
	// CloseSegment ends the policy's current accumulation. The policy records
	// the closure itself; the runner only observes the transition.
	CloseSegment
)

// Action is the outcome of one policy decision.
type Action struct {
	Kind   Kind
	Reason Reason
}

// Policy converts the per-frame similarity stream into actions. Policies own
// all mutable run state, including their stats; one instance serves exactly
// one run.
type Policy interface {
	// Bootstrap handles the first frame, which has no predecessor.
	Bootstrap(frameIdx int) Action
	// Decide consumes the similarity between the previous and current frame.
	Decide(frameIdx int, score float64) Action
	// Flush closes out accumulation at end of stream. lastIdx is the final
	// frame index observed, or -1 for an empty stream.
	Flush(lastIdx int) Action
	// Done reports whether an output cap has been reached; the runner stops
	// decoding once it returns true.
	Done() bool
}

// Hooks receive the side effects of policy decisions. OnProgress is
// observability only and must not touch policy state.
type Hooks struct {
	OnSample      func(frame *video.Frame, reason Reason) error
	OnProgress    func(done int, total int64)
	ProgressEvery int
}

// Result summarizes one completed scan.
type Result struct {
	TotalFrames int
	FPS         float64
}

// Run drives one single-threaded pass: decode, score against the previous
// frame, apply the policy. Exactly one previous frame is retained; its buffer
// is released when the current frame supersedes it.
func Run(ctx context.Context, src video.Source, engine similarity.Engine, policy Policy, hooks Hooks, logger *slog.Logger) (Result, error) {
	logger = logging.WithComponent(logger, "scan")

	progressEvery := hooks.ProgressEvery
	if progressEvery <= 0 {
		progressEvery = 30
	}

	var prev *video.Frame
	total := 0
	lastIdx := -1

	for !policy.Done() {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		frame, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, err
		}
		total++
		lastIdx = frame.Index

		var action Action
		if prev == nil {
			action = policy.Bootstrap(frame.Index)
		} else {
			score, err := engine.Compute(prev, frame)
			if err != nil {
				return Result{}, fmt.Errorf("score frame %d: %w", frame.Index, err)
			}
			action = policy.Decide(frame.Index, score)
		}

		if action.Kind == Sample && hooks.OnSample != nil {
			if err := hooks.OnSample(frame, action.Reason); err != nil {
				return Result{}, err
			}
		}

		prev = frame

		if hooks.OnProgress != nil && total%progressEvery == 0 {
			hooks.OnProgress(total, src.TotalFrames())
		}
	}

	policy.Flush(lastIdx)
	if hooks.OnProgress != nil {
		hooks.OnProgress(total, src.TotalFrames())
	}

	logger.Debug("scan complete", slog.Int("frames", total), slog.Float64("fps", src.FPS()))
	return Result{TotalFrames: total, FPS: src.FPS()}, nil
}
