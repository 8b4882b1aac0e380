package segmenter

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"framesift/internal/config"
	"framesift/internal/logging"
	"framesift/internal/scan"
)

// Policy is the segment decision state machine. It accumulates frames into
// candidate segments, closes the accumulation on scene cuts, forced splits,
// and end of stream, and classifies each closure as accepted or discarded.
// One instance serves exactly one run.
type Policy struct {
	cfg    config.Segment
	fps    float64
	logger *slog.Logger

	segStart      int
	dynamicFrames int
	window        []float64

	segments []VideoSegment
	stats    Stats
}

// NewPolicy builds a policy for one run over a stream at the given frame rate.
func NewPolicy(cfg config.Segment, fps float64, logger *slog.Logger) *Policy {
	return &Policy{
		cfg:    cfg,
		fps:    fps,
		logger: logging.WithComponent(logger, "segmenter"),
	}
}

// Bootstrap starts the first accumulation at the first frame.
func (p *Policy) Bootstrap(frameIdx int) scan.Action {
	p.stats.TotalFrames++
	p.segStart = frameIdx
	return scan.Action{Kind: scan.Skip}
}

// Decide consumes the similarity between the previous and current frame.
func (p *Policy) Decide(frameIdx int, score float64) scan.Action {
	p.stats.TotalFrames++

	if score < p.cfg.SceneChangeThreshold {
		// Scene cut. The boundary score measures dissimilarity across the cut
		// and belongs to neither side.
		p.stats.SceneChanges++
		p.close(frameIdx)
		return scan.Action{Kind: scan.CloseSegment, Reason: scan.ReasonSceneChange}
	}

	forced := false
	if elapsed := float64(frameIdx-p.segStart) / p.fps; elapsed >= p.cfg.MaxDurationSeconds {
		// Forced split, identical to a scene cut minus the score condition.
		// The current score seeds the next accumulation's window.
		p.close(frameIdx)
		forced = true
	}

	p.window = append(p.window, score)
	if score >= p.cfg.DynamicLow && score <= p.cfg.DynamicHigh {
		p.dynamicFrames++
	}

	if forced {
		return scan.Action{Kind: scan.CloseSegment}
	}
	return scan.Action{Kind: scan.Skip}
}

// Flush closes the remaining accumulation at end of stream.
func (p *Policy) Flush(lastIdx int) scan.Action {
	if p.Done() || lastIdx < 0 || lastIdx+1 <= p.segStart {
		return scan.Action{Kind: scan.Skip}
	}
	p.close(lastIdx + 1)
	return scan.Action{Kind: scan.CloseSegment}
}

// Done reports whether the accepted-segment cap has been reached.
func (p *Policy) Done() bool {
	return p.cfg.MaxSegments > 0 && len(p.segments) >= p.cfg.MaxSegments
}

// Segments returns the accepted segments, ordered by start frame and
// non-overlapping by construction.
func (p *Policy) Segments() []VideoSegment {
	return p.segments
}

// Stats returns the run counters.
func (p *Policy) Stats() Stats {
	return p.stats
}

// close evaluates the candidate [p.segStart, endIdx) and resets accumulation
// at endIdx. Candidates that never reached the dynamic-frame floor are
// dropped silently, before classification.
func (p *Policy) close(endIdx int) {
	start := p.segStart
	defer func() {
		p.segStart = endIdx
		p.dynamicFrames = 0
		p.window = p.window[:0]
	}()

	if p.dynamicFrames < p.cfg.MinDynamicFrames {
		return
	}

	duration := float64(endIdx-start) / p.fps
	avg := 0.0
	if len(p.window) > 0 {
		avg = stat.Mean(p.window, nil)
	}

	switch {
	case duration < p.cfg.MinDurationSeconds:
		p.stats.DiscardedShort++
		p.logger.Debug("discarded segment", slog.String("class", string(DiscardShort)),
			slog.Int("start", start), slog.Int("end", endIdx), slog.Float64("duration", duration))
	case avg > p.cfg.DynamicHigh:
		p.stats.DiscardedStatic++
		p.logger.Debug("discarded segment", slog.String("class", string(DiscardStatic)),
			slog.Int("start", start), slog.Int("end", endIdx), slog.Float64("avg_similarity", avg))
	case avg < p.cfg.DynamicLow:
		p.stats.DiscardedChaotic++
		p.logger.Debug("discarded segment", slog.String("class", string(DiscardChaotic)),
			slog.Int("start", start), slog.Int("end", endIdx), slog.Float64("avg_similarity", avg))
	default:
		seg := VideoSegment{
			StartFrame:    start,
			EndFrame:      endIdx,
			StartTime:     float64(start) / p.fps,
			EndTime:       float64(endIdx) / p.fps,
			Duration:      duration,
			AvgSimilarity: avg,
		}
		p.segments = append(p.segments, seg)
		p.stats.DynamicSegments++
		p.logger.Debug("accepted segment",
			slog.Int("start", start), slog.Int("end", endIdx),
			slog.Float64("duration", duration), slog.Float64("avg_similarity", avg))
	}
}
