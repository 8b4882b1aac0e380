package sampler

import (
	"log/slog"

	"framesift/internal/config"
	"framesift/internal/logging"
	"framesift/internal/scan"
)

// SampleRecord describes one kept frame.
type SampleRecord struct {
	FrameIndex int         `json:"frame_index"`
	Timestamp  float64     `json:"timestamp"`
	Reason     scan.Reason `json:"reason"`
}

// Stats are the run counters owned by one sampler policy instance.
type Stats struct {
	TotalFrames     int `json:"total_frames"`
	SampledFrames   int `json:"sampled_frames"`
	SceneChanges    int `json:"scene_changes"`
	SkippedIdle     int `json:"skipped_idle"`
	IntervalSamples int `json:"interval_samples"`
}

// Policy decides frame by frame whether to keep a representative sample. One
// instance serves exactly one run.
type Policy struct {
	cfg    config.Sample
	fps    float64
	logger *slog.Logger

	// lastSampled starts below zero so the first frame always clears the
	// interval arithmetic.
	lastSampled int

	records []SampleRecord
	stats   Stats
}

// NewPolicy builds a sampler policy for one run at the given frame rate.
func NewPolicy(cfg config.Sample, fps float64, logger *slog.Logger) *Policy {
	return &Policy{
		cfg:         cfg,
		fps:         fps,
		logger:      logging.WithComponent(logger, "sampler"),
		lastSampled: -1 - cfg.MinIntervalFrames,
	}
}

// Bootstrap unconditionally samples the first frame.
func (p *Policy) Bootstrap(frameIdx int) scan.Action {
	p.stats.TotalFrames++
	return p.sample(frameIdx, scan.ReasonInitial)
}

// Decide applies the sampling ladder: interval floor, scene change,
// significant change, idle skip, then the periodic interval fallback.
func (p *Policy) Decide(frameIdx int, score float64) scan.Action {
	p.stats.TotalFrames++

	sinceLast := frameIdx - p.lastSampled
	floored := sinceLast < p.cfg.MinIntervalFrames

	switch {
	case !floored && score < p.cfg.SceneChangeThreshold:
		p.stats.SceneChanges++
		return p.sample(frameIdx, scan.ReasonSceneChange)
	case !floored && score < p.cfg.SSIMLow:
		return p.sample(frameIdx, scan.ReasonSignificantChange)
	case score > p.cfg.SSIMHigh:
		// Idle frames count as idle whether or not the floor is active.
		p.stats.SkippedIdle++
		return scan.Action{Kind: scan.Skip}
	case !floored && float64(sinceLast) >= p.cfg.IntervalSeconds*p.fps:
		p.stats.IntervalSamples++
		return p.sample(frameIdx, scan.ReasonInterval)
	}
	return scan.Action{Kind: scan.Skip}
}

// Flush is a no-op; sampling holds no open accumulation.
func (p *Policy) Flush(lastIdx int) scan.Action {
	return scan.Action{Kind: scan.Skip}
}

// Done reports whether the sample cap has been reached.
func (p *Policy) Done() bool {
	return p.cfg.MaxFrames > 0 && len(p.records) >= p.cfg.MaxFrames
}

// Records returns the kept samples in frame order.
func (p *Policy) Records() []SampleRecord {
	return p.records
}

// Stats returns the run counters.
func (p *Policy) Stats() Stats {
	return p.stats
}

func (p *Policy) sample(frameIdx int, reason scan.Reason) scan.Action {
	p.lastSampled = frameIdx
	p.records = append(p.records, SampleRecord{
		FrameIndex: frameIdx,
		Timestamp:  float64(frameIdx) / p.fps,
		Reason:     reason,
	})
	p.stats.SampledFrames++
	p.logger.Debug("sampled frame", slog.Int("frame", frameIdx), slog.String("reason", string(reason)))
	return scan.Action{Kind: scan.Sample, Reason: reason}
}
