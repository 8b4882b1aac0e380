package config

import (
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Threshold ordering is checked
// eagerly so a misconfigured run fails before the first frame is decoded.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.Segment.Validate(); err != nil {
		return err
	}
	if err := c.Sample.Validate(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScan() error {
	if strings.TrimSpace(c.Scan.FFmpegBinary) == "" {
		return fmt.Errorf("%w: scan.ffmpeg_binary must be set", ErrInvalid)
	}
	if strings.TrimSpace(c.Scan.FFprobeBinary) == "" {
		return fmt.Errorf("%w: scan.ffprobe_binary must be set", ErrInvalid)
	}
	if c.Scan.ProgressEvery <= 0 {
		return fmt.Errorf("%w: scan.progress_every must be positive", ErrInvalid)
	}
	return nil
}

// Validate checks the segmenter thresholds.
func (s Segment) Validate() error {
	if err := checkUnitRange("segment.scene_change_threshold", s.SceneChangeThreshold); err != nil {
		return err
	}
	if err := checkUnitRange("segment.dynamic_low", s.DynamicLow); err != nil {
		return err
	}
	if err := checkUnitRange("segment.dynamic_high", s.DynamicHigh); err != nil {
		return err
	}
	if s.DynamicLow >= s.DynamicHigh {
		return fmt.Errorf("%w: segment.dynamic_low (%.3f) must be below segment.dynamic_high (%.3f)", ErrInvalid, s.DynamicLow, s.DynamicHigh)
	}
	if s.SceneChangeThreshold > s.DynamicLow {
		return fmt.Errorf("%w: segment.scene_change_threshold (%.3f) must not exceed segment.dynamic_low (%.3f)", ErrInvalid, s.SceneChangeThreshold, s.DynamicLow)
	}
	if s.MinDurationSeconds <= 0 {
		return fmt.Errorf("%w: segment.min_duration_seconds must be positive", ErrInvalid)
	}
	if s.MaxDurationSeconds <= s.MinDurationSeconds {
		return fmt.Errorf("%w: segment.max_duration_seconds (%.1f) must exceed segment.min_duration_seconds (%.1f)", ErrInvalid, s.MaxDurationSeconds, s.MinDurationSeconds)
	}
	if s.MinDynamicFrames < 1 {
		return fmt.Errorf("%w: segment.min_dynamic_frames must be at least 1", ErrInvalid)
	}
	if s.MaxSegments < 0 {
		return fmt.Errorf("%w: segment.max_segments must not be negative", ErrInvalid)
	}
	if s.FPSOverride < 0 {
		return fmt.Errorf("%w: segment.fps_override must not be negative", ErrInvalid)
	}
	return nil
}

// Validate checks the sampler thresholds.
func (s Sample) Validate() error {
	if err := checkUnitRange("sample.scene_change_threshold", s.SceneChangeThreshold); err != nil {
		return err
	}
	if err := checkUnitRange("sample.ssim_low", s.SSIMLow); err != nil {
		return err
	}
	if err := checkUnitRange("sample.ssim_high", s.SSIMHigh); err != nil {
		return err
	}
	if s.SSIMLow >= s.SSIMHigh {
		return fmt.Errorf("%w: sample.ssim_low (%.3f) must be below sample.ssim_high (%.3f)", ErrInvalid, s.SSIMLow, s.SSIMHigh)
	}
	if s.SceneChangeThreshold > s.SSIMLow {
		return fmt.Errorf("%w: sample.scene_change_threshold (%.3f) must not exceed sample.ssim_low (%.3f)", ErrInvalid, s.SceneChangeThreshold, s.SSIMLow)
	}
	if s.IntervalSeconds <= 0 {
		return fmt.Errorf("%w: sample.interval_seconds must be positive", ErrInvalid)
	}
	if s.MinIntervalFrames < 0 {
		return fmt.Errorf("%w: sample.min_interval_frames must not be negative", ErrInvalid)
	}
	if s.MaxFrames < 0 {
		return fmt.Errorf("%w: sample.max_frames must not be negative", ErrInvalid)
	}
	if s.ResizeWidth < 0 || s.ResizeHeight < 0 {
		return fmt.Errorf("%w: sample resize dimensions must not be negative", ErrInvalid)
	}
	return nil
}

func checkUnitRange(name string, value float64) error {
	if value < 0 || value > 1 {
		return fmt.Errorf("%w: %s must be between 0 and 1, got %.3f", ErrInvalid, name, value)
	}
	return nil
}
