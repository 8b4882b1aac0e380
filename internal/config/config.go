package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"framesift/internal/fileutil"
)

// ErrInvalid tags configuration validation failures so callers can classify
// them before any scanning starts.
var ErrInvalid = errors.New("configuration error")

// Scan contains settings shared by the segmenter and the sampler.
type Scan struct {
	FFmpegBinary  string `toml:"ffmpeg_binary" json:"ffmpeg_binary"`
	FFprobeBinary string `toml:"ffprobe_binary" json:"ffprobe_binary"`
	LogLevel      string `toml:"log_level" json:"log_level"`
	LogFormat     string `toml:"log_format" json:"log_format"`
	ProgressEvery int    `toml:"progress_every" json:"progress_every"`
}

// Segment contains the segmenter decision thresholds. The json tags shape the
// config block of the run metadata sidecar.
type Segment struct {
	SceneChangeThreshold float64 `toml:"scene_change_threshold" json:"scene_change_threshold"`
	DynamicLow           float64 `toml:"dynamic_low" json:"dynamic_low"`
	DynamicHigh          float64 `toml:"dynamic_high" json:"dynamic_high"`
	MinDurationSeconds   float64 `toml:"min_duration_seconds" json:"min_duration_seconds"`
	MaxDurationSeconds   float64 `toml:"max_duration_seconds" json:"max_duration_seconds"`
	MinDynamicFrames     int     `toml:"min_dynamic_frames" json:"min_dynamic_frames"`
	MaxSegments          int     `toml:"max_segments" json:"max_segments"`
	FPSOverride          float64 `toml:"fps_override" json:"fps_override"`
}

// Sample contains the sampler decision thresholds.
type Sample struct {
	SceneChangeThreshold float64 `toml:"scene_change_threshold" json:"scene_change_threshold"`
	SSIMLow              float64 `toml:"ssim_low" json:"ssim_low"`
	SSIMHigh             float64 `toml:"ssim_high" json:"ssim_high"`
	IntervalSeconds      float64 `toml:"interval_seconds" json:"interval_seconds"`
	MinIntervalFrames    int     `toml:"min_interval_frames" json:"min_interval_frames"`
	MaxFrames            int     `toml:"max_frames" json:"max_frames"`
	ResizeWidth          int     `toml:"resize_width" json:"resize_width"`
	ResizeHeight         int     `toml:"resize_height" json:"resize_height"`
}

// Config is the root configuration for both framesift tools.
type Config struct {
	Scan    Scan    `toml:"scan"`
	Segment Segment `toml:"segment"`
	Sample  Sample  `toml:"sample"`
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path loads pure defaults; a missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	expanded, err := fileutil.ExpandHome(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: config file %s does not exist", ErrInvalid, expanded)
		}
		return Config{}, fmt.Errorf("%w: read config %s: %v", ErrInvalid, expanded, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: parse config %s: %v", ErrInvalid, expanded, err)
	}
	return cfg, nil
}
