package config

const (
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
	defaultProgressEvery = 30

	defaultSceneChangeThreshold = 0.3
	defaultDynamicLow           = 0.4
	defaultDynamicHigh          = 0.8
	defaultMinDurationSeconds   = 5.0
	defaultMaxDurationSeconds   = 60.0
	defaultMinDynamicFrames     = 10

	defaultSSIMLow           = 0.85
	defaultSSIMHigh          = 0.98
	defaultIntervalSeconds   = 5.0
	defaultMinIntervalFrames = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			LogLevel:      defaultLogLevel,
			LogFormat:     defaultLogFormat,
			ProgressEvery: defaultProgressEvery,
		},
		Segment: Segment{
			SceneChangeThreshold: defaultSceneChangeThreshold,
			DynamicLow:           defaultDynamicLow,
			DynamicHigh:          defaultDynamicHigh,
			MinDurationSeconds:   defaultMinDurationSeconds,
			MaxDurationSeconds:   defaultMaxDurationSeconds,
			MinDynamicFrames:     defaultMinDynamicFrames,
		},
		Sample: Sample{
			SceneChangeThreshold: defaultSceneChangeThreshold,
			SSIMLow:              defaultSSIMLow,
			SSIMHigh:             defaultSSIMHigh,
			IntervalSeconds:      defaultIntervalSeconds,
			MinIntervalFrames:    defaultMinIntervalFrames,
		},
	}
}
