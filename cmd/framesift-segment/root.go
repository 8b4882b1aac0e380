package main

import (
	"github.com/spf13/cobra"

	"framesift/internal/config"
)

func newRootCommand(verbose *bool) *cobra.Command {
	var (
		configPath string
		outputDir  string
		noProgress bool
		flagCfg    = config.Default()
	)

	rootCmd := &cobra.Command{
		Use:           "framesift-segment <video>",
		Short:         "Cut a capture into clips whose background motion stays inside the dynamic band",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			overlaySegmentFlags(cmd, &cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSegment(cmd.Context(), args[0], outputDir, cfg, noProgress)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file path")
	flags.StringVarP(&outputDir, "output", "o", "framesift-segments", "Output directory")
	flags.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	flags.BoolVar(verbose, "verbose", false, "Print the full error cause chain on failure")
	flags.Float64Var(&flagCfg.Segment.SceneChangeThreshold, "scene-threshold", flagCfg.Segment.SceneChangeThreshold, "Similarity below this is a scene cut")
	flags.Float64Var(&flagCfg.Segment.DynamicLow, "dynamic-low", flagCfg.Segment.DynamicLow, "Lower bound of the useful-motion similarity band")
	flags.Float64Var(&flagCfg.Segment.DynamicHigh, "dynamic-high", flagCfg.Segment.DynamicHigh, "Upper bound of the useful-motion similarity band")
	flags.Float64Var(&flagCfg.Segment.MinDurationSeconds, "min-duration", flagCfg.Segment.MinDurationSeconds, "Minimum accepted segment duration in seconds")
	flags.Float64Var(&flagCfg.Segment.MaxDurationSeconds, "max-duration", flagCfg.Segment.MaxDurationSeconds, "Forced split once a segment reaches this duration in seconds")
	flags.IntVar(&flagCfg.Segment.MinDynamicFrames, "min-dynamic-frames", flagCfg.Segment.MinDynamicFrames, "Candidates with fewer in-band frames are dropped silently")
	flags.IntVar(&flagCfg.Segment.MaxSegments, "max-segments", flagCfg.Segment.MaxSegments, "Stop after this many accepted segments (0 = unlimited)")
	flags.Float64Var(&flagCfg.Segment.FPSOverride, "fps-override", flagCfg.Segment.FPSOverride, "Override the source frame rate (0 = probe the source)")
	flags.StringVar(&flagCfg.Scan.LogLevel, "log-level", flagCfg.Scan.LogLevel, "Log level (debug|info|warn|error)")
	flags.StringVar(&flagCfg.Scan.LogFormat, "log-format", flagCfg.Scan.LogFormat, "Log format (console|json)")

	return rootCmd
}

// overlaySegmentFlags copies only the flags the user set over the file-loaded
// configuration, so the precedence is defaults < config file < flags.
func overlaySegmentFlags(cmd *cobra.Command, cfg *config.Config, flagCfg config.Config) {
	set := map[string]func(){
		"scene-threshold":    func() { cfg.Segment.SceneChangeThreshold = flagCfg.Segment.SceneChangeThreshold },
		"dynamic-low":        func() { cfg.Segment.DynamicLow = flagCfg.Segment.DynamicLow },
		"dynamic-high":       func() { cfg.Segment.DynamicHigh = flagCfg.Segment.DynamicHigh },
		"min-duration":       func() { cfg.Segment.MinDurationSeconds = flagCfg.Segment.MinDurationSeconds },
		"max-duration":       func() { cfg.Segment.MaxDurationSeconds = flagCfg.Segment.MaxDurationSeconds },
		"min-dynamic-frames": func() { cfg.Segment.MinDynamicFrames = flagCfg.Segment.MinDynamicFrames },
		"max-segments":       func() { cfg.Segment.MaxSegments = flagCfg.Segment.MaxSegments },
		"fps-override":       func() { cfg.Segment.FPSOverride = flagCfg.Segment.FPSOverride },
		"log-level":          func() { cfg.Scan.LogLevel = flagCfg.Scan.LogLevel },
		"log-format":         func() { cfg.Scan.LogFormat = flagCfg.Scan.LogFormat },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}
