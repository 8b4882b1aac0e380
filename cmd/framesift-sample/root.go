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
		Use:           "framesift-sample <video>",
		Short:         "Walk a video and keep individual informative frames",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			overlaySampleFlags(cmd, &cfg, flagCfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSample(cmd.Context(), args[0], outputDir, cfg, noProgress)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "Configuration file path")
	flags.StringVarP(&outputDir, "output", "o", "framesift-samples", "Output directory")
	flags.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")
	flags.BoolVar(verbose, "verbose", false, "Print the full error cause chain on failure")
	flags.Float64Var(&flagCfg.Sample.SceneChangeThreshold, "scene-threshold", flagCfg.Sample.SceneChangeThreshold, "Similarity below this is a scene cut")
	flags.Float64Var(&flagCfg.Sample.SSIMLow, "ssim-low", flagCfg.Sample.SSIMLow, "Similarity below this is a significant change")
	flags.Float64Var(&flagCfg.Sample.SSIMHigh, "ssim-high", flagCfg.Sample.SSIMHigh, "Similarity above this is idle and never sampled")
	flags.Float64Var(&flagCfg.Sample.IntervalSeconds, "interval", flagCfg.Sample.IntervalSeconds, "Fallback sampling interval in seconds for the mid band")
	flags.IntVar(&flagCfg.Sample.MinIntervalFrames, "min-interval-frames", flagCfg.Sample.MinIntervalFrames, "Hard floor between consecutive samples in frames")
	flags.IntVar(&flagCfg.Sample.MaxFrames, "max-frames", flagCfg.Sample.MaxFrames, "Stop after this many samples (0 = unlimited)")
	flags.IntVar(&flagCfg.Sample.ResizeWidth, "resize-width", flagCfg.Sample.ResizeWidth, "Target image width; aspect preserved when height is unset")
	flags.IntVar(&flagCfg.Sample.ResizeHeight, "resize-height", flagCfg.Sample.ResizeHeight, "Target image height; aspect preserved when width is unset")
	flags.StringVar(&flagCfg.Scan.LogLevel, "log-level", flagCfg.Scan.LogLevel, "Log level (debug|info|warn|error)")
	flags.StringVar(&flagCfg.Scan.LogFormat, "log-format", flagCfg.Scan.LogFormat, "Log format (console|json)")

	return rootCmd
}

// overlaySampleFlags copies only the flags the user set over the file-loaded
// configuration, so the precedence is defaults < config file < flags.
func overlaySampleFlags(cmd *cobra.Command, cfg *config.Config, flagCfg config.Config) {
	set := map[string]func(){
		"scene-threshold":     func() { cfg.Sample.SceneChangeThreshold = flagCfg.Sample.SceneChangeThreshold },
		"ssim-low":            func() { cfg.Sample.SSIMLow = flagCfg.Sample.SSIMLow },
		"ssim-high":           func() { cfg.Sample.SSIMHigh = flagCfg.Sample.SSIMHigh },
		"interval":            func() { cfg.Sample.IntervalSeconds = flagCfg.Sample.IntervalSeconds },
		"min-interval-frames": func() { cfg.Sample.MinIntervalFrames = flagCfg.Sample.MinIntervalFrames },
		"max-frames":          func() { cfg.Sample.MaxFrames = flagCfg.Sample.MaxFrames },
		"resize-width":        func() { cfg.Sample.ResizeWidth = flagCfg.Sample.ResizeWidth },
		"resize-height":       func() { cfg.Sample.ResizeHeight = flagCfg.Sample.ResizeHeight },
		"log-level":           func() { cfg.Scan.LogLevel = flagCfg.Scan.LogLevel },
		"log-format":          func() { cfg.Scan.LogFormat = flagCfg.Scan.LogFormat },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}
