package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"framesift/internal/config"
	"framesift/internal/deps"
	"framesift/internal/logging"
	"framesift/internal/report"
	"framesift/internal/sampler"
	"framesift/internal/scan"
	"framesift/internal/similarity"
	"framesift/internal/sink"
	"framesift/internal/video"
)

func runSample(ctx context.Context, input, outputDir string, cfg config.Config, noProgress bool) error {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Scan.LogLevel,
		Format: cfg.Scan.LogFormat,
		Writer: os.Stderr,
	})
	if err != nil {
		return err
	}

	if missing := deps.FirstMissing(deps.CheckBinaries(deps.Decode(cfg.Scan.FFmpegBinary, cfg.Scan.FFprobeBinary))); missing != nil {
		return fmt.Errorf("missing dependency %s: %s (%s)", missing.Name, missing.Detail, missing.Description)
	}

	out, err := sink.New(outputDir, logger)
	if err != nil {
		return err
	}
	defer out.Close()

	src, err := video.Open(ctx, input, video.OpenOptions{
		FFmpegBinary:  cfg.Scan.FFmpegBinary,
		FFprobeBinary: cfg.Scan.FFprobeBinary,
		Remediator:    video.FFmpegRemediator{Binary: cfg.Scan.FFmpegBinary},
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	logger.Info("scanning source",
		slog.String("source", input),
		slog.Float64("fps", src.FPS()),
		slog.Int("width", src.Width()),
		slog.Int("height", src.Height()),
		slog.Int64("total_frames", src.TotalFrames()))

	policy := sampler.NewPolicy(cfg.Sample, src.FPS(), logger)

	var images []string
	hooks := scan.Hooks{
		ProgressEvery: cfg.Scan.ProgressEvery,
		OnSample: func(frame *video.Frame, reason scan.Reason) error {
			name, err := out.WriteImage(frame, cfg.Sample.ResizeWidth, cfg.Sample.ResizeHeight)
			if err != nil {
				return err
			}
			images = append(images, name)
			return nil
		},
	}
	if !noProgress {
		bar := newProgressBar(src.TotalFrames(), "sampling")
		hooks.OnProgress = func(done int, total int64) { _ = bar.Set(done) }
		defer bar.Finish()
	}

	result, err := scan.Run(ctx, src, similarity.SSIM{}, policy, hooks, logger)
	if err != nil {
		return err
	}

	records := policy.Records()
	meta := sink.Metadata{
		Source:  input,
		Tool:    "framesift-sample",
		FPS:     src.FPS(),
		Config:  cfg.Sample,
		Stats:   policy.Stats(),
		Samples: records,
		Images:  images,
	}
	meta.Stamp(nil, nil)
	if err := out.WriteMetadata(sink.SampleMetadataName, meta); err != nil {
		return err
	}

	stats := policy.Stats()
	logger.Info("run complete",
		slog.Int("frames", result.TotalFrames),
		slog.Int("sampled", stats.SampledFrames),
		slog.Int("scene_changes", stats.SceneChanges),
		slog.Int("skipped_idle", stats.SkippedIdle),
		slog.Int("interval_samples", stats.IntervalSamples),
		slog.String("output", out.Dir()))

	if len(records) > 0 {
		fmt.Println(report.SampleSummaryTable(records))
	}
	return nil
}

func newProgressBar(total int64, description string) *progressbar.ProgressBar {
	if total <= 0 {
		total = -1
	}
	return progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}
