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
	"framesift/internal/scan"
	"framesift/internal/segmenter"
	"framesift/internal/similarity"
	"framesift/internal/sink"
	"framesift/internal/video"
)

func runSegment(ctx context.Context, input, outputDir string, cfg config.Config, noProgress bool) error {
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
		FPSOverride:   cfg.Segment.FPSOverride,
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

	policy := segmenter.NewPolicy(cfg.Segment, src.FPS(), logger)
	hooks := scan.Hooks{ProgressEvery: cfg.Scan.ProgressEvery}
	if !noProgress {
		bar := newProgressBar(src.TotalFrames(), "segmenting")
		hooks.OnProgress = func(done int, total int64) { _ = bar.Set(done) }
		defer bar.Finish()
	}

	result, err := scan.Run(ctx, src, similarity.SSIM{}, policy, hooks, logger)
	if err != nil {
		return err
	}

	segments := policy.Segments()
	// Cut clips from the path the scan actually decoded, which is the
	// remediated artifact when the fallback fired. src stays open until the
	// deferred Close, so the artifact outlives the export.
	clips, err := out.ExportClips(ctx, src.Path(), segments, src.FPS(), video.ClipWriter{Binary: cfg.Scan.FFmpegBinary})
	if err != nil {
		return err
	}

	meta := sink.Metadata{
		Source:   input,
		Tool:     "framesift-segment",
		FPS:      src.FPS(),
		Config:   cfg.Segment,
		Stats:    policy.Stats(),
		Segments: segments,
		Clips:    clips,
	}
	meta.Stamp(nil, nil)
	if err := out.WriteMetadata(sink.SegmentMetadataName, meta); err != nil {
		return err
	}

	stats := policy.Stats()
	logger.Info("run complete",
		slog.Int("frames", result.TotalFrames),
		slog.Int("segments", stats.DynamicSegments),
		slog.Int("scene_changes", stats.SceneChanges),
		slog.Int("discarded_short", stats.DiscardedShort),
		slog.Int("discarded_static", stats.DiscardedStatic),
		slog.Int("discarded_chaotic", stats.DiscardedChaotic),
		slog.String("output", out.Dir()))

	if len(segments) > 0 {
		fmt.Println(report.SegmentTable(segments))
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
