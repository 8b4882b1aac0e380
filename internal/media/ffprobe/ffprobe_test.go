package ffprobe_test

import (
	"math"
	"testing"

	"framesift/internal/media/ffprobe"
)

func videoResult(stream ffprobe.Stream) ffprobe.Result {
	stream.CodecType = "video"
	return ffprobe.Result{
		Streams: []ffprobe.Stream{
			{Index: 0, CodecType: "audio", CodecName: "aac"},
			stream,
		},
	}
}

func TestFPSParsesRationalRates(t *testing.T) {
	cases := []struct {
		name string
		avg  string
		r    string
		want float64
	}{
		{"ntsc rational", "30000/1001", "30000/1001", 30000.0 / 1001.0},
		{"integer rate", "25/1", "25/1", 25},
		{"avg missing falls back to nominal", "0/0", "24/1", 24},
		{"plain decimal", "29.97", "", 29.97},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := videoResult(ffprobe.Stream{AvgFrameRate: tc.avg, RFrameRate: tc.r})
			if got := result.FPS(); math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("FPS() = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestFrameCountTreatsMissingAsUnknown(t *testing.T) {
	result := videoResult(ffprobe.Stream{NBFrames: ""})
	if got := result.FrameCount(); got != 0 {
		t.Fatalf("expected unknown frame count, got %d", got)
	}
	result = videoResult(ffprobe.Stream{NBFrames: "8134"})
	if got := result.FrameCount(); got != 8134 {
		t.Fatalf("expected 8134 frames, got %d", got)
	}
}

func TestDimensionsComeFromFirstVideoStream(t *testing.T) {
	result := videoResult(ffprobe.Stream{Width: 1920, Height: 1080})
	w, h := result.Dimensions()
	if w != 1920 || h != 1080 {
		t.Fatalf("unexpected dimensions %dx%d", w, h)
	}
}

func TestNoVideoStream(t *testing.T) {
	result := ffprobe.Result{Streams: []ffprobe.Stream{{CodecType: "audio"}}}
	if result.FirstVideoStream() != nil {
		t.Fatal("expected no video stream")
	}
	if result.FPS() != 0 {
		t.Fatal("expected zero FPS without a video stream")
	}
	w, h := result.Dimensions()
	if w != 0 || h != 0 {
		t.Fatal("expected zero dimensions without a video stream")
	}
}

func TestDurationSeconds(t *testing.T) {
	result := ffprobe.Result{Format: ffprobe.Format{Duration: "12.480000"}}
	if got := result.DurationSeconds(); math.Abs(got-12.48) > 1e-9 {
		t.Fatalf("DurationSeconds() = %f", got)
	}
}
