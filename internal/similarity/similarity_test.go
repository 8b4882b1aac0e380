package similarity_test

import (
	"math"
	"testing"

	"framesift/internal/similarity"
	"framesift/internal/video"
)

func gradientFrame(index, width, height int) *video.Frame {
	rgb := make([]byte, width*height*3)
	for i := 0; i < width*height; i++ {
		v := byte((i * 7) % 256)
		rgb[i*3] = v
		rgb[i*3+1] = v / 2
		rgb[i*3+2] = 255 - v
	}
	return video.NewFrame(index, 30, width, height, rgb)
}

func TestSelfComparisonScoresOne(t *testing.T) {
	frame := gradientFrame(0, 16, 16)
	score, err := similarity.SSIM{}.Compute(frame, frame)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("self comparison should score 1.0, got %.12f", score)
	}
}

func TestIdenticalBuffersScoreOne(t *testing.T) {
	a := gradientFrame(0, 16, 16)
	b := gradientFrame(1, 16, 16)
	score, err := similarity.SSIM{}.Compute(a, b)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("identical content should score 1.0, got %.12f", score)
	}
}

func TestDissimilarFramesScoreBelowOne(t *testing.T) {
	a := gradientFrame(0, 16, 16)

	rgb := make([]byte, 16*16*3)
	for i := range rgb {
		rgb[i] = byte(255 - a.RGB[i])
	}
	b := video.NewFrame(1, 30, 16, 16, rgb)

	score, err := similarity.SSIM{}.Compute(a, b)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if score >= 1.0 || score < 0 {
		t.Fatalf("expected score in [0,1), got %f", score)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	a := gradientFrame(0, 32, 18)
	b := gradientFrame(1, 32, 18)
	b.RGB[40] = 200
	b.RGB[41] = 10

	first, err := similarity.SSIM{}.Compute(a, b)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	second, err := similarity.SSIM{}.Compute(a, b)
	if err != nil {
		t.Fatalf("Compute returned error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated calls disagree: %.17f vs %.17f", first, second)
	}
}

func TestDimensionMismatchRejected(t *testing.T) {
	a := gradientFrame(0, 16, 16)
	b := gradientFrame(1, 8, 8)
	if _, err := (similarity.SSIM{}).Compute(a, b); err == nil {
		t.Fatal("expected dimension mismatch error")
	}
}

func TestNilFrameRejected(t *testing.T) {
	if _, err := (similarity.SSIM{}).Compute(nil, gradientFrame(0, 4, 4)); err == nil {
		t.Fatal("expected error for nil frame")
	}
}
