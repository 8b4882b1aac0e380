package similarity

import (
	"fmt"

	"framesift/internal/video"
)

// Engine computes a bounded similarity score between two equally sized
// frames. Implementations are stateless: calls are deterministic and
// idempotent for identical inputs.
type Engine interface {
	// Compute returns a score in [0,1]; 1.0 means the frames are identical.
	Compute(a, b *video.Frame) (float64, error)
}

const (
	// Standard SSIM stabilizers for 8-bit dynamic range.
	c1 = (0.01 * 255) * (0.01 * 255)
	c2 = (0.03 * 255) * (0.03 * 255)
)

// SSIM scores frames with a global structural-similarity statistic over
// their luminance planes. One linear pass over the pixels, no retained state.
type SSIM struct{}

// Compute implements Engine. The frames must share dimensions; a constant
// geometry source guarantees that during a run.
func (SSIM) Compute(a, b *video.Frame) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("similarity: nil frame")
	}
	if a.Width != b.Width || a.Height != b.Height {
		return 0, fmt.Errorf("similarity: dimension mismatch %dx%d vs %dx%d", a.Width, a.Height, b.Width, b.Height)
	}
	pixels := a.Width * a.Height
	if pixels == 0 {
		return 0, fmt.Errorf("similarity: empty frame")
	}

	la := a.Luminance()
	lb := b.Luminance()

	var sumA, sumB, sumAA, sumBB, sumAB uint64
	for i := 0; i < pixels; i++ {
		pa := uint64(la[i])
		pb := uint64(lb[i])
		sumA += pa
		sumB += pb
		sumAA += pa * pa
		sumBB += pb * pb
		sumAB += pa * pb
	}

	n := float64(pixels)
	meanA := float64(sumA) / n
	meanB := float64(sumB) / n
	varA := float64(sumAA)/n - meanA*meanA
	varB := float64(sumBB)/n - meanB*meanB
	cov := float64(sumAB)/n - meanA*meanB

	score := ((2*meanA*meanB + c1) * (2*cov + c2)) /
		((meanA*meanA + meanB*meanB + c1) * (varA + varB + c2))

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, nil
}
