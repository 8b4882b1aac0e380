package sink

import (
	"image"

	"golang.org/x/image/draw"
)

// fitDimensions resolves the target geometry. When only one dimension is
// given the other is derived from the source aspect ratio; when both are
// given they are used as-is.
func fitDimensions(srcW, srcH, targetW, targetH int) (int, int) {
	switch {
	case targetW > 0 && targetH > 0:
		return targetW, targetH
	case targetW > 0:
		h := srcH * targetW / srcW
		if h < 1 {
			h = 1
		}
		return targetW, h
	case targetH > 0:
		w := srcW * targetH / srcH
		if w < 1 {
			w = 1
		}
		return w, targetH
	default:
		return srcW, srcH
	}
}

// resizeBilinear scales src to w x h with bilinear interpolation.
func resizeBilinear(src *image.RGBA, w, h int) *image.RGBA {
	if w == src.Rect.Dx() && h == src.Rect.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst
}
