package video

// Frame is one decoded picture. The RGB buffer is owned by the frame; the
// luminance plane is derived on first use and cached, and is only consulted
// by the similarity engine.
type Frame struct {
	Index     int
	Timestamp float64
	Width     int
	Height    int
	RGB       []byte

	lum []byte
}

// NewFrame wraps an rgb24 buffer. The buffer must hold width*height*3 bytes
// and ownership transfers to the frame.
func NewFrame(index int, fps float64, width, height int, rgb []byte) *Frame {
	ts := 0.0
	if fps > 0 {
		ts = float64(index) / fps
	}
	return &Frame{
		Index:     index,
		Timestamp: ts,
		Width:     width,
		Height:    height,
		RGB:       rgb,
	}
}

// Luminance returns the single-channel view of the frame using BT.601
// integer weights. The plane is computed once and cached.
func (f *Frame) Luminance() []byte {
	if f.lum != nil {
		return f.lum
	}
	pixels := f.Width * f.Height
	lum := make([]byte, pixels)
	for i := 0; i < pixels; i++ {
		r := uint32(f.RGB[i*3])
		g := uint32(f.RGB[i*3+1])
		b := uint32(f.RGB[i*3+2])
		// Y = 0.299 R + 0.587 G + 0.114 B, in 16.16 fixed point.
		lum[i] = byte((19595*r + 38470*g + 7471*b) >> 16)
	}
	f.lum = lum
	return lum
}
