package prism

// Frame is a dense BGR byte-order raster block: the wire format for the
// forehead_roi and face_img arguments to Engine.ProcessFrame (see §6 of
// the engine contract). Pix is row-major, three bytes per pixel (B,G,R).
// A zero-value Frame (or one with H==0 or W==0) represents a missing or
// empty ROI.
type Frame struct {
	H, W int
	Pix  []byte
}

// Empty reports whether f carries no usable pixel data.
func (f Frame) Empty() bool {
	return f.H <= 0 || f.W <= 0 || len(f.Pix) < f.H*f.W*3
}

// At returns the BGR triple at row y, column x.
func (f Frame) At(y, x int) (b, g, r byte) {
	i := (y*f.W + x) * 3
	return f.Pix[i], f.Pix[i+1], f.Pix[i+2]
}

// NewFrame allocates a Frame of the given size with zeroed pixels.
func NewFrame(h, w int) Frame {
	return Frame{H: h, W: w, Pix: make([]byte, h*w*3)}
}
