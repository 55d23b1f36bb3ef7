package media

import "errors"

var ErrBufferReleased = errors.New("frame buffer: released")

// FrameBuffer is the single reusable RGBA pixel allocation of a playback
// session. Every read overwrites it in place, so its contents are valid only
// until the next read.
type FrameBuffer struct {
	pix    []byte
	width  int
	height int

	pts   float64
	valid bool
}

func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		pix:    make([]byte, width*height*4),
		width:  width,
		height: height,
	}
}

// Read fills the buffer with the next frame of r.
func (fb *FrameBuffer) Read(r FrameSource) error {
	if fb.pix == nil {
		return ErrBufferReleased
	}

	fb.valid = false
	pts, err := r.ReadFrame(fb.pix)
	if err != nil {
		return err
	}

	fb.pts = pts
	fb.valid = true
	return nil
}

// Frame returns the frame currently held. ok is false when no successful read
// happened since the last Invalidate or the buffer was released.
func (fb *FrameBuffer) Frame() (VideoFrame, bool) {
	if !fb.valid {
		return VideoFrame{}, false
	}
	return VideoFrame{
		PTS:    fb.pts,
		Pixels: fb.pix,
		Width:  fb.width,
		Height: fb.height,
	}, true
}

func (fb *FrameBuffer) Invalidate() {
	fb.valid = false
}

// Release drops the allocation. It is safe to call more than once.
func (fb *FrameBuffer) Release() {
	fb.pix = nil
	fb.valid = false
}

func (fb *FrameBuffer) Released() bool {
	return fb.pix == nil
}
