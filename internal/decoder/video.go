package decoder

import (
	"errors"
	"fmt"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/asticode/go-astiav"
	"github.com/samber/mo"
)

// VideoReader decodes the first video stream of a file and converts every
// frame to RGBA at the stream's coded size.
type VideoReader struct {
	in *input

	width  int
	height int

	scaler    *astiav.SoftwareScaleContext
	srcFormat astiav.PixelFormat
	srcWidth  int
	srcHeight int
	rgba      *astiav.Frame

	// frameDuration advances cursor for frames without pts.
	frameDuration float64
	cursor        float64
}

func NewVideoReader(path string) (*VideoReader, error) {
	in, err := openInput(path, astiav.MediaTypeVideo)
	if err != nil {
		return nil, err
	}

	r := &VideoReader{
		in:     in,
		width:  in.codecCtx.Width(),
		height: in.codecCtx.Height(),
		rgba:   astiav.AllocFrame(),
	}
	in.closer.Add(r.rgba.Free)
	in.closer.Add(func() {
		if r.scaler != nil {
			r.scaler.Free()
		}
	})

	if r.width <= 0 || r.height <= 0 {
		in.close()
		return nil, errors.Join(media.ErrOpen, fmt.Errorf("video reader: invalid size %dx%d", r.width, r.height))
	}

	if fps := in.stream.AvgFrameRate().Float64(); fps > 0 {
		r.frameDuration = 1 / fps
	}

	r.rgba.SetWidth(r.width)
	r.rgba.SetHeight(r.height)
	r.rgba.SetPixelFormat(astiav.PixelFormatRgba)
	if err := r.rgba.AllocBuffer(1); err != nil {
		in.close()
		return nil, errors.Join(media.ErrOpen, fmt.Errorf("video reader: allocating rgba frame buffer failed: %w", err))
	}

	in.log.Infof("video %s, %dx%d", in.codec.Name(), r.width, r.height)

	return r, nil
}

// ReadFrame decodes the next frame into dst, which must hold
// Width()*Height()*4 bytes, and returns its pts in seconds.
func (r *VideoReader) ReadFrame(dst []byte) (float64, error) {
	f, err := r.in.next()
	if err != nil {
		return 0, err
	}
	defer f.Unref()

	pts := r.in.seconds(f.Pts(), r.cursor)
	r.cursor = pts + r.frameDuration

	if err := r.convert(f); err != nil {
		return 0, err
	}

	b, err := r.rgba.Data().Bytes(1)
	if err != nil {
		return 0, errors.Join(media.ErrDecode, fmt.Errorf("decode: getting rgba data failed: %w", err))
	}
	copy(dst, b)

	return pts, nil
}

// convert scales f into r.rgba, rebuilding the scaler when the decoded
// geometry or pixel format changes mid-stream.
func (r *VideoReader) convert(f *astiav.Frame) error {
	if r.scaler == nil || f.Width() != r.srcWidth || f.Height() != r.srcHeight || f.PixelFormat() != r.srcFormat {
		if r.scaler != nil {
			r.scaler.Free()
			r.scaler = nil
		}

		s, err := astiav.CreateSoftwareScaleContext(
			f.Width(), f.Height(), f.PixelFormat(),
			r.width, r.height, astiav.PixelFormatRgba,
			astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
		)
		if err != nil {
			return errors.Join(media.ErrDecode, fmt.Errorf("decode: creating scale context failed: %w", err))
		}

		r.scaler = s
		r.srcWidth = f.Width()
		r.srcHeight = f.Height()
		r.srcFormat = f.PixelFormat()
	}

	if err := r.scaler.ScaleFrame(f, r.rgba); err != nil {
		return errors.Join(media.ErrDecode, fmt.Errorf("decode: scaling frame failed: %w", err))
	}
	return nil
}

// Seek moves the demuxer to the keyframe at or before seconds.
func (r *VideoReader) Seek(seconds float64) error {
	if err := r.in.seek(seconds); err != nil {
		return err
	}
	r.cursor = seconds
	return nil
}

func (r *VideoReader) Duration() mo.Option[float64] {
	return r.in.duration()
}

func (r *VideoReader) Width() int {
	return r.width
}

func (r *VideoReader) Height() int {
	return r.height
}

// FrameRate is the average frame rate of the stream, zero when unknown.
func (r *VideoReader) FrameRate() float64 {
	if r.frameDuration == 0 {
		return 0
	}
	return 1 / r.frameDuration
}

func (r *VideoReader) Codec() string {
	return r.in.codec.Name()
}

func (r *VideoReader) Close() error {
	return r.in.close()
}

var _ ports.VideoReader = (*VideoReader)(nil)
