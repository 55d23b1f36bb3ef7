// Package decoder reads audio and video from a media file with FFmpeg. Each
// reader owns its own demuxer so the two streams can be pulled and seeked
// independently.
package decoder

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/asticode/go-astiav"
	"github.com/asticode/go-astikit"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// noPTS mirrors AV_NOPTS_VALUE.
const noPTS int64 = math.MinInt64

// avTimeBase is AV_TIME_BASE, the unit of container durations.
const avTimeBase = 1000000

// input is a demuxer bound to one decoded stream.
type input struct {
	closer *astikit.Closer
	log    *logrus.Entry

	formatCtx *astiav.FormatContext
	stream    *astiav.Stream
	codec     *astiav.Codec
	codecCtx  *astiav.CodecContext

	pkt   *astiav.Packet
	frame *astiav.Frame

	timeBase media.Rational
	draining bool
}

func openInput(path string, t astiav.MediaType) (*input, error) {
	in := &input{
		closer: astikit.NewCloser(),
		log:    logrus.WithFields(logrus.Fields{"component": "decoder", "stream": t.String()}),
	}
	if err := in.open(path, t); err != nil {
		in.closer.Close()
		return nil, err
	}
	return in, nil
}

func (in *input) open(path string, t astiav.MediaType) error {
	if in.formatCtx = astiav.AllocFormatContext(); in.formatCtx == nil {
		return errors.Join(media.ErrOpen, errors.New("decoder: input format context is nil"))
	}
	in.closer.Add(in.formatCtx.Free)

	if err := in.formatCtx.OpenInput(path, nil, nil); err != nil {
		return errors.Join(media.ErrOpen, fmt.Errorf("decoder: opening input failed: %w", err))
	}
	in.closer.Add(in.formatCtx.CloseInput)

	if err := in.formatCtx.FindStreamInfo(nil); err != nil {
		return errors.Join(media.ErrOpen, fmt.Errorf("decoder: finding stream info failed: %w", err))
	}

	if err := in.findCodec(t); err != nil {
		return err
	}

	in.pkt = astiav.AllocPacket()
	in.closer.Add(in.pkt.Free)
	in.frame = astiav.AllocFrame()
	in.closer.Add(in.frame.Free)

	tb := in.stream.TimeBase()
	in.timeBase = media.Rational{Num: tb.Num(), Den: tb.Den()}

	return nil
}

// findCodec opens a decoder for the first stream of type t.
func (in *input) findCodec(t astiav.MediaType) error {
	for _, s := range in.formatCtx.Streams() {
		if s.CodecParameters().MediaType() != t {
			continue
		}

		c := astiav.FindDecoder(s.CodecParameters().CodecID())
		if c == nil {
			return errors.Join(media.ErrOpen, errors.New("finding codec: codec is nil"))
		}

		cc := astiav.AllocCodecContext(c)
		if cc == nil {
			return errors.Join(media.ErrOpen, errors.New("finding codec: codec context is nil"))
		}
		in.closer.Add(cc.Free)

		if err := s.CodecParameters().ToCodecContext(cc); err != nil {
			return errors.Join(media.ErrOpen, fmt.Errorf("finding codec: updating codec context failed: %w", err))
		}

		if err := cc.Open(c, nil); err != nil {
			return errors.Join(media.ErrOpen, fmt.Errorf("finding codec: opening codec context failed: %w", err))
		}

		in.stream = s
		in.codec = c
		in.codecCtx = cc
		return nil
	}

	switch t {
	case astiav.MediaTypeAudio:
		return errors.Join(media.ErrOpen, media.ErrNoAudio)
	case astiav.MediaTypeVideo:
		return errors.Join(media.ErrOpen, media.ErrNoVideo)
	}
	return errors.Join(media.ErrOpen, fmt.Errorf("finding codec: no %s stream found", t))
}

// next decodes the next frame of the stream into in.frame. The caller must
// Unref it. io.EOF is returned once the decoder is fully drained.
func (in *input) next() (*astiav.Frame, error) {
	for {
		stop, err := in.receive()
		if err != nil {
			return nil, err
		}
		if stop {
			return in.frame, nil
		}

		if in.draining {
			return nil, io.EOF
		}

		if err := in.readPacket(); err != nil {
			return nil, err
		}
	}
}

// receive reports whether a frame is ready in in.frame.
func (in *input) receive() (bool, error) {
	if err := in.codecCtx.ReceiveFrame(in.frame); err != nil {
		if errors.Is(err, astiav.ErrEagain) {
			return false, nil
		}
		if errors.Is(err, astiav.ErrEof) {
			return false, io.EOF
		}
		return false, errors.Join(media.ErrDecode, fmt.Errorf("decode: receiving frame failed: %w", err))
	}
	return true, nil
}

// readPacket feeds the next packet of the stream to the decoder. At the end
// of the file the decoder is switched to draining.
func (in *input) readPacket() error {
	for {
		if err := in.formatCtx.ReadFrame(in.pkt); err != nil {
			if errors.Is(err, astiav.ErrEof) {
				in.draining = true
				if err := in.codecCtx.SendPacket(nil); err != nil && !errors.Is(err, astiav.ErrEof) {
					return errors.Join(media.ErrDecode, fmt.Errorf("decode: flushing decoder failed: %w", err))
				}
				return nil
			}
			return errors.Join(media.ErrDecode, fmt.Errorf("decode: reading packet failed: %w", err))
		}

		if in.pkt.StreamIndex() != in.stream.Index() {
			in.pkt.Unref()
			continue
		}

		err := in.codecCtx.SendPacket(in.pkt)
		in.pkt.Unref()
		if err != nil && !errors.Is(err, astiav.ErrEagain) {
			return errors.Join(media.ErrDecode, fmt.Errorf("decode: sending packet failed: %w", err))
		}
		return nil
	}
}

// seek moves to the keyframe at or before seconds and drops decoder state.
func (in *input) seek(seconds float64) error {
	ts := in.timeBase.Ticks(seconds)
	if err := in.formatCtx.SeekFrame(in.stream.Index(), ts, astiav.NewSeekFlags(astiav.SeekFlagBackward)); err != nil {
		return errors.Join(media.ErrSeek, fmt.Errorf("seek: seeking to %.3fs failed: %w", seconds, err))
	}
	in.codecCtx.FlushBuffers()
	in.draining = false
	in.log.Debugf("seeked to %.3fs (%d @ %s)", seconds, ts, in.timeBase)
	return nil
}

// seconds converts a frame timestamp, falling back when it is unset.
func (in *input) seconds(pts int64, fallback float64) float64 {
	if pts == noPTS {
		return fallback
	}
	return in.timeBase.Seconds(pts)
}

// duration is the stream duration, else the container duration.
func (in *input) duration() mo.Option[float64] {
	if d := in.stream.Duration(); d > 0 {
		return mo.Some(in.timeBase.Seconds(d))
	}
	if d := in.formatCtx.Duration(); d > 0 {
		return mo.Some(float64(d) / avTimeBase)
	}
	return mo.None[float64]()
}

func (in *input) close() error {
	return in.closer.Close()
}
