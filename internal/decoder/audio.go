package decoder

import (
	"errors"
	"fmt"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/asticode/go-astiav"
	"github.com/samber/mo"
)

// AudioReader decodes the first audio stream of a file and resamples it to
// interleaved S16 in the requested format.
type AudioReader struct {
	in *input

	format    media.AudioFormat
	layout    astiav.ChannelLayout
	resampler *astiav.SoftwareResampleContext
	resampled *astiav.Frame

	// cursor is the end of the last chunk, used for frames without pts.
	cursor float64
}

func NewAudioReader(path string, format media.AudioFormat) (*AudioReader, error) {
	var layout astiav.ChannelLayout
	switch format.Channels {
	case 1:
		layout = astiav.ChannelLayoutMono
	case 2:
		layout = astiav.ChannelLayoutStereo
	default:
		return nil, errors.Join(media.ErrOpen, fmt.Errorf("audio reader: %d channels not supported", format.Channels))
	}

	in, err := openInput(path, astiav.MediaTypeAudio)
	if err != nil {
		return nil, err
	}

	r := &AudioReader{
		in:        in,
		format:    format,
		layout:    layout,
		resampler: astiav.AllocSoftwareResampleContext(),
		resampled: astiav.AllocFrame(),
	}
	in.closer.Add(func() { r.resampler.Free() })
	in.closer.Add(r.resampled.Free)

	in.log.Infof("audio %s, %d Hz -> %d Hz, %d channels",
		in.codec.Name(), in.codecCtx.SampleRate(), format.SampleRate, format.Channels)

	return r, nil
}

// ReadChunk decodes and resamples the next audio frame.
func (r *AudioReader) ReadChunk() (media.AudioChunk, error) {
	for {
		f, err := r.in.next()
		if err != nil {
			return media.AudioChunk{}, err
		}

		start := r.in.seconds(f.Pts(), r.cursor)
		samples, err := r.resample(f)
		f.Unref()
		if err != nil {
			return media.AudioChunk{}, err
		}

		// The resampler may hold the first frames back.
		if len(samples) == 0 {
			continue
		}

		end := start + r.format.Seconds(len(samples))
		r.cursor = end

		return media.AudioChunk{
			Start:   start,
			End:     end,
			Samples: samples,
		}, nil
	}
}

func (r *AudioReader) resample(f *astiav.Frame) ([]byte, error) {
	r.resampled.Unref()
	r.resampled.SetChannelLayout(r.layout)
	r.resampled.SetSampleFormat(astiav.SampleFormatS16)
	r.resampled.SetSampleRate(r.format.SampleRate)

	if err := r.resampler.ConvertFrame(f, r.resampled); err != nil {
		return nil, errors.Join(media.ErrDecode, fmt.Errorf("decode: resampling decoded frame failed: %w", err))
	}

	n := r.resampled.NbSamples() * r.format.BytesPerFrame()
	if n == 0 {
		return nil, nil
	}

	b, err := r.resampled.Data().Bytes(1)
	if err != nil {
		return nil, errors.Join(media.ErrDecode, fmt.Errorf("decode: getting resampled data failed: %w", err))
	}
	if len(b) > n {
		b = b[:n]
	}
	return b, nil
}

// Seek moves the demuxer to the keyframe at or before seconds. Samples still
// held by the resampler belong to the old position and are dropped.
func (r *AudioReader) Seek(seconds float64) error {
	if err := r.in.seek(seconds); err != nil {
		return err
	}

	r.resampler.Free()
	r.resampler = astiav.AllocSoftwareResampleContext()
	r.cursor = seconds
	return nil
}

func (r *AudioReader) Duration() mo.Option[float64] {
	return r.in.duration()
}

func (r *AudioReader) Format() media.AudioFormat {
	return r.format
}

// SourceRate is the sample rate of the decoded stream before resampling.
func (r *AudioReader) SourceRate() int {
	return r.in.codecCtx.SampleRate()
}

func (r *AudioReader) Codec() string {
	return r.in.codec.Name()
}

func (r *AudioReader) Close() error {
	return r.in.close()
}

var _ ports.AudioReader = (*AudioReader)(nil)
