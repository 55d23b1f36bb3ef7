package mocks

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/samber/mo"
)

var (
	ErrMockDecode = errors.Join(media.ErrDecode, errors.New("mock: corrupt packet"))
	ErrMockSeek   = errors.Join(media.ErrSeek, errors.New("mock: seek refused"))
)

// AudioReader produces constant-valued chunks of ChunkFrames sample frames
// until Length seconds have been produced.
type AudioReader struct {
	format media.AudioFormat

	Length      float64
	ChunkFrames int
	Sample      int16
	// Offset is added to every pts to exercise rebasing.
	Offset float64

	// Granularity rounds seek targets down to a multiple of it.
	Granularity float64
	SeekErr     error
	// DecodeErrAfter fails the read after that many chunks when > 0.
	DecodeErrAfter int

	frame      int
	Reads      int
	Starts     []float64
	Seeks      []float64
	CloseCalls int
}

func NewAudioReader(format media.AudioFormat, length float64) *AudioReader {
	return &AudioReader{
		format:      format,
		Length:      length,
		ChunkFrames: 1024,
		Sample:      1000,
	}
}

func (m *AudioReader) ReadChunk() (media.AudioChunk, error) {
	if m.DecodeErrAfter > 0 && m.Reads >= m.DecodeErrAfter {
		return media.AudioChunk{}, ErrMockDecode
	}

	total := int(math.Round(m.Length * float64(m.format.SampleRate)))
	if m.frame >= total {
		return media.AudioChunk{}, io.EOF
	}

	n := min(m.ChunkFrames, total-m.frame)
	samples := make([]byte, n*m.format.BytesPerFrame())
	for i := 0; i+1 < len(samples); i += 2 {
		binary.LittleEndian.PutUint16(samples[i:], uint16(m.Sample))
	}

	rate := float64(m.format.SampleRate)
	chunk := media.AudioChunk{
		Start:   m.Offset + float64(m.frame)/rate,
		End:     m.Offset + float64(m.frame+n)/rate,
		Samples: samples,
	}

	m.frame += n
	m.Reads++
	m.Starts = append(m.Starts, chunk.Start)
	return chunk, nil
}

func (m *AudioReader) Seek(seconds float64) error {
	m.Seeks = append(m.Seeks, seconds)
	if m.SeekErr != nil {
		return m.SeekErr
	}
	if m.Granularity > 0 {
		seconds = math.Floor(seconds/m.Granularity) * m.Granularity
	}
	m.frame = int(seconds * float64(m.format.SampleRate))
	return nil
}

func (m *AudioReader) Duration() mo.Option[float64] {
	return mo.Some(m.Length)
}

func (m *AudioReader) Format() media.AudioFormat {
	return m.format
}

func (m *AudioReader) Close() error {
	m.CloseCalls++
	return nil
}

var _ ports.AudioReader = (*AudioReader)(nil)

// VideoReader produces Count frames at FPS. Every pixel byte of frame i is
// byte(i), so a renderer can tell frames apart.
type VideoReader struct {
	width, height int

	FPS    float64
	Count  int
	Offset float64

	// GOP rounds seek targets down to a multiple of GOP frames.
	GOP            int
	SeekErr        error
	DecodeErrAfter int
	// Unknown hides the duration.
	Unknown bool
	// OnEOF runs every time ReadFrame reports io.EOF.
	OnEOF func()

	index      int
	Reads      int
	Seeks      []float64
	CloseCalls int
}

func NewVideoReader(width, height int, fps float64, count int) *VideoReader {
	return &VideoReader{
		width:  width,
		height: height,
		FPS:    fps,
		Count:  count,
	}
}

func (m *VideoReader) ReadFrame(dst []byte) (float64, error) {
	if m.DecodeErrAfter > 0 && m.Reads >= m.DecodeErrAfter {
		return 0, ErrMockDecode
	}
	if m.index >= m.Count {
		if m.OnEOF != nil {
			m.OnEOF()
		}
		return 0, io.EOF
	}

	for i := range dst {
		dst[i] = byte(m.index)
	}
	pts := m.Offset + float64(m.index)/m.FPS

	m.index++
	m.Reads++
	return pts, nil
}

func (m *VideoReader) Seek(seconds float64) error {
	m.Seeks = append(m.Seeks, seconds)
	if m.SeekErr != nil {
		return m.SeekErr
	}
	idx := int(seconds * m.FPS)
	if m.GOP > 0 {
		idx -= idx % m.GOP
	}
	m.index = idx
	return nil
}

func (m *VideoReader) Duration() mo.Option[float64] {
	if m.Unknown {
		return mo.None[float64]()
	}
	return mo.Some(float64(m.Count) / m.FPS)
}

func (m *VideoReader) Width() int  { return m.width }
func (m *VideoReader) Height() int { return m.height }

func (m *VideoReader) Close() error {
	m.CloseCalls++
	return nil
}

var _ ports.VideoReader = (*VideoReader)(nil)
