package sink

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// DefaultQuantum is the audio a Wav sink plays per QueuedBytes query.
const DefaultQuantum = 0.01

// Wav is an offline sink. It has no device clock of its own: every
// QueuedBytes query while running plays Quantum seconds of the queue into the
// WAV file, so playback advances as fast as the engine polls.
type Wav struct {
	format media.AudioFormat
	file   afero.File
	enc    *wav.Encoder
	buf    *audio.IntBuffer
	log    *logrus.Entry

	// Quantum is the audio played per query, in seconds.
	Quantum float64

	pending []byte
	paused  bool
	closed  bool
	written int
}

// NewWav creates path on fs and writes a 16-bit PCM WAV header for format.
// It starts paused.
func NewWav(fs afero.Fs, path string, format media.AudioFormat) (*Wav, error) {
	f, err := fs.Create(path)
	if err != nil {
		return nil, errors.Join(media.ErrOpen, fmt.Errorf("wav: creating %s failed: %w", path, err))
	}

	return &Wav{
		format: format,
		file:   f,
		enc:    wav.NewEncoder(f, format.SampleRate, 16, format.Channels, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
			SourceBitDepth: 16,
		},
		log:     logrus.WithFields(logrus.Fields{"component": "sink", "path": path}),
		Quantum: DefaultQuantum,
		paused:  true,
	}, nil
}

func (w *Wav) Enqueue(samples []byte) error {
	if w.closed {
		return errors.Join(media.ErrSink, ErrClosed)
	}
	w.pending = append(w.pending, samples...)
	return nil
}

// QueuedBytes plays one quantum when running and reports what is left.
func (w *Wav) QueuedBytes() int {
	if w.closed {
		return 0
	}
	if !w.paused && len(w.pending) > 0 {
		n := w.quantumBytes()
		if n > len(w.pending) {
			n = len(w.pending)
		}
		if err := w.play(n); err != nil {
			w.log.WithError(err).Error("writing samples failed")
		}
	}
	return len(w.pending)
}

func (w *Wav) quantumBytes() int {
	frames := int(w.Quantum * float64(w.format.SampleRate))
	if frames < 1 {
		frames = 1
	}
	return frames * w.format.BytesPerFrame()
}

// play encodes the first n pending bytes.
func (w *Wav) play(n int) error {
	n -= n % media.BytesPerSample
	if n == 0 {
		return nil
	}

	samples := n / media.BytesPerSample
	if cap(w.buf.Data) < samples {
		w.buf.Data = make([]int, samples)
	}
	w.buf.Data = w.buf.Data[:samples]
	for i := range samples {
		w.buf.Data[i] = int(int16(binary.LittleEndian.Uint16(w.pending[2*i:])))
	}

	w.pending = w.pending[n:]
	if err := w.enc.Write(w.buf); err != nil {
		return errors.Join(media.ErrSink, fmt.Errorf("wav: encoding failed: %w", err))
	}
	w.written += n
	return nil
}

func (w *Wav) Clear() {
	w.pending = nil
}

func (w *Wav) Pause(paused bool) {
	w.paused = paused
}

func (w *Wav) Format() media.AudioFormat {
	return w.format
}

// Written is the number of PCM bytes encoded so far.
func (w *Wav) Written() int {
	return w.written
}

// Close plays out whatever is still queued, finalizes the header and closes
// the file.
func (w *Wav) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	if err := w.play(len(w.pending)); err != nil {
		errs = append(errs, err)
	}
	if err := w.enc.Close(); err != nil {
		errs = append(errs, errors.Join(media.ErrSink, fmt.Errorf("wav: finalizing failed: %w", err)))
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, errors.Join(media.ErrSink, fmt.Errorf("wav: closing file failed: %w", err)))
	}

	w.log.Infof("wrote %.3fs of audio", w.format.Seconds(w.written))
	return errors.Join(errs...)
}

var _ ports.Sink = (*Wav)(nil)
