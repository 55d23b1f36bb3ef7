// Package sink provides the audio outputs the synchronization engine feeds:
// a real-time device sink backed by oto and an offline WAV sink.
package sink

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

var ErrClosed = errors.New("sink: closed")

// device is the part of *oto.Player the sink drives.
type device interface {
	Play()
	Pause()
	BufferedSize() int
	Seek(offset int64, whence int) (int64, error)
	Err() error
	Close() error
}

// oto allows a single context per process.
var (
	otoOnce   sync.Once
	otoCtx    *oto.Context
	otoFormat media.AudioFormat
	otoErr    error
)

func otoContext(format media.AudioFormat, buffer time.Duration) (*oto.Context, error) {
	otoOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   buffer,
		})
		if err != nil {
			otoErr = fmt.Errorf("oto: creating context failed: %w", err)
			return
		}
		<-ready
		otoCtx = ctx
		otoFormat = format
	})

	if otoErr != nil {
		return nil, otoErr
	}
	if otoFormat != format {
		return nil, fmt.Errorf("oto: context already running at %d Hz x %d", otoFormat.SampleRate, otoFormat.Channels)
	}
	return otoCtx, nil
}

// Oto plays queued PCM on the default audio device. The device pulls from an
// in-memory queue on its own goroutine; everything else happens on the
// caller's.
type Oto struct {
	format media.AudioFormat
	queue  *queue
	player device
	log    *logrus.Entry

	closed bool
}

// NewOto opens the audio device. It starts paused. buffer is the size of the
// device buffer behind the player. oto does not report how much of it is
// still unplayed, so it is not part of QueuedBytes and the clock leads the
// audible output by up to buffer.
func NewOto(format media.AudioFormat, buffer time.Duration) (*Oto, error) {
	ctx, err := otoContext(format, buffer)
	if err != nil {
		return nil, errors.Join(media.ErrOpen, err)
	}

	q := &queue{}
	return newOto(format, q, ctx.NewPlayer(q)), nil
}

func newOto(format media.AudioFormat, q *queue, player device) *Oto {
	player.Pause()
	return &Oto{
		format: format,
		queue:  q,
		player: player,
		log:    logrus.WithField("component", "sink"),
	}
}

func (o *Oto) Enqueue(samples []byte) error {
	if o.closed {
		return errors.Join(media.ErrSink, ErrClosed)
	}
	if err := o.player.Err(); err != nil {
		return errors.Join(media.ErrSink, fmt.Errorf("oto: player failed: %w", err))
	}

	o.queue.Write(samples)
	return nil
}

// QueuedBytes counts the queue and what the player has prefetched from it
// but not yet handed to the device.
func (o *Oto) QueuedBytes() int {
	if o.closed {
		return 0
	}
	return o.queue.Len() + o.player.BufferedSize()
}

// Clear drops everything queued, including the device buffer.
func (o *Oto) Clear() {
	if o.closed {
		return
	}
	o.queue.reset()
	if _, err := o.player.Seek(0, io.SeekStart); err != nil {
		o.log.WithError(err).Warn("dropping device buffer failed")
	}
}

func (o *Oto) Pause(paused bool) {
	if o.closed {
		return
	}
	if paused {
		o.player.Pause()
	} else {
		o.player.Play()
	}
}

func (o *Oto) Format() media.AudioFormat {
	return o.format
}

func (o *Oto) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true

	o.player.Pause()
	o.queue.reset()
	if err := o.player.Close(); err != nil {
		return errors.Join(media.ErrSink, fmt.Errorf("oto: closing player failed: %w", err))
	}
	return nil
}

var _ ports.Sink = (*Oto)(nil)
