package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/sirupsen/logrus"
)

// Buffering keeps the sink topped up to the session watermark.
type Buffering struct {
	reader ports.AudioReader
	sink   ports.Sink
	clock  AudioClock
	log    *logrus.Entry

	// pending already carries its gain; it is retried after a sink error.
	pending   *media.AudioChunk
	exhausted bool
	sinkErr   error
}

func NewBuffering(reader ports.AudioReader, sink ports.Sink) *Buffering {
	return &Buffering{
		reader: reader,
		sink:   sink,
		clock:  NewAudioClock(sink),
		log:    logrus.WithField("component", "buffering"),
	}
}

// TopUp pulls, gain-processes and enqueues chunks until the sink holds at
// least s.TargetBuffer seconds. cancel is checked before every chunk; a true
// result ends the top-up early. Reader EOF ends it without error. A sink
// error skips the rest of this top-up and keeps the chunk for the next one.
func (b *Buffering) TopUp(ctx context.Context, s *Session, st *ClockState, cancel func() bool) error {
	for {
		stop, err := b.step(ctx, s, st, cancel)
		if err != nil {
			return err
		}

		if stop {
			return nil
		}
	}
}

// Fill runs an uncancellable top-up, used right after open and after a seek.
func (b *Buffering) Fill(ctx context.Context, s *Session, st *ClockState) error {
	return b.TopUp(ctx, s, st, nil)
}

func (b *Buffering) step(ctx context.Context, s *Session, st *ClockState, cancel func() bool) (bool, error) {
	if b.clock.QueuedSeconds() >= s.TargetBuffer {
		return true, nil
	}

	if b.Exhausted() {
		return true, nil
	}

	if err := ctx.Err(); err != nil {
		return true, err
	}

	if cancel != nil && cancel() {
		return true, nil
	}

	if b.pending == nil {
		chunk, err := b.reader.ReadChunk()
		if err != nil {
			if errors.Is(err, io.EOF) {
				b.log.Debug("audio reader reached end of stream")
				b.exhausted = true
				return true, nil
			}
			return true, fmt.Errorf("buffering: reading chunk failed: %w", err)
		}

		if st.AudioBasis.Set(chunk.Start) {
			b.log.Debugf("audio basis set to %.3fs", chunk.Start)
		}

		ApplyGain(chunk.Samples, s.Volume())
		b.pending = &chunk
	}

	if err := b.sink.Enqueue(b.pending.Samples); err != nil {
		b.log.WithError(err).Warn("enqueue failed, retrying next tick")
		b.sinkErr = err
		return true, nil
	}
	b.sinkErr = nil

	st.LastEnqueuedEnd = b.pending.End
	st.EnqueuedBytes += len(b.pending.Samples)
	st.Chunks++

	b.log.Tracef("enqueued %d bytes [%.3f, %.3f]", len(b.pending.Samples), b.pending.Start, b.pending.End)
	b.pending = nil

	return false, nil
}

// Reset forgets the pending chunk and the end-of-stream mark after a seek.
func (b *Buffering) Reset() {
	b.pending = nil
	b.exhausted = false
	b.sinkErr = nil
}

// SinkErr is the error of the last enqueue if it failed. It is cleared by the
// next successful enqueue.
func (b *Buffering) SinkErr() error {
	return b.sinkErr
}

// Exhausted reports that the reader hit EOF and nothing is left to enqueue.
func (b *Buffering) Exhausted() bool {
	return b.exhausted && b.pending == nil
}

// Drained reports that the reader is exhausted and the sink played out
// everything it was given.
func (b *Buffering) Drained() bool {
	return b.Exhausted() && b.sink.QueuedBytes() == 0
}
