package synchronizer

import (
	"context"
	"fmt"

	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/sirupsen/logrus"
)

// Seeker repositions both readers and rebuilds the clock state. A seek is
// atomic for the tick loop: the sink is cleared before any post-seek audio is
// enqueued and both bases are re-established from the first new samples.
type Seeker struct {
	audio     ports.AudioReader
	video     ports.VideoReader
	sink      ports.Sink
	buffering *Buffering
	log       *logrus.Entry
}

func NewSeeker(audio ports.AudioReader, video ports.VideoReader, sink ports.Sink, buffering *Buffering) *Seeker {
	return &Seeker{
		audio:     audio,
		video:     video,
		sink:      sink,
		buffering: buffering,
		log:       logrus.WithField("component", "seek"),
	}
}

// Seek moves playback to target seconds. Reader seek failures are logged and
// playback continues from wherever the readers landed; audio and video may
// then differ by up to one keyframe interval. Only a refill error is returned.
func (k *Seeker) Seek(ctx context.Context, s *Session, st *ClockState, target float64) error {
	target = s.ClampTarget(target)

	if err := s.beginSeek(); err != nil {
		return err
	}
	paused := s.prior == Paused

	k.sink.Pause(true)
	k.sink.Clear()

	if err := k.audio.Seek(target); err != nil {
		k.log.WithError(err).Warnf("audio seek to %.3fs failed", target)
	}
	if err := k.video.Seek(target); err != nil {
		k.log.WithError(err).Warnf("video seek to %.3fs failed", target)
	}

	st.Reset()
	k.buffering.Reset()
	err := k.buffering.Fill(ctx, s, st)

	// The video basis was cleared by the reset and is taken from the next
	// frame the pacer sees.
	k.sink.Pause(paused)
	state := s.endSeek()

	if err != nil {
		return fmt.Errorf("seek: refilling audio failed: %w", err)
	}

	k.log.Infof("seeked to %.3fs (%s)", target, state)
	return nil
}
