package synchronizer

import (
	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
)

// ClockState is reinitialized on open and on every seek.
type ClockState struct {
	AudioBasis media.Basis
	VideoBasis media.Basis

	LastEnqueuedEnd float64

	// EnqueuedBytes and Chunks count what reached the sink since the last reset.
	EnqueuedBytes int
	Chunks        int
}

func (c *ClockState) AudioStarted() bool {
	return c.AudioBasis.IsSet()
}

func (c *ClockState) VideoStarted() bool {
	return c.VideoBasis.IsSet()
}

func (c *ClockState) Reset() {
	*c = ClockState{}
}

// AudioClock derives the audible position from the sink's queue depth.
type AudioClock struct {
	sink ports.Sink
}

func NewAudioClock(sink ports.Sink) AudioClock {
	return AudioClock{sink: sink}
}

// QueuedSeconds is the play time of audio accepted by the sink but not yet heard.
func (c AudioClock) QueuedSeconds() float64 {
	return c.sink.Format().Seconds(c.sink.QueuedBytes())
}

// Now returns the absolute pts currently audible. ok is false until a chunk
// has been enqueued since the last reset.
func (c AudioClock) Now(st *ClockState) (float64, bool) {
	if !st.AudioStarted() || st.Chunks == 0 {
		return 0, false
	}

	queued := c.sink.QueuedBytes()
	if queued > st.EnqueuedBytes {
		// The sink cannot hold more than we gave it since the reset.
		queued = 0
	}
	return st.LastEnqueuedEnd - c.sink.Format().Seconds(queued), true
}

// Relative returns Now rebased on the audio basis.
func (c AudioClock) Relative(st *ClockState) (float64, bool) {
	now, ok := c.Now(st)
	if !ok {
		return 0, false
	}
	return st.AudioBasis.Rebase(now), true
}
