package synchronizer

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Pace is the outcome of a catch-up wait.
type Pace int

const (
	// PacePresent means the frame is due and must be shown now.
	PacePresent Pace = iota
	// PacePreempted means a pause, seek or quit arrived during the wait.
	PacePreempted
	// PaceExhausted means the audio clock can no longer advance.
	PaceExhausted
	// PaceDeferred means the audio clock is not running yet. The frame stays
	// held and the next tick retries buffering.
	PaceDeferred
)

// Pacer holds video frames back until the audio clock reaches them. It never
// drops frames: a decode stall only makes presentation later.
type Pacer struct {
	clock AudioClock
	poll  time.Duration
	wake  <-chan struct{}
	log   *logrus.Entry

	// Drained reports that the audio clock is frozen for good.
	Drained func() bool

	// MaxIterations caps the number of sleeps of one wait, and the number of
	// consecutive deferrals. Zero means no cap.
	MaxIterations int

	deferred int
}

func NewPacer(clock AudioClock, poll time.Duration, wake <-chan struct{}) *Pacer {
	return &Pacer{
		clock: clock,
		poll:  poll,
		wake:  wake,
		log:   logrus.WithField("component", "pacer"),
	}
}

// Wait blocks until the frame at pts is due against the audio clock. The
// first frame after a (re)start sets the video basis and is due at once, even
// before any audio is queued. Later frames never go out while the clock is
// invalid. service is called on every iteration; returning true preempts the
// wait.
func (p *Pacer) Wait(ctx context.Context, st *ClockState, pts float64, service func() bool) (Pace, error) {
	first := st.VideoBasis.Set(pts)
	if first {
		p.log.Debugf("video basis set to %.3fs", pts)
	}
	video := st.VideoBasis.Rebase(pts)

	for i := 0; ; i++ {
		audio, ok := p.clock.Relative(st)
		if (ok && video <= audio) || (!ok && first) {
			if i > 0 {
				p.log.Tracef("frame %.3fs due after %d polls", video, i)
			}
			p.deferred = 0
			return PacePresent, nil
		}

		if service != nil && service() {
			return PacePreempted, nil
		}

		if p.Drained != nil && p.Drained() {
			return PaceExhausted, nil
		}

		if !ok {
			return p.deferral(ctx, video)
		}

		if p.MaxIterations > 0 && i >= p.MaxIterations {
			p.log.Warnf("frame %.3fs still ahead of audio %.3fs after %d polls", video, audio, i)
			return PacePreempted, ErrWaitExhausted
		}

		if err := p.sleep(ctx); err != nil {
			return PacePreempted, err
		}
	}
}

// deferral hands a frame back to the tick while no audio is queued, so the
// sink gets retried instead of the wait spinning on a clock that cannot move.
func (p *Pacer) deferral(ctx context.Context, video float64) (Pace, error) {
	p.deferred++
	if p.MaxIterations > 0 && p.deferred > p.MaxIterations {
		p.log.Warnf("frame %.3fs deferred %d times without audio", video, p.deferred-1)
		p.deferred = 0
		return PacePreempted, ErrWaitExhausted
	}

	if err := p.sleep(ctx); err != nil {
		return PacePreempted, err
	}
	return PaceDeferred, nil
}

func (p *Pacer) sleep(ctx context.Context) error {
	return sleep(ctx, p.poll, p.wake)
}

// sleep waits for d, returning early when wake fires or ctx ends.
func sleep(ctx context.Context, d time.Duration, wake <-chan struct{}) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-wake:
	case <-t.C:
	}
	return nil
}
