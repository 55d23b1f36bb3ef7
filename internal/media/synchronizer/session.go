package synchronizer

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

type State int

const (
	Stopped State = iota
	Playing
	Paused
	// Seeking is entered and left only by the seek orchestrator.
	Seeking
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Seeking:
		return "seeking"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Session is the per-file playback state owned by the control goroutine.
type Session struct {
	state State
	prior State

	volume       float64
	TargetBuffer float64
	Duration     mo.Option[float64]
}

func NewSession(volume, targetBuffer float64, duration mo.Option[float64]) *Session {
	return &Session{
		state:        Stopped,
		volume:       clampGain(volume),
		TargetBuffer: targetBuffer,
		Duration:     duration,
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Volume() float64 {
	return s.volume
}

// SetVolume stores gain clamped to [0, 1]. It affects audio enqueued from now on.
func (s *Session) SetVolume(gain float64) {
	s.volume = clampGain(gain)
}

func (s *Session) start() error {
	if s.state != Stopped {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, s.state)
	}
	s.state = Playing
	return nil
}

func (s *Session) togglePause() (State, error) {
	switch s.state {
	case Playing:
		s.state = Paused
	case Paused:
		s.state = Playing
	default:
		return s.state, fmt.Errorf("%w: toggle pause from %s", ErrInvalidTransition, s.state)
	}
	return s.state, nil
}

func (s *Session) beginSeek() error {
	if s.state != Playing && s.state != Paused {
		return fmt.Errorf("%w: seek from %s", ErrInvalidTransition, s.state)
	}
	s.prior = s.state
	s.state = Seeking
	return nil
}

func (s *Session) endSeek() State {
	if s.state == Seeking {
		s.state = s.prior
	}
	return s.state
}

func (s *Session) stop() {
	s.state = Stopped
}

// ClampTarget bounds a seek target to [0, duration], or to >= 0 when the
// duration is unknown. Non-finite targets seek to the start.
func (s *Session) ClampTarget(target float64) float64 {
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return 0
	}
	if d, ok := s.Duration.Get(); ok {
		return lo.Clamp(target, 0, d)
	}
	return math.Max(target, 0)
}

func clampGain(gain float64) float64 {
	if math.IsNaN(gain) {
		return 0
	}
	return lo.Clamp(gain, 0, 1)
}
