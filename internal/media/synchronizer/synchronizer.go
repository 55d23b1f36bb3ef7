// Package synchronizer keeps an independently clocked audio sink and a
// decoded video stream presented in lockstep. The audio sink is the master
// clock: video frames are held back until the audible audio position reaches
// their pts. Everything here runs on a single control goroutine; only the
// sink consumes concurrently.
package synchronizer

import (
	"errors"
	"time"
)

var (
	ErrInvalidTransition = errors.New("synchronizer: invalid state transition")

	// ErrWaitExhausted is returned when a catch-up wait hits Config.MaxWaitIterations.
	ErrWaitExhausted = errors.New("synchronizer: catch-up wait exhausted")
)

type Config struct {
	// TargetBuffer is the watermark, in seconds, the sink is topped up to.
	TargetBuffer float64

	// PollInterval bounds each sleep of the frame pacer's catch-up wait.
	PollInterval time.Duration

	// IdleInterval is the tick period while paused.
	IdleInterval time.Duration

	// Volume is the initial gain.
	Volume float64

	// MaxWaitIterations caps the catch-up wait. Zero means unbounded.
	MaxWaitIterations int
}

func DefaultConfig() Config {
	return Config{
		TargetBuffer: 0.3,
		PollInterval: time.Millisecond,
		IdleInterval: 10 * time.Millisecond,
		Volume:       1,
	}
}
