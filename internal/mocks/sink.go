// Package mocks provides in-memory collaborators for exercising the
// synchronization engine without codecs or audio hardware.
package mocks

import (
	"errors"
	"sync"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
)

var ErrSinkFailure = errors.New("mock sink: enqueue failed")

// Sink is a mock ports.Sink. Playback is simulated: every QueuedBytes call
// while running consumes DrainPerQuery bytes from the queue.
type Sink struct {
	mu sync.Mutex

	format media.AudioFormat
	queued int
	paused bool

	DrainPerQuery int
	// FailEnqueues makes the next n Enqueue calls fail.
	FailEnqueues int

	Enqueued     [][]byte
	EnqueueCalls int
	Queries      int
	ClearCalls   int
	CloseCalls   int
	PauseCalls   []bool
	Played       int

	// Events records the order of enqueue, clear and pause calls.
	Events []string
}

func NewSink(format media.AudioFormat) *Sink {
	return &Sink{format: format, paused: true}
}

func (m *Sink) Enqueue(samples []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnqueueCalls++
	if m.FailEnqueues > 0 {
		m.FailEnqueues--
		return ErrSinkFailure
	}

	b := make([]byte, len(samples))
	copy(b, samples)
	m.Enqueued = append(m.Enqueued, b)
	m.queued += len(samples)
	m.Events = append(m.Events, "enqueue")
	return nil
}

func (m *Sink) QueuedBytes() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Queries++
	if !m.paused && m.DrainPerQuery > 0 {
		n := min(m.DrainPerQuery, m.queued)
		m.queued -= n
		m.Played += n
	}
	return m.queued
}

// Queued returns the queue depth without simulating playback.
func (m *Sink) Queued() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queued
}

// SetQueued forces the queue depth, for injecting underruns.
func (m *Sink) SetQueued(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = n
}

func (m *Sink) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queued = 0
	m.ClearCalls++
	m.Events = append(m.Events, "clear")
}

func (m *Sink) Pause(paused bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paused = paused
	m.PauseCalls = append(m.PauseCalls, paused)
	if paused {
		m.Events = append(m.Events, "pause")
	} else {
		m.Events = append(m.Events, "play")
	}
}

func (m *Sink) Paused() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paused
}

func (m *Sink) Format() media.AudioFormat {
	return m.format
}

func (m *Sink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	return nil
}

var _ ports.Sink = (*Sink)(nil)
