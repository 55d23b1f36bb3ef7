package ports

import "github.com/GoldenFealla/SyncPlayerGo/internal/media"

// Sink is an audio output that queues PCM and plays it on its own consumer.
// Enqueue and QueuedBytes must be safe while the consumer runs.
type Sink interface {
	Enqueue(samples []byte) error

	// QueuedBytes reports audio accepted but not yet audible.
	QueuedBytes() int

	// Clear discards all queued audio.
	Clear()

	Pause(paused bool)
	Format() media.AudioFormat
	Close() error
}
