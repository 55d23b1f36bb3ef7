package sink

import (
	"io"
	"sync"
)

// queue is a FIFO of PCM bytes shared between the control goroutine, which
// appends, and the audio device, which reads. An empty queue reads as zero
// bytes without error so the device keeps polling it.
type queue struct {
	mu  sync.Mutex
	buf []byte
}

func (q *queue) Write(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.buf = append(q.buf, p...)
	return len(p), nil
}

func (q *queue) Read(p []byte) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := copy(p, q.buf)
	q.buf = q.buf[n:]
	if len(q.buf) == 0 {
		q.buf = nil
	}
	return n, nil
}

// Seek discards everything queued. Any offset resets to the start.
func (q *queue) Seek(offset int64, whence int) (int64, error) {
	q.reset()
	return 0, nil
}

func (q *queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

func (q *queue) reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.buf = nil
}

var _ io.ReadWriteSeeker = (*queue)(nil)
