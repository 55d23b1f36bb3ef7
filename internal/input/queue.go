// Package input turns key presses and console lines into playback commands.
package input

import (
	"sync"

	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
)

// Queue collects commands from any goroutine and hands them to the player on
// its next poll. Every push also signals Wake so a sleeping player notices it
// before its sleep ends.
type Queue struct {
	mu   sync.Mutex
	cmds []ports.Command
	wake chan struct{}
}

func NewQueue() *Queue {
	return &Queue{wake: make(chan struct{}, 1)}
}

func (q *Queue) Push(cmds ...ports.Command) {
	q.mu.Lock()
	q.cmds = append(q.cmds, cmds...)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Poll returns the pending commands in arrival order and empties the queue.
func (q *Queue) Poll() []ports.Command {
	q.mu.Lock()
	defer q.mu.Unlock()

	cmds := q.cmds
	q.cmds = nil
	return cmds
}

func (q *Queue) Wake() <-chan struct{} {
	return q.wake
}

var (
	_ ports.Input = (*Queue)(nil)
	_ ports.Waker = (*Queue)(nil)
)
