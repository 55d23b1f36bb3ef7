package mocks

import "github.com/GoldenFealla/SyncPlayerGo/internal/ports"

// Renderer records what it was asked to show. Frames holds the first pixel
// byte of every upload.
type Renderer struct {
	Frames   []byte
	Draws    int
	Presents int

	// OnPresent runs after every Present.
	OnPresent func()
}

func (m *Renderer) Upload(pixels []byte, width, height int) {
	if len(pixels) > 0 {
		m.Frames = append(m.Frames, pixels[0])
	}
}

func (m *Renderer) Draw() {
	m.Draws++
}

func (m *Renderer) Present() {
	m.Presents++
	if m.OnPresent != nil {
		m.OnPresent()
	}
}

var _ ports.Renderer = (*Renderer)(nil)

// Input replays scripted commands. Commands queued with Push are returned by
// the next Poll.
type Input struct {
	queue []ports.Command
	Polls int
}

func (m *Input) Push(cmds ...ports.Command) {
	m.queue = append(m.queue, cmds...)
}

func (m *Input) Poll() []ports.Command {
	m.Polls++
	cmds := m.queue
	m.queue = nil
	return cmds
}

var _ ports.Input = (*Input)(nil)
