package synchronizer

import (
	"time"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/mocks"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
)

var stereo48k = media.AudioFormat{SampleRate: 48000, Channels: 2}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PollInterval = time.Microsecond
	cfg.IdleInterval = time.Microsecond
	return cfg
}

type fixture struct {
	audio    *mocks.AudioReader
	video    *mocks.VideoReader
	sink     *mocks.Sink
	renderer *mocks.Renderer
	input    *mocks.Input
}

// newFixture builds a source of the given length with 25 fps video and a
// sink that plays 1024 bytes per query.
func newFixture(length float64) *fixture {
	f := &fixture{
		audio:    mocks.NewAudioReader(stereo48k, length),
		video:    mocks.NewVideoReader(4, 2, 25, int(length*25)),
		sink:     mocks.NewSink(stereo48k),
		renderer: &mocks.Renderer{},
		input:    &mocks.Input{},
	}
	f.sink.DrainPerQuery = 1024
	return f
}

func (f *fixture) collaborators() Collaborators {
	return Collaborators{
		Audio:    f.audio,
		Video:    f.video,
		Sink:     f.sink,
		Renderer: f.renderer,
		Input:    f.input,
	}
}

// countingInput returns cmd on the nth poll and nothing otherwise.
type countingInput struct {
	n     int
	cmd   ports.Command
	polls int
}

func (c *countingInput) Poll() []ports.Command {
	c.polls++
	if c.polls == c.n {
		return []ports.Command{c.cmd}
	}
	return nil
}
