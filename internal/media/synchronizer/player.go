package synchronizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	"github.com/asticode/go-astikit"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// Collaborators are the external pieces a Player drives. The readers and the
// sink must already be open; the Player owns them from Open on and closes
// them exactly once. Input may be nil.
type Collaborators struct {
	Audio    ports.AudioReader
	Video    ports.VideoReader
	Sink     ports.Sink
	Renderer ports.Renderer
	Input    ports.Input
}

// Player is the playback state machine. All its methods must be called from
// the goroutine that runs it.
type Player struct {
	cfg Config
	log *logrus.Entry

	audio    ports.AudioReader
	video    ports.VideoReader
	sink     ports.Sink
	renderer ports.Renderer
	input    ports.Input
	wake     <-chan struct{}

	session   *Session
	clock     ClockState
	audioTime AudioClock
	buffering *Buffering
	pacer     *Pacer
	seeker    *Seeker

	frame       *media.FrameBuffer
	held        bool
	uploaded    bool
	pendingSeek mo.Option[float64]
	position    float64

	presented int
	fpsCount  int
	fpsStart  time.Time

	closer *astikit.Closer
	closed bool
}

// Open takes ownership of the collaborators, allocates the frame buffer and
// fills the sink to the watermark. On success the session is Playing and the
// sink is running. On failure everything is released and the error is joined
// with media.ErrOpen.
func Open(ctx context.Context, cfg Config, c Collaborators) (*Player, error) {
	p := &Player{
		cfg:    cfg,
		log:    logrus.WithField("component", "player"),
		closer: astikit.NewCloser(),
	}

	if c.Audio != nil {
		p.closer.AddWithError(c.Audio.Close)
	}
	if c.Video != nil {
		p.closer.AddWithError(c.Video.Close)
	}
	if c.Sink != nil {
		p.closer.AddWithError(c.Sink.Close)
	}

	if c.Audio == nil || c.Video == nil || c.Sink == nil || c.Renderer == nil {
		p.Close()
		return nil, fmt.Errorf("%w: player: audio, video, sink and renderer are required", media.ErrOpen)
	}

	p.audio = c.Audio
	p.video = c.Video
	p.sink = c.Sink
	p.renderer = c.Renderer
	p.input = c.Input
	if w, ok := c.Input.(ports.Waker); ok {
		p.wake = w.Wake()
	}

	p.frame = media.NewFrameBuffer(c.Video.Width(), c.Video.Height())
	p.closer.Add(p.frame.Release)

	duration := c.Video.Duration()
	if duration.IsAbsent() {
		duration = c.Audio.Duration()
	}
	p.session = NewSession(cfg.Volume, cfg.TargetBuffer, duration)

	p.audioTime = NewAudioClock(c.Sink)
	p.buffering = NewBuffering(c.Audio, c.Sink)
	p.pacer = NewPacer(p.audioTime, cfg.PollInterval, p.wake)
	p.pacer.Drained = p.buffering.Drained
	p.pacer.MaxIterations = cfg.MaxWaitIterations
	p.seeker = NewSeeker(c.Audio, c.Video, c.Sink, p.buffering)

	if err := p.buffering.Fill(ctx, p.session, &p.clock); err != nil {
		p.Close()
		return nil, fmt.Errorf("%w: player: initial buffering failed: %w", media.ErrOpen, err)
	}

	if p.clock.Chunks == 0 {
		if err := p.buffering.SinkErr(); err != nil {
			p.Close()
			return nil, fmt.Errorf("%w: player: sink refused initial audio: %w", media.ErrOpen, errors.Join(media.ErrSink, err))
		}
	}

	if !p.clock.AudioStarted() || p.clock.Chunks == 0 {
		p.Close()
		return nil, fmt.Errorf("%w: player: initial buffering produced no audio: %w", media.ErrOpen, media.ErrNoAudio)
	}

	p.sink.Pause(false)
	if err := p.session.start(); err != nil {
		p.Close()
		return nil, fmt.Errorf("%w: %w", media.ErrOpen, err)
	}

	if d, ok := duration.Get(); ok {
		p.log.Infof("playing %dx%d, %.3fs", c.Video.Width(), c.Video.Height(), d)
	} else {
		p.log.Infof("playing %dx%d, unknown duration", c.Video.Width(), c.Video.Height())
	}

	return p, nil
}

func (p *Player) Session() *Session {
	return p.session
}

// Clock exposes the clock state for inspection.
func (p *Player) Clock() *ClockState {
	return &p.clock
}

// Presented is the number of frames shown so far.
func (p *Player) Presented() int {
	return p.presented
}

// Position is the current absolute playback time in seconds: the audio clock
// when it is valid, otherwise the pts of the last frame shown.
func (p *Player) Position() float64 {
	if now, ok := p.audioTime.Now(&p.clock); ok {
		return now
	}
	return p.position
}

// Close stops the session and releases the frame buffer, the readers and the
// sink. Only the first call has an effect.
func (p *Player) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if p.session != nil {
		p.session.stop()
	}
	return p.closer.Close()
}

// Run drives ticks until the session stops. It returns nil on end of stream,
// quit or ctx cancellation and the fatal error otherwise.
func (p *Player) Run(ctx context.Context) error {
	p.fpsStart = time.Now()

	for p.session.State() != Stopped {
		stop, err := p.tick(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				p.stop("canceled")
				return nil
			}
			p.stop("error")
			p.log.WithError(err).Error("playback failed")
			return err
		}

		if stop {
			break
		}
	}

	return nil
}

// Step runs a single tick.
func (p *Player) Step(ctx context.Context) (bool, error) {
	if p.session.State() == Stopped {
		return true, nil
	}
	return p.tick(ctx)
}

func (p *Player) tick(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return true, err
	}

	p.serviceInput()

	if target, ok := p.pendingSeek.Get(); ok {
		p.pendingSeek = mo.None[float64]()
		p.held = false
		p.frame.Invalidate()

		if err := p.seeker.Seek(ctx, p.session, &p.clock, target); err != nil {
			return true, err
		}
	}

	switch p.session.State() {
	case Stopped:
		return true, nil
	case Paused:
		p.redraw()
		return false, sleep(ctx, p.cfg.IdleInterval, p.wake)
	}

	if err := p.buffering.TopUp(ctx, p.session, &p.clock, p.seekRequested); err != nil {
		return true, err
	}

	if p.pendingSeek.IsPresent() || p.session.State() != Playing {
		return false, nil
	}

	if p.buffering.Drained() {
		p.stop("end of audio")
		return true, nil
	}

	if !p.held {
		if err := p.frame.Read(p.video); err != nil {
			if errors.Is(err, io.EOF) {
				p.stop("end of video")
				return true, nil
			}
			return true, fmt.Errorf("player: reading frame failed: %w", err)
		}
		p.held = true
	}

	frame, _ := p.frame.Frame()
	pace, err := p.pacer.Wait(ctx, &p.clock, frame.PTS, p.interrupted)
	if err != nil {
		return true, err
	}

	switch pace {
	case PacePreempted, PaceDeferred:
		// The held frame is shown later or dropped by a seek.
		return false, nil
	case PaceExhausted:
		p.stop("end of audio")
		return true, nil
	}

	p.present(frame)
	return false, nil
}

func (p *Player) present(f media.VideoFrame) {
	p.renderer.Upload(f.Pixels, f.Width, f.Height)
	p.renderer.Draw()
	p.renderer.Present()

	p.held = false
	p.uploaded = true
	p.position = f.PTS
	p.presented++

	p.fpsCount++
	if elapsed := time.Since(p.fpsStart); elapsed >= time.Second {
		p.log.Debugf("%.1f fps", float64(p.fpsCount)/elapsed.Seconds())
		p.fpsCount = 0
		p.fpsStart = time.Now()
	}
}

// redraw shows the last uploaded frame again without reading a new one.
func (p *Player) redraw() {
	if !p.uploaded {
		return
	}
	p.renderer.Draw()
	p.renderer.Present()
}

func (p *Player) serviceInput() {
	if p.input == nil {
		return
	}

	for _, cmd := range p.input.Poll() {
		p.handle(cmd)
	}
}

// interrupted services input and reports whether the current catch-up wait
// must end.
func (p *Player) interrupted() bool {
	p.serviceInput()
	return p.pendingSeek.IsPresent() || p.session.State() != Playing
}

// seekRequested services input and reports whether the current top-up must
// end. Pausing does not cancel buffering.
func (p *Player) seekRequested() bool {
	p.serviceInput()
	return p.pendingSeek.IsPresent() || p.session.State() == Stopped
}

func (p *Player) handle(cmd ports.Command) {
	p.log.Debugf("command %s", cmd)

	switch cmd.Kind {
	case ports.CommandTogglePause:
		state, err := p.session.togglePause()
		if err != nil {
			p.log.WithError(err).Debug("toggle pause ignored")
			return
		}
		p.sink.Pause(state == Paused)
		p.log.Info(state)

	case ports.CommandSeekRelative:
		base := p.Position()
		if pending, ok := p.pendingSeek.Get(); ok {
			base = pending
		}
		p.requestSeek(base + cmd.Value)

	case ports.CommandSeekAbsolute:
		p.requestSeek(cmd.Value)

	case ports.CommandSetVolume:
		p.session.SetVolume(cmd.Value)
		p.log.Infof("volume %.2f", p.session.Volume())

	case ports.CommandQuit:
		p.stop("quit")
	}
}

func (p *Player) requestSeek(target float64) {
	if s := p.session.State(); s != Playing && s != Paused {
		return
	}
	p.pendingSeek = mo.Some(p.session.ClampTarget(target))
}

func (p *Player) stop(reason string) {
	if p.session.State() == Stopped {
		return
	}
	p.session.stop()
	p.log.Infof("stopped: %s (%d frames)", reason, p.presented)
}
