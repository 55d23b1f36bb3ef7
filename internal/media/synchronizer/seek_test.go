package synchronizer

import (
	"context"
	"errors"
	"testing"

	"github.com/GoldenFealla/SyncPlayerGo/internal/mocks"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSeeker(t *testing.T) {
	Convey("Given a playing session with filled clock state", t, func() {
		ctx := context.Background()
		f := newFixture(10)
		b := NewBuffering(f.audio, f.sink)
		k := NewSeeker(f.audio, f.video, f.sink, b)
		s := NewSession(1, 0.3, mo.Some(10.0))
		var st ClockState

		So(b.Fill(ctx, s, &st), ShouldBeNil)
		So(s.start(), ShouldBeNil)
		st.VideoBasis.Set(0)
		f.sink.Pause(false)
		f.sink.Events = nil

		Convey("Seeking drains the sink before any new audio is enqueued", func() {
			So(k.Seek(ctx, s, &st, 3), ShouldBeNil)

			So(f.sink.Events[0], ShouldEqual, "pause")
			So(f.sink.Events[1], ShouldEqual, "clear")
			So(f.sink.Events[2], ShouldEqual, "enqueue")
			So(f.sink.Events[len(f.sink.Events)-1], ShouldEqual, "play")
			So(s.State(), ShouldEqual, Playing)
		})

		Convey("Both readers are repositioned and both bases are reset", func() {
			So(k.Seek(ctx, s, &st, 3), ShouldBeNil)

			So(f.audio.Seeks, ShouldResemble, []float64{3})
			So(f.video.Seeks, ShouldResemble, []float64{3})
			So(st.AudioBasis.Value(), ShouldEqual, 3.0)
			So(st.VideoStarted(), ShouldBeFalse)
			So(st.Chunks, ShouldEqual, 15)
		})

		Convey("Targets are clamped to the known duration", func() {
			So(k.Seek(ctx, s, &st, 42), ShouldBeNil)
			So(k.Seek(ctx, s, &st, -3), ShouldBeNil)
			So(f.audio.Seeks, ShouldResemble, []float64{10, 0})
		})

		Convey("Targets are only floored at zero when the duration is unknown", func() {
			s.Duration = mo.None[float64]()
			So(k.Seek(ctx, s, &st, 42), ShouldBeNil)
			So(f.video.Seeks, ShouldResemble, []float64{42})
		})

		Convey("A failing reader seek is logged and playback continues", func() {
			f.video.SeekErr = mocks.ErrMockSeek
			So(k.Seek(ctx, s, &st, 3), ShouldBeNil)
			So(f.audio.Seeks, ShouldResemble, []float64{3})
			So(st.AudioStarted(), ShouldBeTrue)
			So(s.State(), ShouldEqual, Playing)
		})

		Convey("Audio landing before the target rebases on where it landed", func() {
			f.audio.Granularity = 2
			So(k.Seek(ctx, s, &st, 3), ShouldBeNil)
			So(st.AudioBasis.Value(), ShouldEqual, 2.0)
			So(st.AudioBasis.Rebase(f.audio.Starts[15]), ShouldEqual, 0)
		})

		Convey("A paused session stays paused with the sink paused", func() {
			_, err := s.togglePause()
			So(err, ShouldBeNil)
			f.sink.Pause(true)

			So(k.Seek(ctx, s, &st, 3), ShouldBeNil)
			So(s.State(), ShouldEqual, Paused)
			So(f.sink.Paused(), ShouldBeTrue)
		})

		Convey("A refill error is reported after the state is restored", func() {
			f.audio.DecodeErrAfter = f.audio.Reads + 1
			err := k.Seek(ctx, s, &st, 3)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, mocks.ErrMockDecode), ShouldBeTrue)
			So(s.State(), ShouldEqual, Playing)
		})

		Convey("Seeking a stopped session is rejected", func() {
			s.stop()
			err := k.Seek(ctx, s, &st, 3)
			So(errors.Is(err, ErrInvalidTransition), ShouldBeTrue)
			So(f.audio.Seeks, ShouldBeEmpty)
		})
	})
}
