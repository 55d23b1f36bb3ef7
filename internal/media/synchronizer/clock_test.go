package synchronizer

import (
	"context"
	"testing"

	"github.com/GoldenFealla/SyncPlayerGo/internal/mocks"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAudioClock(t *testing.T) {
	Convey("Given an audio clock over a sink", t, func() {
		sink := mocks.NewSink(stereo48k)
		clock := NewAudioClock(sink)
		var st ClockState

		Convey("It is invalid before any chunk was enqueued", func() {
			_, ok := clock.Now(&st)
			So(ok, ShouldBeFalse)

			st.AudioBasis.Set(2)
			_, ok = clock.Now(&st)
			So(ok, ShouldBeFalse)
		})

		Convey("When one second was enqueued ending at 10.5s", func() {
			st.AudioBasis.Set(9.5)
			st.LastEnqueuedEnd = 10.5
			st.EnqueuedBytes = 192000
			st.Chunks = 1

			Convey("Half a second still queued puts the clock at 10.0s", func() {
				sink.SetQueued(96000)
				now, ok := clock.Now(&st)
				So(ok, ShouldBeTrue)
				So(now, ShouldAlmostEqual, 10.0, 1e-9)

				rel, _ := clock.Relative(&st)
				So(rel, ShouldAlmostEqual, 0.5, 1e-9)
				So(clock.QueuedSeconds(), ShouldAlmostEqual, 0.5, 1e-9)
			})

			Convey("A queue larger than what was enqueued contributes nothing", func() {
				sink.SetQueued(400000)
				now, ok := clock.Now(&st)
				So(ok, ShouldBeTrue)
				So(now, ShouldEqual, 10.5)
			})
		})
	})
}

func TestAudioClockMonotonic(t *testing.T) {
	Convey("Without seeks the audio clock never goes backwards", t, func() {
		sink := mocks.NewSink(stereo48k)
		sink.DrainPerQuery = 1000
		sink.Pause(false)

		reader := mocks.NewAudioReader(stereo48k, 2)
		b := NewBuffering(reader, sink)
		s := NewSession(1, 0.3, mo.Some(2.0))
		clock := NewAudioClock(sink)
		var st ClockState

		So(b.Fill(context.Background(), s, &st), ShouldBeNil)

		prev, ok := clock.Now(&st)
		So(ok, ShouldBeTrue)

		for i := 0; i < 500; i++ {
			So(b.TopUp(context.Background(), s, &st, nil), ShouldBeNil)
			now, ok := clock.Now(&st)
			So(ok, ShouldBeTrue)
			So(now, ShouldBeGreaterThanOrEqualTo, prev)
			prev = now
		}

		So(b.Exhausted(), ShouldBeTrue)
		So(prev, ShouldBeLessThanOrEqualTo, 2.0)
	})
}
