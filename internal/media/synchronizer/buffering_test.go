package synchronizer

import (
	"context"
	"errors"
	"testing"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/mocks"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func allEqual(b []byte, v int16) bool {
	for _, s := range samplesOf(b) {
		if s != v {
			return false
		}
	}
	return true
}

func TestBuffering(t *testing.T) {
	Convey("Given a buffering controller over a paused sink", t, func() {
		ctx := context.Background()
		sink := mocks.NewSink(stereo48k)
		reader := mocks.NewAudioReader(stereo48k, 10)
		reader.Offset = 1.25
		b := NewBuffering(reader, sink)
		s := NewSession(1, 0.3, mo.Some(10.0))
		var st ClockState

		Convey("Fill tops the sink up to the watermark", func() {
			So(b.Fill(ctx, s, &st), ShouldBeNil)

			// 0.3s of 48kHz stereo S16 is 57600 bytes, 15 chunks of 4096.
			So(sink.Queued(), ShouldEqual, 15*4096)
			So(sink.EnqueueCalls, ShouldEqual, 15)
			So(st.Chunks, ShouldEqual, 15)
			So(st.EnqueuedBytes, ShouldEqual, 15*4096)
			So(st.AudioStarted(), ShouldBeTrue)
			So(st.AudioBasis.Value(), ShouldEqual, 1.25)
			So(st.LastEnqueuedEnd, ShouldAlmostEqual, 1.25+15*1024/48000.0, 1e-9)

			Convey("and a second top-up does nothing while the sink is full", func() {
				So(b.TopUp(ctx, s, &st, nil), ShouldBeNil)
				So(sink.EnqueueCalls, ShouldEqual, 15)
			})

			Convey("and the basis is not moved by later chunks", func() {
				sink.SetQueued(0)
				So(b.TopUp(ctx, s, &st, nil), ShouldBeNil)
				So(st.AudioBasis.Value(), ShouldEqual, 1.25)
			})
		})

		Convey("Gain is applied once at enqueue time", func() {
			s.SetVolume(0.5)
			So(b.Fill(ctx, s, &st), ShouldBeNil)
			So(allEqual(sink.Enqueued[0], 500), ShouldBeTrue)

			Convey("and a volume change only affects later chunks", func() {
				s.SetVolume(0)
				sink.SetQueued(0)
				before := len(sink.Enqueued)

				So(b.TopUp(ctx, s, &st, nil), ShouldBeNil)
				So(len(sink.Enqueued), ShouldBeGreaterThan, before)
				So(allEqual(sink.Enqueued[0], 500), ShouldBeTrue)
				So(allEqual(sink.Enqueued[before], 0), ShouldBeTrue)
			})
		})

		Convey("Zero volume enqueues silence", func() {
			s.SetVolume(0)
			So(b.Fill(ctx, s, &st), ShouldBeNil)
			for _, chunk := range sink.Enqueued {
				So(allEqual(chunk, 0), ShouldBeTrue)
			}
		})

		Convey("End of stream stops the top-up without error", func() {
			reader.Length = 0.05
			So(b.Fill(ctx, s, &st), ShouldBeNil)
			So(sink.EnqueueCalls, ShouldEqual, 3)
			So(b.Exhausted(), ShouldBeTrue)
			So(b.Drained(), ShouldBeFalse)

			sink.SetQueued(0)
			So(b.Drained(), ShouldBeTrue)

			Convey("and Reset allows reading again after a seek", func() {
				b.Reset()
				So(b.Exhausted(), ShouldBeFalse)
			})
		})

		Convey("A sink error skips the feed and retries the same chunk", func() {
			s.SetVolume(0.5)
			sink.FailEnqueues = 1

			So(b.TopUp(ctx, s, &st, nil), ShouldBeNil)
			So(sink.EnqueueCalls, ShouldEqual, 1)
			So(len(sink.Enqueued), ShouldEqual, 0)
			So(reader.Reads, ShouldEqual, 1)
			So(st.Chunks, ShouldEqual, 0)
			So(errors.Is(b.SinkErr(), mocks.ErrSinkFailure), ShouldBeTrue)

			So(b.TopUp(ctx, s, &st, nil), ShouldBeNil)
			So(b.SinkErr(), ShouldBeNil)
			So(len(sink.Enqueued), ShouldEqual, 15)
			So(reader.Reads, ShouldEqual, 15)
			So(allEqual(sink.Enqueued[0], 500), ShouldBeTrue)
		})

		Convey("Cancellation is checked before every chunk", func() {
			calls := 0
			cancel := func() bool {
				calls++
				return calls > 2
			}
			So(b.TopUp(ctx, s, &st, cancel), ShouldBeNil)
			So(sink.EnqueueCalls, ShouldEqual, 2)
		})

		Convey("A decode error is returned", func() {
			reader.DecodeErrAfter = 2
			err := b.Fill(ctx, s, &st)
			So(err, ShouldNotBeNil)
			So(errors.Is(err, media.ErrDecode), ShouldBeTrue)
			So(sink.EnqueueCalls, ShouldEqual, 2)
		})

		Convey("A canceled context ends the top-up", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			err := b.Fill(cctx, s, &st)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(sink.EnqueueCalls, ShouldEqual, 0)
		})
	})
}
