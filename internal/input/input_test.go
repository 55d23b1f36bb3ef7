package input

import (
	"errors"
	"sync"
	"testing"

	"github.com/GoldenFealla/SyncPlayerGo/internal/ports"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	tests := []struct {
		line string
		want ports.Command
	}{
		{"p", ports.TogglePause()},
		{"  pause ", ports.TogglePause()},
		{"f", ports.SeekRelative(5)},
		{"B", ports.SeekRelative(-5)},
		{"s 12.5", ports.SeekAbsolute(12.5)},
		{"seek 0", ports.SeekAbsolute(0)},
		{"v 0.25", ports.SetVolume(0.25)},
		{"q", ports.Quit()},
		{"exit", ports.Quit()},
	}

	for _, tt := range tests {
		got, err := Parse(tt.line, 5)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.line, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}

	for _, line := range []string{"", "x", "s", "s abc", "v 1 2", "s inf", "s -Inf", "v NaN"} {
		if _, err := Parse(line, 5); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownCommand", line, err)
		}
	}
}

func TestQueue(t *testing.T) {
	Convey("Given a command queue", t, func() {
		q := NewQueue()

		Convey("Poll returns commands in order and empties it", func() {
			q.Push(ports.TogglePause(), ports.SeekRelative(5))
			q.Push(ports.Quit())

			So(q.Poll(), ShouldResemble, []ports.Command{
				ports.TogglePause(), ports.SeekRelative(5), ports.Quit(),
			})
			So(q.Poll(), ShouldBeEmpty)
		})

		Convey("Push signals wake without blocking", func() {
			q.Push(ports.TogglePause())
			q.Push(ports.TogglePause())

			select {
			case <-q.Wake():
			default:
				t.Fatal("wake was not signalled")
			}
			So(q.Poll(), ShouldHaveLength, 2)
		})

		Convey("Concurrent pushes are all delivered", func() {
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 100; j++ {
						q.Push(ports.SetVolume(0.5))
					}
				}()
			}
			wg.Wait()
			So(q.Poll(), ShouldHaveLength, 800)
		})
	})
}
