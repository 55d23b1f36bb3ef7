package config

import (
	"errors"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func setup(t *testing.T, file string) error {
	t.Helper()
	viper.Reset()
	return Setup(file)
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Fs = afero.NewMemMapFs()

		Convey("Should initialize without a config file", func() {
			So(setup(t, ""), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			So(setup(t, ""), ShouldBeNil)
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
		})

		Convey("Defaults load into a valid snapshot", func() {
			So(setup(t, ""), ShouldBeNil)
			p, err := Load()
			So(err, ShouldBeNil)
			So(p.TargetBuffer, ShouldEqual, 0.3)
			So(p.PollInterval, ShouldEqual, time.Millisecond)
			So(p.Audio.SampleRate, ShouldEqual, 48000)
			So(p.Audio.Channels, ShouldEqual, 2)
			So(p.Frontend, ShouldEqual, "window")

			cfg := p.Synchronizer()
			So(cfg.TargetBuffer, ShouldEqual, 0.3)
			So(cfg.IdleInterval, ShouldEqual, 10*time.Millisecond)
		})

		Convey("Environment variables override defaults", func() {
			t.Setenv("SYNCPLAYER_PLAYBACK_TARGET_BUFFER", "0.5")
			t.Setenv("SYNCPLAYER_UI_FRONTEND", "console")
			So(setup(t, ""), ShouldBeNil)

			p, err := Load()
			So(err, ShouldBeNil)
			So(p.TargetBuffer, ShouldEqual, 0.5)
			So(p.Frontend, ShouldEqual, "console")
		})

		Convey("An explicit config file is read", func() {
			So(afero.WriteFile(Fs, "/etc/syncplayer.toml", []byte("[playback]\nseek_step = 10\n\n[audio]\nsample_rate = 44100\n"), 0o644), ShouldBeNil)
			So(setup(t, "/etc/syncplayer.toml"), ShouldBeNil)

			p, err := Load()
			So(err, ShouldBeNil)
			So(p.SeekStep, ShouldEqual, 10.0)
			So(p.Audio.SampleRate, ShouldEqual, 44100)
		})

		Convey("A missing explicit config file is an error", func() {
			So(setup(t, "/nope.toml"), ShouldNotBeNil)
		})

		Convey("Invalid values are rejected", func() {
			So(setup(t, ""), ShouldBeNil)
			viper.Set(AudioChannels, 6)
			_, err := Load()
			So(errors.Is(err, ErrInvalid), ShouldBeTrue)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("playback.target_buffer"), ShouldEqual, "playback_target_buffer")
		})
	})
}
