package log

import (
	"testing"

	"github.com/GoldenFealla/SyncPlayerGo/internal/config"
	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

func TestSetup(t *testing.T) {
	Convey("Log Setup", t, func() {
		Fs = afero.NewMemMapFs()
		viper.Reset()
		defer Close()

		Convey("Writes to the configured file at the configured level", func() {
			viper.Set(config.LogsFile, "/var/log/syncplayer.log")
			viper.Set(config.LogsLevel, "debug")
			viper.Set(config.LogsJson, true)
			So(Setup(), ShouldBeNil)
			So(logrus.GetLevel(), ShouldEqual, logrus.DebugLevel)

			logrus.WithField("component", "test").Debug("hello")

			b, err := afero.ReadFile(Fs, "/var/log/syncplayer.log")
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `"component":"test"`)
			So(string(b), ShouldContainSubstring, `"msg":"hello"`)
		})

		Convey("Appends to an existing file", func() {
			So(afero.WriteFile(Fs, "/app.log", []byte("old\n"), 0o644), ShouldBeNil)
			viper.Set(config.LogsFile, "/app.log")
			So(Setup(), ShouldBeNil)

			logrus.Info("new")

			b, _ := afero.ReadFile(Fs, "/app.log")
			So(string(b), ShouldStartWith, "old\n")
			So(string(b), ShouldContainSubstring, "new")
		})

		Convey("Falls back to info for an unknown level", func() {
			viper.Set(config.LogsLevel, "loud")
			So(Setup(), ShouldBeNil)
			So(logrus.GetLevel(), ShouldEqual, logrus.InfoLevel)
		})
	})
}
