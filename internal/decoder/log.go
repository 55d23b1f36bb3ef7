package decoder

import (
	"github.com/asticode/go-astiav"
	"github.com/sirupsen/logrus"
)

// SetLogLevel limits FFmpeg's own console output to match the logrus level.
func SetLogLevel(level logrus.Level) {
	switch {
	case level >= logrus.DebugLevel:
		astiav.SetLogLevel(astiav.LogLevelWarning)
	case level >= logrus.WarnLevel:
		astiav.SetLogLevel(astiav.LogLevelError)
	default:
		astiav.SetLogLevel(astiav.LogLevelQuiet)
	}
}
