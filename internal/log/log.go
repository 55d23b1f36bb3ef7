// Package log configures the process-wide logrus logger.
package log

import (
	"fmt"
	"io"
	"os"

	"github.com/GoldenFealla/SyncPlayerGo/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Fs is the filesystem log files are written to.
var Fs afero.Fs = afero.NewOsFs()

var file afero.File

// Setup applies the logs.* settings. Without logs.file, logs go to stderr.
func Setup() error {
	var out io.Writer = os.Stderr
	color := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())

	if path := viper.GetString(config.LogsFile); path != "" {
		f, err := Fs.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("log: opening %s failed: %w", path, err)
		}
		Close()
		file = f
		out = f
		color = false
	}
	logrus.SetOutput(out)

	if viper.GetBool(config.LogsJson) {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:      color,
			DisableColors:    !color,
			FullTimestamp:    true,
			TimestampFormat:  "15:04:05.000",
			QuoteEmptyFields: true,
		})
	}

	level, err := logrus.ParseLevel(viper.GetString(config.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
		logrus.WithError(err).Warn("unknown log level, using info")
	}
	logrus.SetLevel(level)

	return nil
}

// Close releases the log file, if any.
func Close() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}
