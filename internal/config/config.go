// Package config loads settings from defaults, an optional config file and
// SYNCPLAYER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GoldenFealla/SyncPlayerGo/internal/media"
	"github.com/GoldenFealla/SyncPlayerGo/internal/media/synchronizer"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	Name      = "syncplayer"
	EnvPrefix = "SYNCPLAYER"
)

// EnvKeyReplacer maps keys to environment variable names.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Fs is the filesystem config files are read from.
var Fs afero.Fs = afero.NewOsFs()

var ErrInvalid = errors.New("config: invalid value")

// Setup registers defaults and environment bindings and reads the config
// file. An explicit file must exist; the default location is optional.
func Setup(file string) error {
	viper.SetFs(Fs)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	viper.AutomaticEnv()

	viper.SetTypeByDefaultValue(true)
	for key, field := range Default {
		viper.SetDefault(key, field.Value)
	}

	if file != "" {
		viper.SetConfigFile(file)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("config: reading %s failed: %w", file, err)
		}
		return nil
	}

	viper.SetConfigName(Name)
	if dir, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(dir, Name))
	}
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: reading config failed: %w", err)
	}
	return nil
}

// Playback is a typed snapshot of the settings one session needs.
type Playback struct {
	TargetBuffer float64
	PollInterval time.Duration
	IdleInterval time.Duration
	SeekStep     float64
	Volume       float64
	VolumeStep   float64

	Audio       media.AudioFormat
	AudioBuffer time.Duration

	Width    int
	Height   int
	Frontend string
}

// Load reads the current settings and validates them.
func Load() (Playback, error) {
	p := Playback{
		TargetBuffer: viper.GetFloat64(PlaybackTargetBuffer),
		PollInterval: viper.GetDuration(PlaybackPollInterval),
		IdleInterval: viper.GetDuration(PlaybackIdleInterval),
		SeekStep:     viper.GetFloat64(PlaybackSeekStep),
		Volume:       lo.Clamp(viper.GetFloat64(PlaybackVolume), 0, 1),
		VolumeStep:   viper.GetFloat64(PlaybackVolumeStep),
		Audio: media.AudioFormat{
			SampleRate: viper.GetInt(AudioSampleRate),
			Channels:   viper.GetInt(AudioChannels),
		},
		AudioBuffer: viper.GetDuration(AudioBuffer),
		Width:       viper.GetInt(VideoWidth),
		Height:      viper.GetInt(VideoHeight),
		Frontend:    viper.GetString(UIFrontend),
	}

	switch {
	case p.TargetBuffer <= 0:
		return p, fmt.Errorf("%w: %s must be positive", ErrInvalid, PlaybackTargetBuffer)
	case p.PollInterval <= 0:
		return p, fmt.Errorf("%w: %s must be positive", ErrInvalid, PlaybackPollInterval)
	case p.Audio.SampleRate <= 0:
		return p, fmt.Errorf("%w: %s must be positive", ErrInvalid, AudioSampleRate)
	case p.Audio.Channels != 1 && p.Audio.Channels != 2:
		return p, fmt.Errorf("%w: %s must be 1 or 2", ErrInvalid, AudioChannels)
	case !lo.Contains([]string{"window", "console"}, p.Frontend):
		return p, fmt.Errorf("%w: %s must be window or console", ErrInvalid, UIFrontend)
	}

	return p, nil
}

// Synchronizer builds the engine configuration.
func (p Playback) Synchronizer() synchronizer.Config {
	cfg := synchronizer.DefaultConfig()
	cfg.TargetBuffer = p.TargetBuffer
	cfg.PollInterval = p.PollInterval
	cfg.IdleInterval = p.IdleInterval
	cfg.Volume = p.Volume
	return cfg
}
