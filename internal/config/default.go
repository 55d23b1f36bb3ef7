package config

import "time"

// Field is a configuration key with its factory default.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Default holds every known field by key.
var Default = make(map[string]Field)

func init() {
	for _, f := range []Field{
		{PlaybackTargetBuffer, 0.3, "Seconds of audio kept queued ahead of the audible position"},
		{PlaybackPollInterval, time.Millisecond, "Sleep between audio clock polls while a frame waits"},
		{PlaybackIdleInterval, 10 * time.Millisecond, "Tick period while paused"},
		{PlaybackSeekStep, 5.0, "Seconds moved by a relative seek"},
		{PlaybackVolume, 1.0, "Initial gain, 0 to 1"},
		{PlaybackVolumeStep, 0.1, "Gain change per volume key press"},

		{AudioSampleRate, 48000, "Output sample rate"},
		{AudioChannels, 2, "Output channel count, 1 or 2"},
		{AudioBuffer, 50 * time.Millisecond, "Audio device buffer"},

		{VideoWidth, 640, "Initial window width"},
		{VideoHeight, 480, "Initial window height"},

		{UIFrontend, "window", "Frontend: window or console"},

		{LogsLevel, "info", "Log level: trace, debug, info, warn, error"},
		{LogsJson, false, "Write logs as JSON"},
		{LogsFile, "", "Append logs to this file instead of stderr"},
	} {
		Default[f.Key] = f
	}
}
