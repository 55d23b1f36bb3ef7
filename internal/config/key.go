package config

// Configuration keys.
const (
	PlaybackTargetBuffer = "playback.target_buffer"
	PlaybackPollInterval = "playback.poll_interval"
	PlaybackIdleInterval = "playback.idle_interval"
	PlaybackSeekStep     = "playback.seek_step"
	PlaybackVolume       = "playback.volume"
	PlaybackVolumeStep   = "playback.volume_step"

	AudioSampleRate = "audio.sample_rate"
	AudioChannels   = "audio.channels"
	AudioBuffer     = "audio.buffer"

	VideoWidth  = "video.width"
	VideoHeight = "video.height"

	UIFrontend = "ui.frontend"

	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
	LogsFile  = "logs.file"
)
