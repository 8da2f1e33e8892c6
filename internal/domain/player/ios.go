package player

// IOSCategory is an iOS audio session category. Ignored on other platforms.
type IOSCategory string

const (
	IOSCategoryPlayback      IOSCategory = "playback"
	IOSCategoryPlayAndRecord IOSCategory = "playAndRecord"
	IOSCategoryMultiRoute    IOSCategory = "multiRoute"
	IOSCategoryAmbient       IOSCategory = "ambient"
	IOSCategorySoloAmbient   IOSCategory = "soloAmbient"
	IOSCategoryRecord        IOSCategory = "record"
)

// Valid reports whether c is a known category.
func (c IOSCategory) Valid() bool {
	switch c {
	case IOSCategoryPlayback, IOSCategoryPlayAndRecord, IOSCategoryMultiRoute,
		IOSCategoryAmbient, IOSCategorySoloAmbient, IOSCategoryRecord:
		return true
	}
	return false
}

// IOSCategoryMode is an iOS audio session mode. Ignored on other platforms.
type IOSCategoryMode string

const (
	IOSCategoryModeDefault        IOSCategoryMode = "default"
	IOSCategoryModeGameChat       IOSCategoryMode = "gameChat"
	IOSCategoryModeMeasurement    IOSCategoryMode = "measurement"
	IOSCategoryModeMoviePlayback  IOSCategoryMode = "moviePlayback"
	IOSCategoryModeSpokenAudio    IOSCategoryMode = "spokenAudio"
	IOSCategoryModeVideoChat      IOSCategoryMode = "videoChat"
	IOSCategoryModeVideoRecording IOSCategoryMode = "videoRecording"
	IOSCategoryModeVoiceChat      IOSCategoryMode = "voiceChat"
	IOSCategoryModeVoicePrompt    IOSCategoryMode = "voicePrompt"
)

// Valid reports whether m is a known mode.
func (m IOSCategoryMode) Valid() bool {
	switch m {
	case IOSCategoryModeDefault, IOSCategoryModeGameChat, IOSCategoryModeMeasurement,
		IOSCategoryModeMoviePlayback, IOSCategoryModeSpokenAudio, IOSCategoryModeVideoChat,
		IOSCategoryModeVideoRecording, IOSCategoryModeVoiceChat, IOSCategoryModeVoicePrompt:
		return true
	}
	return false
}

// IOSCategoryOptions is a single iOS audio session category option.
type IOSCategoryOptions string

const (
	IOSCategoryOptionsMixWithOthers                        IOSCategoryOptions = "mixWithOthers"
	IOSCategoryOptionsDuckOthers                           IOSCategoryOptions = "duckOthers"
	IOSCategoryOptionsInterruptSpokenAudioAndMixWithOthers IOSCategoryOptions = "interruptSpokenAudioAndMixWithOthers"
	IOSCategoryOptionsAllowBluetooth                       IOSCategoryOptions = "allowBluetooth"
	IOSCategoryOptionsAllowBluetoothA2DP                   IOSCategoryOptions = "allowBluetoothA2DP"
	IOSCategoryOptionsAllowAirPlay                         IOSCategoryOptions = "allowAirPlay"
	IOSCategoryOptionsDefaultToSpeaker                     IOSCategoryOptions = "defaultToSpeaker"
)

// Valid reports whether o is a known option.
func (o IOSCategoryOptions) Valid() bool {
	switch o {
	case IOSCategoryOptionsMixWithOthers, IOSCategoryOptionsDuckOthers,
		IOSCategoryOptionsInterruptSpokenAudioAndMixWithOthers, IOSCategoryOptionsAllowBluetooth,
		IOSCategoryOptionsAllowBluetoothA2DP, IOSCategoryOptionsAllowAirPlay,
		IOSCategoryOptionsDefaultToSpeaker:
		return true
	}
	return false
}
