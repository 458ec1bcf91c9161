package domain

// SettingGlobalTranscription is the fixed key of the singleton global
// transcription switch.
const SettingGlobalTranscription = "global_transcription"

// AppSetting is a named boolean switch. The settings store upserts the
// row with IsEnabled=true on first read, so absence is never an error.
type AppSetting struct {
	Key       string `json:"key"`
	IsEnabled bool   `json:"is_enabled"`
}
