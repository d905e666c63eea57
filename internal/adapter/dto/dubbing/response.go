package dubbing

// UploadCSVResponse is returned when both audio files were generated
type UploadCSVResponse struct {
	Message          string `json:"message"`
	EnglishAudioURL  string `json:"english_audio_url"`
	LanguageAudioURL string `json:"language_audio_url"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
