// Package voice handles audio capture input. Transcription itself is a
// stub: payloads are decoded and discarded, pending integration with a real
// speech-to-text service. Callers fall back to the text command path.
package voice

import (
	"encoding/base64"
	"log/slog"
)

// supportedLanguages maps language codes to locale identifiers accepted by
// the (future) transcription backend.
var supportedLanguages = map[string]string{
	"en": "en-US",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"hi": "hi-IN",
}

// languageNames maps language codes to display names.
var languageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"hi": "Hindi",
}

// Transcriber converts captured audio to text.
type Transcriber struct{}

// NewTranscriber creates a Transcriber.
func NewTranscriber() *Transcriber {
	return &Transcriber{}
}

// Transcribe decodes a base64 audio payload and returns its transcript.
// Malformed input is logged and swallowed; both that case and the current
// stub implementation yield an empty transcript with ok=false, never an
// error.
func (t *Transcriber) Transcribe(audioBase64, language string) (transcript string, ok bool) {
	if _, err := base64.StdEncoding.DecodeString(audioBase64); err != nil {
		slog.Warn("failed to decode audio payload", "error", err, "language", language)
		return "", false
	}

	// TODO: integrate a speech-to-text backend; see supportedLanguages for
	// the locale mapping it will need.
	return "", false
}

// SupportedLanguages returns the code -> display-name table for every
// language the transcriber accepts.
func (t *Transcriber) SupportedLanguages() map[string]string {
	out := make(map[string]string, len(supportedLanguages))
	for code := range supportedLanguages {
		name, ok := languageNames[code]
		if !ok {
			name = code
		}
		out[code] = name
	}
	return out
}
