package voice

import (
	"encoding/base64"
	"testing"
)

func TestTranscribe_InvalidBase64IsSwallowed(t *testing.T) {
	tr := NewTranscriber()

	transcript, ok := tr.Transcribe("not-valid-base64!!!", "en")
	if ok {
		t.Error("expected ok=false for malformed payload")
	}
	if transcript != "" {
		t.Errorf("transcript = %q, want empty", transcript)
	}
}

func TestTranscribe_ValidPayloadStubbed(t *testing.T) {
	tr := NewTranscriber()

	payload := base64.StdEncoding.EncodeToString([]byte("audio-bytes"))
	transcript, ok := tr.Transcribe(payload, "en")
	if ok {
		t.Error("stub should report no transcript")
	}
	if transcript != "" {
		t.Errorf("transcript = %q, want empty", transcript)
	}
}

func TestSupportedLanguages(t *testing.T) {
	tr := NewTranscriber()

	langs := tr.SupportedLanguages()
	if len(langs) != 5 {
		t.Fatalf("got %d languages, want 5", len(langs))
	}
	if langs["en"] != "English" {
		t.Errorf("en = %q, want English", langs["en"])
	}
	if langs["hi"] != "Hindi" {
		t.Errorf("hi = %q, want Hindi", langs["hi"])
	}
}
