package translate

import (
	"strings"
	"testing"
)

func TestBuildRequest_TextShape(t *testing.T) {
	req := BuildRequest(Payload{Kind: KindText, Text: "Hola mundo"}, "en")
	if req.Shape != ShapePlainText {
		t.Errorf("Shape = %v, want ShapePlainText", req.Shape)
	}
	if req.Image != nil {
		t.Error("text request should carry no image")
	}
	if !strings.Contains(req.Instruction, "Translate the following text to English") {
		t.Errorf("instruction missing language directive: %q", req.Instruction)
	}
	if !strings.Contains(req.Instruction, "Hola mundo") {
		t.Error("instruction missing source text")
	}
}

func TestBuildRequest_ImageShape(t *testing.T) {
	img := []byte{1, 2, 3}
	req := BuildRequest(Payload{Kind: KindImage, Image: img, MIME: "image/jpeg"}, "es")
	if req.Shape != ShapeStructuredPair {
		t.Errorf("Shape = %v, want ShapeStructuredPair", req.Shape)
	}
	if len(req.Image) != 3 || req.ImageMIME != "image/jpeg" {
		t.Errorf("image not attached: %+v", req)
	}
	if !strings.Contains(req.Instruction, "translation to Spanish") {
		t.Errorf("instruction missing language directive: %q", req.Instruction)
	}
	if !strings.Contains(req.Instruction, `"original"`) || !strings.Contains(req.Instruction, `"translated"`) {
		t.Error("instruction should request the two-key JSON object")
	}
}

func TestBuildRequest_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("ñ", maxPromptChars+500)
	req := BuildRequest(Payload{Kind: KindText, Text: long}, "en")
	count := strings.Count(req.Instruction, "ñ")
	if count != maxPromptChars {
		t.Errorf("embedded %d source runes, want %d", count, maxPromptChars)
	}
}

func TestLanguageName(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"", "English"},
		{"en", "English"},
		{"es", "Spanish"},
		{"pt-BR", "Brazilian Portuguese"},
		{"de", "German"},
		{"!!not-a-code!!", "!!not-a-code!!"},
	}
	for _, tt := range tests {
		if got := languageName(tt.code); got != tt.want {
			t.Errorf("languageName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
