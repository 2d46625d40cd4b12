package translate

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Shape declares what the raw model output is expected to look like.
// It is derived from the payload kind, never sniffed from the response.
type Shape int

const (
	// ShapePlainText: the raw output is the translation itself.
	ShapePlainText Shape = iota
	// ShapeStructuredPair: the raw output is a JSON object with
	// "original" and "translated" keys, possibly fenced in markdown.
	ShapeStructuredPair
)

// Request is a fully built model request: the instruction, optional inline
// image bytes, and the response shape the interpreter should expect.
type Request struct {
	Instruction string
	Image       []byte
	ImageMIME   string
	Shape       Shape
}

// maxPromptChars caps how much source text is embedded in the instruction.
// Longer documents are translated on the prefix only — a deliberate scope
// limit, not a bug.
const maxPromptChars = 3000

// BuildRequest turns a payload and a target language into the exact
// request sent upstream.
//
// Text payloads get a translation-only instruction that forbids markdown
// and explanations. Image payloads get a combined transcribe-and-translate
// instruction requesting a two-key JSON object, with the image bytes
// attached inline.
func BuildRequest(p Payload, targetLang string) Request {
	langName := languageName(targetLang)

	if p.Kind == KindImage {
		return Request{
			Instruction: fmt.Sprintf(
				`Transcribe the text in this image exactly as is, then provide a translation to %s. Return the result in JSON format with two keys: "original" (the transcribed text) and "translated" (the translation). Do not include markdown code blocks, just the raw JSON string.`,
				langName,
			),
			Image:     p.Image,
			ImageMIME: p.MIME,
			Shape:     ShapeStructuredPair,
		}
	}

	text := p.Text
	if runes := []rune(text); len(runes) > maxPromptChars {
		text = string(runes[:maxPromptChars])
	}

	return Request{
		Instruction: fmt.Sprintf(
			"Translate the following text to %s. Return ONLY the translated text, no markdown, no explanations.\n\nText:\n%s",
			langName, text,
		),
		Shape: ShapePlainText,
	}
}

// languageName resolves a language code ("es", "pt-BR") to its English
// display name. The lookup is best-effort: an unknown or unparseable code
// falls back to the raw code, and an empty target defaults to English.
func languageName(code string) string {
	if code == "" {
		return "English"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return code
}
