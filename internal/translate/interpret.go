package translate

import (
	"encoding/json"
	"strings"

	"github.com/rahulbhardwaj/dorawi/internal/model"
)

// Placeholder strings substituted when a structured image response is
// incomplete or unparseable.
const (
	placeholderNoText    = "[No text found]"
	placeholderBadTransl = "[Translation error]"
	placeholderOCRFailed = "[Image OCR Failed]"
)

// Interpret normalizes the raw model output into a TranslationResult.
//
// For ShapePlainText the raw text IS the translation; original is the
// extracted source text the caller supplies. For ShapeStructuredPair the
// raw text is parsed as a (possibly markdown-fenced) JSON object.
//
// Interpret never fails: a malformed structured response degrades to a
// partial result with the raw text preserved as the translation, so the
// caller still gets whatever value the model produced.
func Interpret(shape Shape, original, raw string) model.TranslationResult {
	if shape == ShapeStructuredPair {
		return interpretStructured(raw)
	}
	return model.TranslationResult{
		Original:   original,
		Translated: strings.TrimSpace(raw),
	}
}

func interpretStructured(raw string) model.TranslationResult {
	// Models sometimes fence the JSON despite being told not to.
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var pair struct {
		Original   string `json:"original"`
		Translated string `json:"translated"`
	}
	if err := json.Unmarshal([]byte(cleaned), &pair); err != nil {
		// Graceful degradation: keep the raw text as the translation.
		return model.TranslationResult{
			Original:   placeholderOCRFailed,
			Translated: raw,
		}
	}

	if pair.Original == "" {
		pair.Original = placeholderNoText
	}
	if pair.Translated == "" {
		pair.Translated = placeholderBadTransl
	}

	return model.TranslationResult{
		Original:   pair.Original,
		Translated: pair.Translated,
	}
}
