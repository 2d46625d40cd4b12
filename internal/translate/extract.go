// Package translate implements the translation request pipeline: content
// extraction, prompt construction, the upstream model call with retry, and
// response interpretation.
package translate

import (
	"bytes"
	"fmt"
	"mime"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/rahulbhardwaj/dorawi/internal/apperror"
)

// MaxFileSize is the upload ceiling. Oversized files are rejected before
// any model call is made.
const MaxFileSize = 5 << 20 // 5 MB

// Kind tags a payload as text-bearing or image-bearing. The same tag later
// selects the response shape the interpreter expects.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// Payload is the translatable content extracted from an upload.
// KindText payloads carry Text; KindImage payloads carry the raw Image
// bytes plus their MIME type for the model to transcribe itself.
type Payload struct {
	Kind  Kind
	Text  string
	Image []byte
	MIME  string
}

// Extract turns a file's bytes and declared media type into a Payload.
//
// Supported types: application/pdf, text/plain, image/*. Anything else is
// rejected up front. Note the asymmetric empty-check: only text/plain
// rejects empty content — PDF text may legitimately be whitespace-only
// depending on the source, and images carry no local text at all.
func Extract(data []byte, mediaType string) (Payload, error) {
	if len(data) == 0 {
		return Payload{}, apperror.ValidationFailed("file", "No file uploaded")
	}
	if len(data) > MaxFileSize {
		return Payload{}, apperror.ValidationFailed("file", "File too large (max 5MB)")
	}

	// Strip parameters like "; charset=utf-8" from multipart headers.
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = parsed
	}
	mediaType = strings.ToLower(mediaType)

	switch {
	case mediaType == "application/pdf":
		text, err := extractPDFText(data)
		if err != nil {
			// A broken extraction is a hard failure, not an empty success.
			return Payload{}, fmt.Errorf("translate: extracting pdf text: %w", err)
		}
		return Payload{Kind: KindText, Text: text, MIME: mediaType}, nil

	case mediaType == "text/plain":
		text := string(data)
		if strings.TrimSpace(text) == "" {
			return Payload{}, apperror.ValidationFailed("file", "Could not extract text from file")
		}
		return Payload{Kind: KindText, Text: text, MIME: mediaType}, nil

	case strings.HasPrefix(mediaType, "image/"):
		return Payload{Kind: KindImage, Image: data, MIME: mediaType}, nil

	default:
		return Payload{}, apperror.ValidationFailed("file", "Unsupported file type. Use PDF, TXT, or Images (PNG/JPEG/WEBP).")
	}
}

func extractPDFText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	textReader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", err
	}
	return buf.String(), nil
}
