package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rahulbhardwaj/dorawi/internal/apperror"
	"github.com/rahulbhardwaj/dorawi/internal/translate"
)

// translateTimeout bounds one document translation end to end, including
// all retry waits inside the invoker.
const translateTimeout = 2 * time.Minute

// DocumentHandler runs the upload → translate pipeline.
type DocumentHandler struct {
	translator *translate.Service
	logger     *slog.Logger
}

func NewDocumentHandler(translator *translate.Service, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{translator: translator, logger: logger}
}

// HandleTranslate accepts a multipart upload and returns the translation.
//
// HTTP: POST /api/document/translate
// Auth: required
// Form fields: "file" (the document), "targetLang" (language code)
func (h *DocumentHandler) HandleTranslate(w http.ResponseWriter, r *http.Request) {
	// The server starts without an upstream model configured; only this
	// endpoint is unavailable then.
	if h.translator == nil {
		writeError(w, apperror.Unavailable("Translation model is not configured"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), translateTimeout)
	defer cancel()

	// Cap the request body slightly above the per-file limit so an
	// oversized upload still reaches the extractor's own size check and
	// gets its specific error message.
	r.Body = http.MaxBytesReader(w, r.Body, translate.MaxFileSize+1<<20)

	if err := r.ParseMultipartForm(translate.MaxFileSize); err != nil {
		writeError(w, apperror.ValidationFailed("file", "could not parse upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperror.ValidationFailed("file", "No file uploaded"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logger.Error("reading upload failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	mediaType := header.Header.Get("Content-Type")
	if mediaType == "" {
		mediaType = http.DetectContentType(data)
	}

	result, err := h.translator.Translate(ctx, data, mediaType, r.FormValue("targetLang"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
