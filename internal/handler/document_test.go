package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/rahulbhardwaj/dorawi/internal/handler"
	"github.com/rahulbhardwaj/dorawi/internal/model"
	"github.com/rahulbhardwaj/dorawi/internal/translate"
	"github.com/stretchr/testify/assert"
)

type stubGenerator struct {
	calls  int
	result string
	err    error
}

func (g *stubGenerator) GenerateContent(_ context.Context, _ translate.Request) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.result, nil
}

func newDocumentHandler(gen translate.Generator) *handler.DocumentHandler {
	policy := translate.RetryPolicy{MaxAttempts: 4, InitialDelay: time.Millisecond}
	svc := translate.NewService(translate.NewInvoker(gen, policy, testLogger()), testLogger())
	return handler.NewDocumentHandler(svc, testLogger())
}

// multipartUpload builds a multipart body with a "file" part of the given
// content type and a "targetLang" field.
func multipartUpload(t *testing.T, filename, contentType string, data []byte, targetLang string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	partHeader.Set("Content-Type", contentType)
	part, err := w.CreatePart(partHeader)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)

	assert.NoError(t, w.WriteField("targetLang", targetLang))
	assert.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestDocumentHandler_TranslateText(t *testing.T) {
	gen := &stubGenerator{result: "Hello world"}
	h := newDocumentHandler(gen)

	body, contentType := multipartUpload(t, "doc.txt", "text/plain", []byte("Hola mundo"), "en")
	req := httptest.NewRequest(http.MethodPost, "/api/document/translate", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.HandleTranslate(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var res model.TranslationResult
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Equal(t, "Hola mundo", res.Original)
	assert.Equal(t, "Hello world", res.Translated)
	assert.Equal(t, 1, gen.calls)
}

func TestDocumentHandler_TranslateImage(t *testing.T) {
	gen := &stubGenerator{result: "```json\n{\"original\":\"Hola\",\"translated\":\"Hello\"}\n```"}
	h := newDocumentHandler(gen)

	body, contentType := multipartUpload(t, "sign.png", "image/png", []byte{0x89, 'P', 'N', 'G'}, "en")
	req := httptest.NewRequest(http.MethodPost, "/api/document/translate", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.HandleTranslate(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var res model.TranslationResult
	assert.NoError(t, json.NewDecoder(rr.Body).Decode(&res))
	assert.Equal(t, "Hola", res.Original)
	assert.Equal(t, "Hello", res.Translated)
}

func TestDocumentHandler_UnsupportedTypeNeverInvokesModel(t *testing.T) {
	gen := &stubGenerator{result: "unused"}
	h := newDocumentHandler(gen)

	body, contentType := multipartUpload(t, "archive.zip", "application/zip", []byte("zipzip"), "en")
	req := httptest.NewRequest(http.MethodPost, "/api/document/translate", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.HandleTranslate(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, gen.calls)
}

func TestDocumentHandler_MissingFile(t *testing.T) {
	gen := &stubGenerator{result: "unused"}
	h := newDocumentHandler(gen)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	assert.NoError(t, w.WriteField("targetLang", "en"))
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/document/translate", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rr := httptest.NewRecorder()

	h.HandleTranslate(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, gen.calls)
}

func TestDocumentHandler_OverloadedModelIs503(t *testing.T) {
	gen := &stubGenerator{err: errors.New("the model is overloaded")}
	h := newDocumentHandler(gen)

	body, contentType := multipartUpload(t, "doc.txt", "text/plain", []byte("Hola"), "en")
	req := httptest.NewRequest(http.MethodPost, "/api/document/translate", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	h.HandleTranslate(rr, req)

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, 4, gen.calls)
}
