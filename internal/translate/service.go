package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rahulbhardwaj/dorawi/internal/apperror"
	"github.com/rahulbhardwaj/dorawi/internal/model"
)

// Service runs the whole pipeline for one upload:
// extract → build request → invoke with retry → interpret.
type Service struct {
	invoker *Invoker
	logger  *slog.Logger
}

// NewService creates the translation service.
func NewService(invoker *Invoker, logger *slog.Logger) *Service {
	return &Service{invoker: invoker, logger: logger}
}

// Translate processes a file's bytes and returns the normalized result.
//
// Client-side problems (oversize, unsupported or empty input) surface as
// validation errors before any model call. Upstream overload that survives
// all retries surfaces as apperror.ErrUnavailable so the handler can
// return a throttling message distinct from a generic failure.
func (s *Service) Translate(ctx context.Context, data []byte, mediaType, targetLang string) (model.TranslationResult, error) {
	payload, err := Extract(data, mediaType)
	if err != nil {
		return model.TranslationResult{}, err
	}

	req := BuildRequest(payload, targetLang)

	raw, err := s.invoker.Invoke(ctx, req)
	if err != nil {
		if IsOverloaded(err) {
			s.logger.Warn("model overloaded after retries", slog.String("error", err.Error()))
			return model.TranslationResult{}, apperror.Unavailable("Translation model is overloaded, please try again shortly")
		}
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return model.TranslationResult{}, err
		}
		return model.TranslationResult{}, fmt.Errorf("translate: invoking model: %w", err)
	}

	result := Interpret(req.Shape, payload.Text, raw)

	s.logger.Info("translation completed",
		slog.String("mediaType", mediaType),
		slog.String("targetLang", targetLang),
		slog.Int("originalLen", len(result.Original)),
		slog.Int("translatedLen", len(result.Translated)),
	)

	return result, nil
}
