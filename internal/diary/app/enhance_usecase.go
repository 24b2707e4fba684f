// Package app implements application business logic for the diary service.
package app

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"aidiary/internal/diary/ports/services"
	"aidiary/pkg/logger"
)

// MaxTextLength - максимальная длина исходного текста в символах.
const MaxTextLength = 5000

// Ошибки валидации; сообщения отдаются пользователю.
var (
	ErrTextRequired = errors.New("text is required")
	ErrTextTooLong  = errors.New("text too long, max 5000 characters")
)

// Предупреждения деградированного режима.
const (
	WarningNotConfigured = "AI enhancement is not configured; a demo response was returned"
	WarningUnstable      = "AI service is temporarily unstable; your original entry is preserved"
)

// EnhanceUseCase представляет собой бизнес-логику улучшения текста дневника.
// rewriter равен nil, когда модель не настроена; это штатный демо-режим.
type EnhanceUseCase struct {
	rewriter services.TextRewriter
}

// NewEnhanceUseCase создает новый экземпляр EnhanceUseCase.
func NewEnhanceUseCase(rewriter services.TextRewriter) *EnhanceUseCase {
	return &EnhanceUseCase{rewriter: rewriter}
}

// Enhance проверяет текст и возвращает его улучшенную версию.
// Отсутствие модели и сбой вызова не являются ошибками: в обоих случаях
// возвращается placeholder с исходным текстом и заполненным warning.
// Делается ровно одна попытка вызова модели, без повторов и кэширования.
func (uc *EnhanceUseCase) Enhance(ctx context.Context, text string) (string, string, error) {
	if strings.TrimSpace(text) == "" {
		return "", "", ErrTextRequired
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", "", ErrTextTooLong
	}

	log := logger.Log(ctx).With(zap.String("method", "EnhanceUseCase.Enhance"))

	if uc.rewriter == nil {
		log.Warn(ctx, "rewriting model is not configured, using demo fallback")
		return demoFallback(text), WarningNotConfigured, nil
	}

	enhanced, err := uc.rewriter.Rewrite(ctx, text)
	if err != nil {
		log.Error(ctx, "rewriting model call failed, using failure fallback", zap.Error(err))
		return failureFallback(text), WarningUnstable, nil
	}

	return enhanced, "", nil
}

// demoFallback - ответ при отсутствии настроенной модели.
func demoFallback(text string) string {
	return "AI Memory Enhancement (demo mode)\n\n" +
		text +
		"\n\nLooking back, even the plainest moments of the day carry a quiet meaning of their own." +
		"\n\nNote: the AI rewriting service is not configured yet. Set an API key to enable real enhancement."
}

// failureFallback - ответ при сбое вызова модели.
func failureFallback(text string) string {
	return "AI Memory Enhancement (temporarily unavailable)\n\n" +
		text +
		"\n\nThe AI service ran into a temporary problem. Please try again in a little while." +
		"\n\nNote: your original entry is safely preserved."
}
