// Package enhance содержит HTTP-обработчики улучшения текста дневника.
package enhance

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"aidiary/internal/diary/app/dto"
	"aidiary/internal/diary/ports/api"
	"aidiary/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerEnhance = "handling enhance request"

	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов улучшения текста.
type Handler struct {
	enhanceService api.EnhanceService
}

// NewHandler создает новый экземпляр обработчика.
func NewHandler(enhanceService api.EnhanceService) *Handler {
	return &Handler{enhanceService: enhanceService}
}

// Enhance обрабатывает запрос на улучшение текста дневника.
// Ошибки валидации возвращают 400; деградированный режим - 200 с warning.
func (h *Handler) Enhance(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Enhance"))
	log.Debug(requestCtx, LogHandlerEnhance)

	var req dto.EnhanceRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	enhanced, warning, err := h.enhanceService.Enhance(requestCtx, req.Text)
	if err != nil {
		log.Warn(requestCtx, "enhance validation failed", zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if err := ctx.JSON(dto.EnhanceResponse{EnhancedText: enhanced, Warning: warning}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
