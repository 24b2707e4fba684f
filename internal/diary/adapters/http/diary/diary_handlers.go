// Package diary содержит HTTP-обработчики для управления записями дневника.
package diary

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"aidiary/internal/diary/app/dto"
	"aidiary/internal/diary/domain/entities"
	"aidiary/internal/diary/ports/api"
	"aidiary/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerSaveDiary    = "handling save diary request"
	LogHandlerGetDiary     = "handling get diary request"
	LogHandlerGetByDate    = "handling get diary by date request"
	LogHandlerListDiaries  = "handling list diaries request"
	LogHandlerCalendar     = "handling calendar request"
	LogHandlerUpdateDiary  = "handling update diary request"
	LogHandlerDeleteDiary  = "handling delete diary request"
	LogHandlerProfileStats = "handling profile stats request"

	ErrMsgInvalidDiaryID     = "invalid diary id"
	ErrMsgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	ErrMsgInvalidMonth       = "invalid year or month"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgMissingContent     = "original_content and ai_content are required"
	ErrMsgDiaryNotFound      = "diary not found"
	ErrMsgSaveFailed         = "failed to save diary"
	ErrMsgUpdateFailed       = "failed to update diary"
	ErrMsgDeleteFailed       = "failed to delete diary"
)

const dateLayout = "2006-01-02"

// Handler обработчик HTTP-запросов для работы с дневником.
type Handler struct {
	diaryService api.DiaryService
}

// NewHandler создает новый экземпляр обработчика дневника.
func NewHandler(diaryService api.DiaryService) *Handler {
	return &Handler{diaryService: diaryService}
}

// SaveDiary обрабатывает сохранение дневника за выбранный день:
// создает запись или обновляет существующую за те же сутки.
func (h *Handler) SaveDiary(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.SaveDiary"))
	log.Debug(requestCtx, LogHandlerSaveDiary)

	var req dto.SaveDiaryRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	if req.OriginalContent == "" || req.AIContent == "" {
		log.Warn(requestCtx, ErrMsgMissingContent)
		return badRequest(ctx, ErrMsgMissingContent)
	}

	day, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		log.Warn(requestCtx, ErrMsgInvalidDate, zap.String("date", req.Date))
		return badRequest(ctx, ErrMsgInvalidDate)
	}

	diary, created := h.diaryService.SaveForDate(requestCtx, day, req.Title, req.OriginalContent, req.AIContent)
	if diary == nil {
		log.Error(requestCtx, ErrMsgSaveFailed)
		if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgSaveFailed,
		}); err != nil {
			return fmt.Errorf("error sending 500 response: %w", err)
		}
		return nil
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	if err := ctx.Status(status).JSON(diary); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetDiary обрабатывает запрос на получение записи по ID.
func (h *Handler) GetDiary(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetDiary"))
	log.Debug(requestCtx, LogHandlerGetDiary)

	id, err := strconv.ParseInt(ctx.Params("diary_id"), 10, 64)
	if err != nil {
		log.Warn(requestCtx, ErrMsgInvalidDiaryID)
		return badRequest(ctx, ErrMsgInvalidDiaryID)
	}

	diary := h.diaryService.GetByID(requestCtx, id)
	if diary == nil {
		if err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgDiaryNotFound,
		}); err != nil {
			return fmt.Errorf("error sending not found response: %w", err)
		}
		return nil
	}

	if err := ctx.JSON(diary); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetDiaryByDate обрабатывает запрос на получение записи за календарный день.
func (h *Handler) GetDiaryByDate(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetDiaryByDate"))
	log.Debug(requestCtx, LogHandlerGetByDate)

	day, err := time.ParseInLocation(dateLayout, ctx.Params("date"), time.UTC)
	if err != nil {
		log.Warn(requestCtx, ErrMsgInvalidDate, zap.String("date", ctx.Params("date")))
		return badRequest(ctx, ErrMsgInvalidDate)
	}

	diary := h.diaryService.FindByDate(requestCtx, day)
	if diary == nil {
		if err := ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgDiaryNotFound,
		}); err != nil {
			return fmt.Errorf("error sending not found response: %w", err)
		}
		return nil
	}

	if err := ctx.JSON(diary); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListDiaries обрабатывает запрос на получение всех записей (новые первыми).
func (h *Handler) ListDiaries(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListDiaries"))
	log.Debug(requestCtx, LogHandlerListDiaries)

	if err := ctx.JSON(h.diaryService.ListAll(requestCtx)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Calendar обрабатывает запрос на номера дней месяца с записями.
// Месяц принимается в диапазоне 1-12.
func (h *Handler) Calendar(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Calendar"))
	log.Debug(requestCtx, LogHandlerCalendar)

	year, yearErr := strconv.Atoi(ctx.Query("year"))
	month, monthErr := strconv.Atoi(ctx.Query("month"))
	if yearErr != nil || monthErr != nil || month < 1 || month > 12 {
		log.Warn(requestCtx, ErrMsgInvalidMonth,
			zap.String("year", ctx.Query("year")),
			zap.String("month", ctx.Query("month")))
		return badRequest(ctx, ErrMsgInvalidMonth)
	}

	days := h.diaryService.DaysInMonth(requestCtx, year, time.Month(month))
	if err := ctx.JSON(dto.CalendarResponse{Year: year, Month: month, Days: days}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateDiary обрабатывает частичное обновление записи.
func (h *Handler) UpdateDiary(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateDiary"))
	log.Debug(requestCtx, LogHandlerUpdateDiary)

	id, err := strconv.ParseInt(ctx.Params("diary_id"), 10, 64)
	if err != nil {
		log.Warn(requestCtx, ErrMsgInvalidDiaryID)
		return badRequest(ctx, ErrMsgInvalidDiaryID)
	}

	var req dto.UpdateDiaryRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return badRequest(ctx, ErrMsgInvalidRequestBody)
	}

	now := time.Now().UTC()
	patch := entities.DiaryPatch{
		Title:           req.Title,
		OriginalContent: req.OriginalContent,
		AIContent:       req.AIContent,
		UpdatedAt:       &now,
	}

	if !h.diaryService.Update(requestCtx, id, patch) {
		log.Error(requestCtx, ErrMsgUpdateFailed, zap.Int64("diaryID", id))
		if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgUpdateFailed,
		}); err != nil {
			return fmt.Errorf("error sending 500 response: %w", err)
		}
		return nil
	}

	if diary := h.diaryService.GetByID(requestCtx, id); diary != nil {
		if err := ctx.JSON(diary); err != nil {
			return fmt.Errorf("error sending response: %w", err)
		}
		return nil
	}

	if err := ctx.JSON(fiber.Map{"updated": true}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteDiary обрабатывает запрос на удаление записи.
func (h *Handler) DeleteDiary(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteDiary"))
	log.Debug(requestCtx, LogHandlerDeleteDiary)

	id, err := strconv.ParseInt(ctx.Params("diary_id"), 10, 64)
	if err != nil {
		log.Warn(requestCtx, ErrMsgInvalidDiaryID)
		return badRequest(ctx, ErrMsgInvalidDiaryID)
	}

	if !h.diaryService.Delete(requestCtx, id) {
		log.Error(requestCtx, ErrMsgDeleteFailed, zap.Int64("diaryID", id))
		if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgDeleteFailed,
		}); err != nil {
			return fmt.Errorf("error sending 500 response: %w", err)
		}
		return nil
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ProfileStats обрабатывает запрос статистики профиля.
func (h *Handler) ProfileStats(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ProfileStats"))
	log.Debug(requestCtx, LogHandlerProfileStats)

	stats := h.diaryService.Stats(requestCtx, time.Now().UTC())
	if err := ctx.JSON(stats); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func badRequest(ctx fiber.Ctx, msg string) error {
	if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	}); err != nil {
		return fmt.Errorf("failed to send bad request response: %w", err)
	}
	return nil
}
