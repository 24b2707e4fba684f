// Package billing содержит HTTP-обработчики колбэков платежного провайдера.
// Провайдер - непрозрачный коллаборатор: обработчики только пересылают ключ
// авторизации и делают редирект; хранение подписки сюда не входит.
package billing

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"aidiary/internal/diary/app/dto"
	"aidiary/internal/diary/ports/services"
	"aidiary/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerIssue   = "handling issue billing key request"
	LogHandlerSuccess = "handling billing success callback"
	LogHandlerFail    = "handling billing fail callback"

	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgMissingKeys        = "customerKey and authKey are required"
	ErrMsgNotConfigured      = "billing is not configured"
	ErrMsgIssueFailed        = "failed to issue billing key"
)

const subscriptionPath = "/subscription"

// Handler обработчик HTTP-запросов платежного провайдера.
// billingClient равен nil, когда секретный ключ провайдера не задан.
type Handler struct {
	billingClient services.BillingClient
}

// NewHandler создает новый экземпляр обработчика биллинга.
func NewHandler(billingClient services.BillingClient) *Handler {
	return &Handler{billingClient: billingClient}
}

// Issue обменивает ключ авторизации на биллинг-ключ у провайдера.
func (h *Handler) Issue(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Issue"))
	log.Debug(requestCtx, LogHandlerIssue)

	var req dto.IssueBillingKeyRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if req.CustomerKey == "" || req.AuthKey == "" {
		log.Warn(requestCtx, ErrMsgMissingKeys)
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgMissingKeys,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	if h.billingClient == nil {
		log.Error(requestCtx, ErrMsgNotConfigured)
		if err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": ErrMsgNotConfigured,
		}); err != nil {
			return fmt.Errorf("error sending 500 response: %w", err)
		}
		return nil
	}

	auth, err := h.billingClient.IssueBillingKey(requestCtx, req.CustomerKey, req.AuthKey)
	if err != nil {
		log.Error(requestCtx, ErrMsgIssueFailed, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": ErrMsgIssueFailed,
		}); err != nil {
			return fmt.Errorf("error sending bad gateway response: %w", err)
		}
		return nil
	}

	if err := ctx.JSON(auth); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Success обрабатывает колбэк успешной авторизации: выпускает биллинг-ключ
// и делает редирект на страницу подписки.
func (h *Handler) Success(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Success"))
	log.Debug(requestCtx, LogHandlerSuccess)

	customerKey := ctx.Query("customerKey")
	authKey := ctx.Query("authKey")
	plan := ctx.Query("plan", "monthly")

	if customerKey == "" || authKey == "" {
		log.Warn(requestCtx, "billing callback is missing parameters")
		return redirect(ctx, url.Values{"error": {"missing_params"}})
	}

	if h.billingClient == nil {
		log.Error(requestCtx, ErrMsgNotConfigured)
		return redirect(ctx, url.Values{"error": {"billing_not_configured"}})
	}

	if _, err := h.billingClient.IssueBillingKey(requestCtx, customerKey, authKey); err != nil {
		log.Error(requestCtx, ErrMsgIssueFailed, zap.Error(err))
		return redirect(ctx, url.Values{"error": {"billing_issue_failed"}})
	}

	log.Info(requestCtx, "billing key issued", zap.String("plan", plan))
	return redirect(ctx, url.Values{"success": {"true"}, "plan": {plan}})
}

// Fail обрабатывает колбэк неуспешной авторизации.
func (h *Handler) Fail(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Fail"))
	log.Debug(requestCtx, LogHandlerFail)

	code := ctx.Query("code", "UNKNOWN")
	message := ctx.Query("message", "billing authorization failed")

	log.Warn(requestCtx, "billing authorization failed",
		zap.String("code", code),
		zap.String("message", message))

	return redirect(ctx, url.Values{
		"error":   {"billing_auth_failed"},
		"code":    {code},
		"message": {message},
	})
}

func redirect(ctx fiber.Ctx, params url.Values) error {
	if err := ctx.Redirect().To(subscriptionPath + "?" + params.Encode()); err != nil {
		return fmt.Errorf("error sending redirect: %w", err)
	}
	return nil
}
