// Package api defines the service interfaces consumed by HTTP handlers.
package api

import "context"

// EnhanceService определяет интерфейс сервиса улучшения текста дневника.
// Ошибка возвращается только для ошибок валидации; сбои модели и отсутствие
// конфигурации превращаются в placeholder-ответ с warning.
type EnhanceService interface {
	Enhance(ctx context.Context, text string) (enhanced string, warning string, err error)
}
