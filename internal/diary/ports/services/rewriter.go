// Package services defines outbound service interfaces for the diary service.
package services

import "context"

// TextRewriter определяет интерфейс генеративной модели, переписывающей текст дневника.
// Реализация делает ровно одну попытку вызова и возвращает ошибку как есть.
type TextRewriter interface {
	Rewrite(ctx context.Context, text string) (string, error)
}
