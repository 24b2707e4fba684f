// Package repositories defines repository interfaces for the diary service.
package repositories

import (
	"context"
	"time"

	"aidiary/internal/diary/domain/entities"
)

// DiaryRepository определяет интерфейс для работы с хранилищем дневника.
// Реализации возвращают ошибки как есть; политика деградации живет уровнем выше.
type DiaryRepository interface {
	// FindByDate возвращает запись за UTC-сутки, в которые попадает day,
	// или nil без ошибки, если записи нет. При аномальных дубликатах
	// возвращается самая поздняя по created_at.
	FindByDate(ctx context.Context, day time.Time) (*entities.Diary, error)
	// GetByID возвращает запись по идентификатору или nil без ошибки.
	GetByID(ctx context.Context, id int64) (*entities.Diary, error)
	// ListDaysInMonth возвращает отсортированные уникальные номера дней месяца,
	// за которые есть записи.
	ListDaysInMonth(ctx context.Context, year int, month time.Month) ([]int, error)
	// ListAll возвращает все записи, отсортированные по created_at по убыванию.
	ListAll(ctx context.Context) ([]*entities.Diary, error)
	Create(ctx context.Context, diary *entities.Diary) (int64, error)
	Update(ctx context.Context, id int64, patch entities.DiaryPatch) error
	Delete(ctx context.Context, id int64) error
}
