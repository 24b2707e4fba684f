package api

import (
	"context"
	"time"

	"aidiary/internal/diary/app/dto"
	"aidiary/internal/diary/domain/entities"
)

// DiaryService определяет интерфейс дневника для HTTP-обработчиков.
// Операции не возвращают ошибок: при недоступном хранилище отдаются
// безопасные значения по умолчанию (nil, false, пустой срез).
type DiaryService interface {
	// SaveForDate создает запись за день day или обновляет существующую.
	// Возвращает сохраненную запись и признак создания новой.
	SaveForDate(ctx context.Context, day time.Time, title, originalContent, aiContent string) (*entities.Diary, bool)
	FindByDate(ctx context.Context, day time.Time) *entities.Diary
	GetByID(ctx context.Context, id int64) *entities.Diary
	DaysInMonth(ctx context.Context, year int, month time.Month) []int
	ListAll(ctx context.Context) []*entities.Diary
	Update(ctx context.Context, id int64, patch entities.DiaryPatch) bool
	Delete(ctx context.Context, id int64) bool
	Stats(ctx context.Context, now time.Time) *dto.ProfileStats
}
