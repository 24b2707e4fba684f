package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"aidiary/internal/diary/app/dto"
	"aidiary/internal/diary/domain/entities"
	"aidiary/internal/diary/ports/repositories"
	"aidiary/pkg/logger"
)

// Сообщения logger для деградированного режима.
const (
	logStoreNotConfigured = "diary store is not configured, returning default value"
	logStoreFailed        = "diary store operation failed, returning default value"
)

const dayKeyLayout = "2006-01-02"

// DiaryUseCase представляет собой бизнес-логику дневника поверх хранилища.
// repo равен nil, когда база не настроена: каждая операция тогда возвращает
// безопасное значение по умолчанию, а не ошибку. Сбой хранилища обрабатывается
// так же: он логируется и схлопывается в то же значение по умолчанию,
// различить "записи нет" и "база недоступна" вызывающий не может.
type DiaryUseCase struct {
	repo repositories.DiaryRepository

	// Запись за день сериализуется по ключу даты: проверка существования и
	// создание не атомарны на уровне базы.
	mu       sync.Mutex
	dayLocks map[string]*sync.Mutex
}

// NewDiaryUseCase создает новый экземпляр DiaryUseCase.
// repo может быть nil; сервис в этом случае работает в демо-режиме.
func NewDiaryUseCase(repo repositories.DiaryRepository) *DiaryUseCase {
	return &DiaryUseCase{
		repo:     repo,
		dayLocks: make(map[string]*sync.Mutex),
	}
}

// FindByDate возвращает запись за UTC-сутки day или nil.
func (uc *DiaryUseCase) FindByDate(ctx context.Context, day time.Time) *entities.Diary {
	log := logger.Log(ctx).With(zap.String("method", "DiaryUseCase.FindByDate"))
	if uc.repo == nil {
		log.Warn(ctx, logStoreNotConfigured)
		return nil
	}

	diary, err := uc.repo.FindByDate(ctx, day)
	if err != nil {
		log.Error(ctx, logStoreFailed, zap.Error(err))
		return nil
	}
	return diary
}

// GetByID возвращает запись по идентификатору или nil.
func (uc *DiaryUseCase) GetByID(ctx context.Context, id int64) *entities.Diary {
	log := logger.Log(ctx).With(zap.String("method", "DiaryUseCase.GetByID"))
	if uc.repo == nil {
		log.Warn(ctx, logStoreNotConfigured)
		return nil
	}

	diary, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		log.Error(ctx, logStoreFailed, zap.Error(err))
		return nil
	}
	return diary
}

// DaysInMonth возвращает уникальные номера дней месяца с записями.
func (uc *DiaryUseCase) DaysInMonth(ctx context.Context, year int, month time.Month) []int {
	log := logger.Log(ctx).With(zap.String("method", "DiaryUseCase.DaysInMonth"))
	if uc.repo == nil {
		log.Warn(ctx, logStoreNotConfigured)
		return []int{}
	}

	days, err := uc.repo.ListDaysInMonth(ctx, year, month)
	if err != nil {
		log.Error(ctx, logStoreFailed, zap.Error(err))
		return []int{}
	}
	return days
}

// ListAll возвращает все записи по убыванию created_at.
func (uc *DiaryUseCase) ListAll(ctx context.Context) []*entities.Diary {
	log := logger.Log(ctx).With(zap.String("method", "DiaryUseCase.ListAll"))
	if uc.repo == nil {
		log.Warn(ctx, logStoreNotConfigured)
		return []*entities.Diary{}
	}

	diaries, err := uc.repo.ListAll(ctx)
	if err != nil {
		log.Error(ctx, logStoreFailed, zap.Error(err))
		return []*entities.Diary{}
	}
	return diaries
}

// Create вставляет новую запись; created_at и updated_at уже выставлены
// вызывающим на выбранную пользователем дату. Инвариант "одна запись в день"
// здесь не проверяется: за это отвечает SaveForDate.
func (uc *DiaryUseCase) Create(ctx context.Context, diary *entities.Diary) bool {
	log := logger.Log(ctx).With(zap.String("method", "DiaryUseCase.Create"))
	if uc.repo == nil {
		log.Warn(ctx, logStoreNotConfigured)
		return false
	}

	id, err := uc.repo.Create(ctx, diary)
	if err != nil {
		log.Error(ctx, logStoreFailed, zap.Error(err))
		return false
	}
	diary.ID = id
	return true
}

// Update вливает поля patch в запись по id.
func (uc *DiaryUseCase) Update(ctx context.Context, id int64, patch entities.DiaryPatch) bool {
	log := logger.Log(ctx).With(zap.String("method", "DiaryUseCase.Update"))
	if uc.repo == nil {
		log.Warn(ctx, logStoreNotConfigured)
		return false
	}

	if err := uc.repo.Update(ctx, id, patch); err != nil {
		log.Error(ctx, logStoreFailed, zap.Error(err))
		return false
	}
	return true
}

// Delete удаляет запись по идентификатору.
func (uc *DiaryUseCase) Delete(ctx context.Context, id int64) bool {
	log := logger.Log(ctx).With(zap.String("method", "DiaryUseCase.Delete"))
	if uc.repo == nil {
		log.Warn(ctx, logStoreNotConfigured)
		return false
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		log.Error(ctx, logStoreFailed, zap.Error(err))
		return false
	}
	return true
}

// SaveForDate создает запись за день day или обновляет существующую.
// Писатели одного дня сериализуются локальным мьютексом, поэтому два
// конкурентных сохранения не создают дубликат за одни сутки.
func (uc *DiaryUseCase) SaveForDate(ctx context.Context, day time.Time, title, originalContent, aiContent string) (*entities.Diary, bool) {
	log := logger.Log(ctx).With(zap.String("method", "DiaryUseCase.SaveForDate"))
	if uc.repo == nil {
		log.Warn(ctx, logStoreNotConfigured)
		return nil, false
	}

	unlock := uc.lockDay(day)
	defer unlock()

	existing := uc.FindByDate(ctx, day)
	if existing == nil {
		diary := entities.NewDiary(title, originalContent, aiContent, day.UTC())
		if !uc.Create(ctx, diary) {
			return nil, false
		}
		log.Info(ctx, "diary created", zap.Int64("diaryID", diary.ID), zap.Time("day", diary.CreatedAt))
		return diary, true
	}

	now := time.Now().UTC()
	patch := entities.DiaryPatch{
		OriginalContent: &originalContent,
		AIContent:       &aiContent,
		UpdatedAt:       &now,
	}
	if title != "" {
		patch.Title = &title
	}

	if !uc.Update(ctx, existing.ID, patch) {
		return nil, false
	}

	if patch.Title != nil {
		existing.Title = *patch.Title
	}
	existing.OriginalContent = originalContent
	existing.AIContent = aiContent
	existing.UpdatedAt = now

	log.Info(ctx, "diary updated", zap.Int64("diaryID", existing.ID), zap.Time("day", existing.CreatedAt))
	return existing, false
}

// Stats считает статистику профиля по всем записям.
func (uc *DiaryUseCase) Stats(ctx context.Context, now time.Time) *dto.ProfileStats {
	diaries := uc.ListAll(ctx)

	stats := &dto.ProfileStats{
		TotalDiaries: len(diaries),
		Monthly:      []dto.MonthlyCount{},
	}
	if len(diaries) == 0 {
		return stats
	}

	monthStart, _ := entities.MonthRange(now.UTC().Year(), now.UTC().Month())
	monthly := make(map[string]int)
	var totalOriginal, totalEnhanced int

	for _, diary := range diaries {
		if !diary.CreatedAt.Before(monthStart) {
			stats.ThisMonthDiaries++
		}
		totalOriginal += entities.WordCount(diary.OriginalContent)
		totalEnhanced += entities.WordCount(diary.AIContent)
		monthly[diary.CreatedAt.UTC().Format("2006-01")]++
	}

	stats.AverageWordsOriginal = int(float64(totalOriginal)/float64(len(diaries)) + 0.5)
	stats.AverageWordsEnhanced = int(float64(totalEnhanced)/float64(len(diaries)) + 0.5)

	keys := make([]string, 0, len(monthly))
	for key := range monthly {
		keys = append(keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	for _, key := range keys {
		stats.Monthly = append(stats.Monthly, dto.MonthlyCount{Month: key, Count: monthly[key]})
	}

	return stats
}

func (uc *DiaryUseCase) lockDay(day time.Time) func() {
	key := day.UTC().Format(dayKeyLayout)

	uc.mu.Lock()
	lock, ok := uc.dayLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		uc.dayLocks[key] = lock
	}
	uc.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
