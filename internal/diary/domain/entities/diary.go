// Package entities defines the domain entities for the diary service.
package entities

import (
	"fmt"
	"strings"
	"time"
)

// Diary представляет собой запись дневника за один календарный день.
// CreatedAt хранит дату, к которой относится запись, а не момент сохранения.
type Diary struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	OriginalContent string    `json:"original_content"`
	AIContent       string    `json:"ai_content"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// DiaryPatch описывает частичное обновление записи; nil-поля не изменяются.
type DiaryPatch struct {
	Title           *string
	OriginalContent *string
	AIContent       *string
	UpdatedAt       *time.Time
}

// NewDiary creates a new diary entry dated to the given subject day.
// Both timestamps start equal; UpdatedAt diverges on the first update.
func NewDiary(title, originalContent, aiContent string, day time.Time) *Diary {
	if title == "" {
		title = DefaultTitle(day)
	}
	return &Diary{
		Title:           title,
		OriginalContent: originalContent,
		AIContent:       aiContent,
		CreatedAt:       day,
		UpdatedAt:       day,
	}
}

// DefaultTitle возвращает автоматический заголовок вида "M/D diary".
func DefaultTitle(day time.Time) string {
	day = day.UTC()
	return fmt.Sprintf("%d/%d diary", int(day.Month()), day.Day())
}

// DayRange возвращает границы UTC-суток [00:00, 24:00), в которые попадает t.
func DayRange(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// MonthRange возвращает границы UTC-месяца [первое число, первое число следующего).
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Day возвращает UTC-день, к которому относится запись.
func (d *Diary) Day() time.Time {
	start, _ := DayRange(d.CreatedAt)
	return start
}

// WordCount возвращает число слов в тексте; используется для статистики профиля.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
