package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"aidiary/internal/diary/domain/entities"
)

func TestNewDiary(t *testing.T) {
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("explicit title is kept", func(t *testing.T) {
		diary := entities.NewDiary("Cafe day", "met friends, had coffee", "", day)

		assert.Equal(t, "Cafe day", diary.Title)
		assert.Equal(t, "met friends, had coffee", diary.OriginalContent)
		assert.Equal(t, day, diary.CreatedAt)
		assert.Equal(t, diary.CreatedAt, diary.UpdatedAt)
	})

	t.Run("empty title is derived from the day", func(t *testing.T) {
		diary := entities.NewDiary("", "quiet evening", "", day)

		assert.Equal(t, "6/1 diary", diary.Title)
	})
}

func TestDefaultTitle(t *testing.T) {
	tests := []struct {
		name     string
		day      time.Time
		expected string
	}{
		{
			name:     "single digit month and day",
			day:      time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			expected: "6/1 diary",
		},
		{
			name:     "double digit month and day",
			day:      time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			expected: "12/25 diary",
		},
		{
			name:     "non-UTC timestamp is normalized",
			day:      time.Date(2024, 3, 1, 2, 0, 0, 0, time.FixedZone("KST", 9*3600)),
			expected: "2/29 diary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, entities.DefaultTitle(tt.day))
		})
	}
}

func TestDayRange(t *testing.T) {
	start, end := entities.DayRange(time.Date(2024, 1, 1, 20, 15, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), end)

	// Момент за миллисекунду до полуночи остается в тех же сутках.
	lateStart, _ := entities.DayRange(time.Date(2024, 1, 1, 23, 59, 59, 999_000_000, time.UTC))
	assert.Equal(t, start, lateStart)
}

func TestMonthRange(t *testing.T) {
	t.Run("regular month", func(t *testing.T) {
		start, end := entities.MonthRange(2024, time.March)

		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("december rolls into the next year", func(t *testing.T) {
		start, end := entities.MonthRange(2024, time.December)

		assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
	})
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, entities.WordCount(""))
	assert.Equal(t, 0, entities.WordCount("   "))
	assert.Equal(t, 4, entities.WordCount("met friends, had coffee"))
	assert.Equal(t, 2, entities.WordCount("  spaced   out  "))
}
