// Package dto содержит структуры запросов и ответов HTTP API.
package dto

// SaveDiaryRequest - запрос на сохранение дневника за выбранный день.
// Пустой Title заменяется заголовком, производным от даты.
type SaveDiaryRequest struct {
	Title           string `json:"title"`
	OriginalContent string `json:"original_content"`
	AIContent       string `json:"ai_content"`
	Date            string `json:"date"`
}

// UpdateDiaryRequest - частичное обновление записи; nil-поля не изменяются.
type UpdateDiaryRequest struct {
	Title           *string `json:"title"`
	OriginalContent *string `json:"original_content"`
	AIContent       *string `json:"ai_content"`
}

// CalendarResponse - номера дней месяца, за которые есть записи.
type CalendarResponse struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Days  []int `json:"days"`
}

// MonthlyCount - количество записей за один календарный месяц.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// ProfileStats - агрегированная статистика для страницы профиля.
type ProfileStats struct {
	TotalDiaries         int            `json:"totalDiaries"`
	ThisMonthDiaries     int            `json:"thisMonthDiaries"`
	AverageWordsOriginal int            `json:"averageWordsOriginal"`
	AverageWordsEnhanced int            `json:"averageWordsEnhanced"`
	Monthly              []MonthlyCount `json:"monthly"`
}
