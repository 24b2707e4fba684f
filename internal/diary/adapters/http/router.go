// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"aidiary/internal/diary/adapters/http/billing"
	"aidiary/internal/diary/adapters/http/diary"
	"aidiary/internal/diary/adapters/http/enhance"
	"aidiary/internal/diary/adapters/http/middleware"
	"aidiary/internal/diary/ports/api"
	"aidiary/internal/diary/ports/services"
)

// SetupRouter настраивает маршрутизацию для HTTP сервера.
func SetupRouter(app *fiber.App, enhanceService api.EnhanceService, diaryService api.DiaryService, billingClient services.BillingClient) {
	enhanceHandler := enhance.NewHandler(enhanceService)
	diaryHandler := diary.NewHandler(diaryService)
	billingHandler := billing.NewHandler(billingClient)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Улучшение текста.
	apiV1.Post("/enhance", enhanceHandler.Enhance)

	// Маршруты дневника. Статические пути регистрируются раньше
	// параметрического :diary_id.
	diaryRoutes := apiV1.Group("/diaries")
	diaryRoutes.Post("/", diaryHandler.SaveDiary)
	diaryRoutes.Get("/", diaryHandler.ListDiaries)
	diaryRoutes.Get("/calendar", diaryHandler.Calendar)
	diaryRoutes.Get("/date/:date", diaryHandler.GetDiaryByDate)
	diaryRoutes.Get("/:diary_id", diaryHandler.GetDiary)
	diaryRoutes.Patch("/:diary_id", diaryHandler.UpdateDiary)
	diaryRoutes.Delete("/:diary_id", diaryHandler.DeleteDiary)

	// Статистика профиля.
	apiV1.Get("/profile/stats", diaryHandler.ProfileStats)

	// Биллинг: выпуск ключа и колбэки провайдера.
	billingRoutes := apiV1.Group("/billing")
	billingRoutes.Post("/issue", billingHandler.Issue)
	billingRoutes.Get("/success", billingHandler.Success)
	billingRoutes.Get("/fail", billingHandler.Fail)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
