package services

import "context"

// BillingAuthorization описывает результат выдачи биллинг-ключа платежным провайдером.
type BillingAuthorization struct {
	BillingKey  string `json:"billingKey"`
	CustomerKey string `json:"customerKey"`
	Method      string `json:"method,omitempty"`
	CardCompany string `json:"cardCompany,omitempty"`
}

// BillingClient определяет интерфейс внешнего платежного провайдера.
// Провайдер для этого сервиса - непрозрачный коллаборатор: ключ авторизации
// пересылается как есть, хранение подписки остается за его пределами.
type BillingClient interface {
	IssueBillingKey(ctx context.Context, customerKey, authKey string) (*BillingAuthorization, error)
}
