package dto

// IssueBillingKeyRequest - запрос на выдачу биллинг-ключа у платежного провайдера.
type IssueBillingKeyRequest struct {
	CustomerKey string `json:"customerKey"`
	AuthKey     string `json:"authKey"`
}
