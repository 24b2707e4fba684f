package config

// BillingConfig содержит настройки платежного провайдера.
type BillingConfig struct {
	BaseURL   string `yaml:"base_url" env:"DIARY_BILLING_BASE_URL" env-default:"https://api.tosspayments.com"`
	SecretKey string `yaml:"secret_key" env:"DIARY_BILLING_SECRET_KEY" env-default:""`
}

// IsConfigured сообщает, задан ли секретный ключ провайдера.
func (b *BillingConfig) IsConfigured() bool {
	return b.SecretKey != ""
}
