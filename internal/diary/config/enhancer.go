package config

// apiKeyPlaceholder - значение из шаблона .env, которое не считается настоящим ключом.
const apiKeyPlaceholder = "your_openai_api_key"

// EnhancerConfig содержит настройки модели, переписывающей текст дневника.
type EnhancerConfig struct {
	APIKey string `yaml:"api_key" env:"DIARY_OPENAI_API_KEY" env-default:""`
	Model  string `yaml:"model" env:"DIARY_OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

// IsConfigured сообщает, задан ли настоящий ключ модели.
func (e *EnhancerConfig) IsConfigured() bool {
	return e.APIKey != "" && e.APIKey != apiKeyPlaceholder
}
