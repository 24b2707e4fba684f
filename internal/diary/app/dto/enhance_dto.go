package dto

// EnhanceRequest - запрос на улучшение текста дневника.
type EnhanceRequest struct {
	Text string `json:"text"`
}

// EnhanceResponse - результат улучшения. Warning заполняется в деградированном
// режиме (модель не настроена или вызов завершился ошибкой).
type EnhanceResponse struct {
	EnhancedText string `json:"enhancedText"`
	Warning      string `json:"warning,omitempty"`
}
