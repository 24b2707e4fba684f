// Package openai содержит адаптер генеративной модели, переписывающей текст дневника.
package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"aidiary/internal/diary/ports/services"
	"aidiary/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrCallModel     = "failed to call rewriting model"
	ErrEmptyResponse = "model returned no choices"
)

const maxOutputTokens = 1000

// rewriteInstruction - фиксированная инструкция модели. Выход должен остаться
// обычными повествовательными предложениями без разметки.
const rewriteInstruction = `You rewrite short diary entries into emotionally rich, literary, natural-sounding prose.
Preserve every fact exactly as written: do not exaggerate, embellish, or invent anything.
Express the feelings and circumstances behind the entry more fully, in a warm and lyrical voice.
Write plain narrative sentences only: no markdown or special characters, no emoji, no titles or headings.`

// Rewriter реализует интерфейс services.TextRewriter поверх OpenAI chat completions.
type Rewriter struct {
	client openai.Client
	model  string
}

// NewRewriter создает новый адаптер модели. Клиент конструируется один раз
// при старте и только при наличии ключа; решение принимает вызывающий.
func NewRewriter(apiKey, model string) services.TextRewriter {
	return &Rewriter{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}
}

// Rewrite делает один вызов модели без повторов и возвращает переписанный текст.
func (r *Rewriter) Rewrite(ctx context.Context, text string) (string, error) {
	log := logger.Log(ctx).With(zap.String("method", "Rewriter.Rewrite"))
	log.Debug(ctx, "calling rewriting model", zap.String("model", r.model), zap.Int("input_len", len(text)))

	completion, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               r.model,
		MaxCompletionTokens: openai.Int(maxOutputTokens),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(rewriteInstruction),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		log.Error(ctx, ErrCallModel, zap.Error(err))
		return "", fmt.Errorf("%s: %w", ErrCallModel, err)
	}

	if len(completion.Choices) == 0 {
		log.Error(ctx, ErrEmptyResponse)
		return "", errors.New(ErrEmptyResponse)
	}

	log.Debug(ctx, "model call completed", zap.Int("output_len", len(completion.Choices[0].Message.Content)))
	return completion.Choices[0].Message.Content, nil
}
