package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"aidiary/internal/diary/app"
)

var errModelUnavailable = errors.New("model unavailable")

type mockRewriter struct {
	mock.Mock
}

func (m *mockRewriter) Rewrite(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func TestEnhanceValidation(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		expectedErr error
	}{
		{
			name:        "empty text",
			text:        "",
			expectedErr: app.ErrTextRequired,
		},
		{
			name:        "whitespace-only text",
			text:        " \n\t  ",
			expectedErr: app.ErrTextRequired,
		},
		{
			name:        "text above the limit",
			text:        strings.Repeat("a", app.MaxTextLength+1),
			expectedErr: app.ErrTextTooLong,
		},
		{
			name:        "multibyte text above the limit",
			text:        strings.Repeat("감", app.MaxTextLength+1),
			expectedErr: app.ErrTextTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rewriter := new(mockRewriter)
			useCase := app.NewEnhanceUseCase(rewriter)

			enhanced, warning, err := useCase.Enhance(context.Background(), tt.text)

			require.ErrorIs(t, err, tt.expectedErr)
			assert.Empty(t, enhanced)
			assert.Empty(t, warning)
			rewriter.AssertNotCalled(t, "Rewrite", mock.Anything, mock.Anything)
		})
	}
}

func TestEnhanceAtTheLengthLimit(t *testing.T) {
	// Ровно 5000 символов проходят валидацию и доходят до модели.
	text := strings.Repeat("감", app.MaxTextLength)

	rewriter := new(mockRewriter)
	rewriter.On("Rewrite", mock.Anything, text).Return("rewritten", nil).Once()

	useCase := app.NewEnhanceUseCase(rewriter)
	enhanced, warning, err := useCase.Enhance(context.Background(), text)

	require.NoError(t, err)
	assert.Equal(t, "rewritten", enhanced)
	assert.Empty(t, warning)
	rewriter.AssertExpectations(t)
}

func TestEnhanceSuccess(t *testing.T) {
	rewriter := new(mockRewriter)
	rewriter.On("Rewrite", mock.Anything, "met friends, had coffee").
		Return("A warm afternoon unfolded over coffee with friends.", nil).Once()

	useCase := app.NewEnhanceUseCase(rewriter)
	enhanced, warning, err := useCase.Enhance(context.Background(), "met friends, had coffee")

	require.NoError(t, err)
	assert.Equal(t, "A warm afternoon unfolded over coffee with friends.", enhanced)
	assert.Empty(t, warning)
	rewriter.AssertExpectations(t)
}

func TestEnhanceWithoutConfiguredModel(t *testing.T) {
	useCase := app.NewEnhanceUseCase(nil)

	enhanced, warning, err := useCase.Enhance(context.Background(), "hello")

	require.NoError(t, err)
	assert.Contains(t, enhanced, "hello")
	assert.Contains(t, enhanced, "demo mode")
	assert.Equal(t, app.WarningNotConfigured, warning)
}

func TestEnhanceModelFailureFallback(t *testing.T) {
	rewriter := new(mockRewriter)
	rewriter.On("Rewrite", mock.Anything, "my day was fine").Return("", errModelUnavailable).Once()

	useCase := app.NewEnhanceUseCase(rewriter)
	enhanced, warning, err := useCase.Enhance(context.Background(), "my day was fine")

	require.NoError(t, err, "model failure must not surface as an error")
	assert.Contains(t, enhanced, "my day was fine")
	assert.Equal(t, app.WarningUnstable, warning)
	rewriter.AssertExpectations(t)
}
