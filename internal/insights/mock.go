package insights

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAIClient is a testify mock of AIClient.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}
