package mock

import (
	"context"

	"github.com/poiesic/wikiq/ai"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via a function field and records the
// messages of the last call for assertions.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, returns a canned completion.
	GenerateFunc func(ctx context.Context, messages []ai.Message) (*ai.Result, error)

	// LastMessages holds the messages from the most recent Generate call.
	LastMessages []ai.Message

	callCount int
}

// NewMockGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns a fixed completion unless GenerateFunc is set.
func (m *MockGenerator) Generate(ctx context.Context, messages []ai.Message) (*ai.Result, error) {
	m.callCount++
	m.LastMessages = messages

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}

	return &ai.Result{
		Text: "mock answer",
		Usage: ai.Usage{
			CompletionTime:   0.01,
			PromptTime:       0.002,
			TotalTime:        0.012,
			CompletionTokens: 5,
			PromptTokens:     42,
			TotalTokens:      47,
		},
	}, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count, recorded messages, and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.LastMessages = nil
	m.GenerateFunc = nil
}
