package testutil

import "context"

// MockSource is a mock implementation of the Source interface for testing
type MockSource struct {
	FetchFunc  func(ctx context.Context) (float64, error)
	SymbolFunc func() string

	// Calls counts how many times Fetch was invoked.
	Calls int
}

// Fetch implements the Source interface
func (m *MockSource) Fetch(ctx context.Context) (float64, error) {
	m.Calls++
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return 0, nil
}

// Symbol implements the Source interface
func (m *MockSource) Symbol() string {
	if m.SymbolFunc != nil {
		return m.SymbolFunc()
	}
	return "MOCK"
}

// NewMockSource creates a simple mock source with predefined values
func NewMockSource(symbol string, value float64, err error) *MockSource {
	return &MockSource{
		FetchFunc: func(ctx context.Context) (float64, error) {
			return value, err
		},
		SymbolFunc: func() string {
			return symbol
		},
	}
}

// MockOracle is a mock market-state oracle for testing
type MockOracle struct {
	Open  bool
	Err   error
	Calls int
}

// IsOpen implements the tracker.Oracle interface
func (m *MockOracle) IsOpen(ctx context.Context, symbol string) (bool, error) {
	m.Calls++
	return m.Open, m.Err
}
