package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"lexdocs/internal/domain"
	"lexdocs/internal/port"
)

// MockClassifier is a mock implementation of port.Classifier.
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, input port.ClassifyInput) (*domain.Classification, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classification), args.Error(1)
}
