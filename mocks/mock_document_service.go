package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"lexdocs/internal/domain"
	"lexdocs/internal/service"
)

// MockDocumentService is a mock implementation of service.DocumentService.
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Submit(ctx context.Context, input service.SubmitInput) (*domain.Document, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetStatus(ctx context.Context, tenantID, docID uuid.UUID) (*service.DocumentStatus, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentStatus), args.Error(1)
}

func (m *MockDocumentService) GetResult(ctx context.Context, tenantID, docID uuid.UUID) (*service.DocumentResult, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentResult), args.Error(1)
}

func (m *MockDocumentService) Reprocess(ctx context.Context, tenantID, docID uuid.UUID, forceOCR bool) (*service.DocumentStatus, error) {
	args := m.Called(ctx, tenantID, docID, forceOCR)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentStatus), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Document, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Int(1), args.Error(2)
}

func (m *MockDocumentService) GetDownloadURL(ctx context.Context, tenantID, docID uuid.UUID) (string, error) {
	args := m.Called(ctx, tenantID, docID)
	return args.String(0), args.Error(1)
}
