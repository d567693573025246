package testutil

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/mock"

	"audioscribe/internal/api/v1/dto"
)

// MockServices bundles the service mocks used by handler tests.
type MockServices struct {
	TranscriptionService *MockTranscriptionService
}

// NewMockServices creates all service mocks and asserts their expectations
// on test cleanup.
func NewMockServices(t *testing.T) *MockServices {
	ms := &MockServices{
		TranscriptionService: &MockTranscriptionService{},
	}
	t.Cleanup(func() {
		ms.TranscriptionService.AssertExpectations(t)
	})
	return ms
}

// MockTranscriptionService is a testify mock of services.TranscriptionService.
type MockTranscriptionService struct {
	mock.Mock
}

func (m *MockTranscriptionService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*dto.UploadResponse, error) {
	args := m.Called(ctx, file, header)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UploadResponse), args.Error(1)
}

func (m *MockTranscriptionService) Get(ctx context.Context, id string) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptionResponse), args.Error(1)
}

func (m *MockTranscriptionService) List(ctx context.Context, q dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaginatedTranscriptionsResponse), args.Error(1)
}

func (m *MockTranscriptionService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTranscriptionService) Retry(ctx context.Context, id string) (*dto.TranscriptionResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscriptionResponse), args.Error(1)
}

func (m *MockTranscriptionService) RetryAllFailed(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
