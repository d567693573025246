package services

import (
	"context"
	"database/sql"
	"errors"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/metrics"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/runner"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/app/upload"
)

// TranscriptionService is the API-facing record lifecycle surface.
type TranscriptionService interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*dto.UploadResponse, error)
	Get(ctx context.Context, id string) (*dto.TranscriptionResponse, error)
	List(ctx context.Context, q dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error)
	Delete(ctx context.Context, id string) error
	Retry(ctx context.Context, id string) (*dto.TranscriptionResponse, error)
	RetryAllFailed(ctx context.Context) (int64, error)
}

// TranscriptionServiceImpl implements TranscriptionService.
type TranscriptionServiceImpl struct {
	validator *upload.Validator
	store     storage.BlobStore
	dao       repository.RecordDAO
	runner    *runner.Runner
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewTranscriptionService creates the service.
func NewTranscriptionService(
	validator *upload.Validator,
	store storage.BlobStore,
	dao repository.RecordDAO,
	run *runner.Runner,
	m *metrics.Metrics,
	logger *zap.Logger,
) TranscriptionService {
	return &TranscriptionServiceImpl{
		validator: validator,
		store:     store,
		dao:       dao,
		runner:    run,
		metrics:   m,
		logger:    logger,
	}
}

// Upload validates the file, stores it, creates a record, and processes it
// synchronously inside the request. Failures after record creation are
// captured onto the record, so the response still carries the record with
// its terminal state.
func (s *TranscriptionServiceImpl) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*dto.UploadResponse, error) {
	if header == nil {
		s.metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		return nil, apierrors.NewBadRequestError("No audio file provided")
	}

	accepted, err := s.validator.Validate(header.Filename, header.Size)
	if err != nil {
		s.metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			return nil, apierrors.NewBadRequestError(verr.Reason)
		}
		return nil, apierrors.NewBadRequestError(err.Error())
	}

	key, err := s.store.Save(ctx, accepted.Filename, file, accepted.Size)
	if err != nil {
		s.metrics.UploadsTotal.WithLabelValues("storage_error").Inc()
		s.logger.Error("failed to store upload", zap.Error(err))
		return nil, apierrors.NewStorageError("Failed to store uploaded file")
	}

	now := time.Now()
	rec := &model.Record{
		ID:               uuid.New().String(),
		OriginalFilename: accepted.Filename,
		FileSize:         accepted.Size,
		Format:           accepted.Format,
		StorageKey:       key,
		Status:           model.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.dao.Create(ctx, rec); err != nil {
		// No partial record state: remove the blob we just wrote.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			s.logger.Error("failed to remove orphaned blob", zap.String("key", key), zap.Error(delErr))
		}
		s.logger.Error("failed to create record", zap.Error(err))
		return nil, apierrors.NewInternalError("Failed to create transcription record")
	}
	s.metrics.UploadsTotal.WithLabelValues("accepted").Inc()

	if err := s.runner.Process(ctx, rec); err != nil {
		if ctx.Err() != nil {
			// Client is gone and the record stays in processing; nothing
			// useful can be returned.
			return nil, apierrors.NewInternalError("Request canceled during processing")
		}
		var unavailErr *runner.EngineUnavailableError
		if errors.As(err, &unavailErr) {
			return nil, apierrors.NewServiceUnavailableError("Transcription engine unavailable")
		}
		var storageErr *runner.StorageError
		if errors.As(err, &storageErr) {
			return nil, apierrors.NewStorageError("Failed to read stored audio file")
		}
		// An engine-level failure is already captured onto the record; fall
		// through and return it so the caller sees status=failed with the
		// reason.
	}

	resp := dto.ToTranscriptionResponse(rec, s.store.URL(rec.StorageKey))
	return &dto.UploadResponse{
		Success:       rec.Status == model.StatusCompleted,
		Transcription: rec.Text,
		Filename:      rec.OriginalFilename,
		Record:        resp,
	}, nil
}

// Get retrieves one record by id.
func (s *TranscriptionServiceImpl) Get(ctx context.Context, id string) (*dto.TranscriptionResponse, error) {
	rec, err := s.dao.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NewNotFoundError("transcription")
		}
		s.logger.Error("failed to load record", zap.String("id", id), zap.Error(err))
		return nil, apierrors.NewInternalError("Failed to retrieve transcription")
	}
	resp := dto.ToTranscriptionResponse(rec, s.store.URL(rec.StorageKey))
	return &resp, nil
}

// List returns a filtered, ordered page of records.
func (s *TranscriptionServiceImpl) List(ctx context.Context, q dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error) {
	records, total, err := s.dao.List(ctx, repository.ListQuery{
		Status:  model.Status(q.Status),
		Format:  q.Format,
		Search:  q.Search,
		OrderBy: q.OrderBy,
		Order:   q.Order,
		Page:    q.Page,
		Limit:   q.Limit,
	})
	if err != nil {
		s.logger.Error("failed to list records", zap.Error(err))
		return nil, apierrors.NewInternalError("Failed to list transcriptions")
	}

	items := make([]dto.ListItem, len(records))
	for i := range records {
		items[i] = dto.ToListItem(&records[i])
	}

	totalPages := (total + q.Limit - 1) / q.Limit
	return &dto.PaginatedTranscriptionsResponse{
		Transcriptions: items,
		Pagination: dto.PaginationResponse{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    q.Page < totalPages,
			HasPrev:    q.Page > 1,
		},
	}, nil
}

// Delete removes a record and its backing blob. The blob goes first so a
// failed blob delete never leaves an orphaned file behind a missing record.
func (s *TranscriptionServiceImpl) Delete(ctx context.Context, id string) error {
	rec, err := s.dao.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apierrors.NewNotFoundError("transcription")
		}
		return apierrors.NewInternalError("Failed to load transcription")
	}

	if err := s.store.Delete(ctx, rec.StorageKey); err != nil {
		s.logger.Error("failed to delete blob", zap.String("key", rec.StorageKey), zap.Error(err))
		return apierrors.NewStorageError("Failed to delete audio file")
	}
	if err := s.dao.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apierrors.NewNotFoundError("transcription")
		}
		return apierrors.NewInternalError("Failed to delete transcription")
	}
	return nil
}

// Retry resets one failed record to pending.
func (s *TranscriptionServiceImpl) Retry(ctx context.Context, id string) (*dto.TranscriptionResponse, error) {
	rec, err := s.dao.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NewNotFoundError("transcription")
		}
		return nil, apierrors.NewInternalError("Failed to load transcription")
	}
	if rec.Status != model.StatusFailed {
		return nil, apierrors.NewConflictError("Only failed transcriptions can be retried")
	}

	rec.ResetForRetry(time.Now())
	if err := s.dao.Update(ctx, rec); err != nil {
		return nil, apierrors.NewInternalError("Failed to reset transcription")
	}
	resp := dto.ToTranscriptionResponse(rec, s.store.URL(rec.StorageKey))
	return &resp, nil
}

// RetryAllFailed resets every failed record to pending and returns the count.
func (s *TranscriptionServiceImpl) RetryAllFailed(ctx context.Context) (int64, error) {
	count, err := s.dao.ResetFailed(ctx)
	if err != nil {
		s.logger.Error("failed to reset failed records", zap.Error(err))
		return 0, apierrors.NewInternalError("Failed to reset failed transcriptions")
	}
	return count, nil
}
