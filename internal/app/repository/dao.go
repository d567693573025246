package repository

import (
	"context"

	"audioscribe/internal/app/model"
)

// ListQuery narrows and orders a record listing.
type ListQuery struct {
	Status  model.Status
	Format  string
	Search  string // substring match on the original filename
	OrderBy string // created_at, updated_at, file_size, processing_time
	Order   string // asc or desc
	Page    int
	Limit   int
}

// RecordDAO persists transcription records.
type RecordDAO interface {
	Create(ctx context.Context, rec *model.Record) error
	GetByID(ctx context.Context, id string) (*model.Record, error)
	Update(ctx context.Context, rec *model.Record) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q ListQuery) ([]model.Record, int, error)
	ListByStatus(ctx context.Context, status model.Status, limit int) ([]model.Record, error)
	ResetFailed(ctx context.Context) (int64, error)
	Close() error
}
