package dto

import (
	"fmt"
	"time"

	"audioscribe/internal/app/model"
)

// TranscriptionResponse is the full record representation.
type TranscriptionResponse struct {
	ID                    string    `json:"id"`
	OriginalFilename      string    `json:"original_filename"`
	FileSize              int64     `json:"file_size"`
	FileSizeDisplay       string    `json:"file_size_display"`
	FileFormat            string    `json:"file_format"`
	Transcription         string    `json:"transcription,omitempty"`
	Status                string    `json:"status"`
	ProcessingTime        *float64  `json:"processing_time,omitempty"`
	ProcessingTimeDisplay string    `json:"processing_time_display"`
	Error                 string    `json:"error,omitempty"`
	AudioFileURL          string    `json:"audio_file_url,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// UploadResponse is returned by the upload endpoint.
type UploadResponse struct {
	Success       bool                  `json:"success"`
	Transcription string                `json:"transcription,omitempty"`
	Filename      string                `json:"filename"`
	Record        TranscriptionResponse `json:"record"`
}

// ListItem is the trimmed representation used in listings.
type ListItem struct {
	ID                    string    `json:"id"`
	OriginalFilename      string    `json:"original_filename"`
	FileSizeDisplay       string    `json:"file_size_display"`
	FileFormat            string    `json:"file_format"`
	Status                string    `json:"status"`
	ProcessingTimeDisplay string    `json:"processing_time_display"`
	CreatedAt             time.Time `json:"created_at"`
}

// ListTranscriptionsQuery represents query parameters for listing records.
type ListTranscriptionsQuery struct {
	Page    int    `form:"page,default=1" binding:"min=1"`
	Limit   int    `form:"limit,default=20" binding:"min=1,max=100"`
	Status  string `form:"status" binding:"omitempty,oneof=pending processing completed failed"`
	Format  string `form:"format"`
	Search  string `form:"search"`
	OrderBy string `form:"order_by,default=created_at" binding:"omitempty,oneof=created_at updated_at file_size processing_time"`
	Order   string `form:"order,default=desc" binding:"omitempty,oneof=asc desc"`
}

// PaginatedTranscriptionsResponse represents a paginated listing.
type PaginatedTranscriptionsResponse struct {
	Transcriptions []ListItem         `json:"transcriptions"`
	Pagination     PaginationResponse `json:"pagination"`
}

// PaginationResponse represents pagination metadata.
type PaginationResponse struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// RetryResponse reports how many records were queued for retry.
type RetryResponse struct {
	Reset int64 `json:"reset"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
}

// InfoResponse is the static capability descriptor.
type InfoResponse struct {
	Name             string            `json:"name"`
	Version          string            `json:"version"`
	Description      string            `json:"description"`
	Engine           string            `json:"engine"`
	ModelVariant     string            `json:"model_variant"`
	SupportedFormats []string          `json:"supported_formats"`
	MaxFileSize      string            `json:"max_file_size"`
	Endpoints        map[string]string `json:"endpoints"`
}

// ToTranscriptionResponse converts a record to its full response DTO.
func ToTranscriptionResponse(rec *model.Record, audioURL string) TranscriptionResponse {
	return TranscriptionResponse{
		ID:                    rec.ID,
		OriginalFilename:      rec.OriginalFilename,
		FileSize:              rec.FileSize,
		FileSizeDisplay:       FileSizeDisplay(rec.FileSize),
		FileFormat:            rec.Format,
		Transcription:         rec.Text,
		Status:                string(rec.Status),
		ProcessingTime:        rec.ProcessingTime,
		ProcessingTimeDisplay: ProcessingTimeDisplay(rec.ProcessingTime),
		Error:                 rec.ErrorMessage,
		AudioFileURL:          audioURL,
		CreatedAt:             rec.CreatedAt,
		UpdatedAt:             rec.UpdatedAt,
	}
}

// ToListItem converts a record to its listing DTO.
func ToListItem(rec *model.Record) ListItem {
	return ListItem{
		ID:                    rec.ID,
		OriginalFilename:      rec.OriginalFilename,
		FileSizeDisplay:       FileSizeDisplay(rec.FileSize),
		FileFormat:            rec.Format,
		Status:                string(rec.Status),
		ProcessingTimeDisplay: ProcessingTimeDisplay(rec.ProcessingTime),
		CreatedAt:             rec.CreatedAt,
	}
}

// FileSizeDisplay renders a byte count for humans.
func FileSizeDisplay(size int64) string {
	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024.0 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024.0
	}
	return fmt.Sprintf("%.1f TB", value)
}

// ProcessingTimeDisplay renders a duration in seconds for humans.
func ProcessingTimeDisplay(seconds *float64) string {
	if seconds == nil {
		return "N/A"
	}
	s := *seconds
	if s < 60 {
		return fmt.Sprintf("%.2fs", s)
	}
	minutes := int(s / 60)
	return fmt.Sprintf("%dm %.2fs", minutes, s-float64(minutes)*60)
}
