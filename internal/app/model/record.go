package model

import "time"

// Status represents the lifecycle state of a transcription record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further automatic transition occurs.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusFailed:
		return true
	}
	return false
}

// Record is one upload-to-transcription attempt.
//
// Invariants maintained by the runner and repositories:
//   - status moves forward along pending -> processing -> {completed, failed}
//   - Text is non-empty iff status is completed
//   - ErrorMessage is non-empty iff status is failed
//   - ProcessingTime is set exactly when a terminal state is reached
type Record struct {
	ID               string
	OriginalFilename string
	FileSize         int64
	Format           string
	StorageKey       string
	Text             string
	Status           Status
	ProcessingTime   *float64
	ErrorMessage     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// MarkProcessing transitions the record into processing.
func (r *Record) MarkProcessing(now time.Time) {
	r.Status = StatusProcessing
	r.UpdatedAt = now
}

// MarkCompleted records a successful transcription.
func (r *Record) MarkCompleted(text string, elapsed float64, now time.Time) {
	r.Text = text
	r.ErrorMessage = ""
	r.ProcessingTime = &elapsed
	r.Status = StatusCompleted
	r.UpdatedAt = now
}

// MarkFailed records a failed transcription attempt.
func (r *Record) MarkFailed(reason string, elapsed float64, now time.Time) {
	r.Text = ""
	r.ErrorMessage = reason
	r.ProcessingTime = &elapsed
	r.Status = StatusFailed
	r.UpdatedAt = now
}

// ResetForRetry puts a failed record back into pending so a later
// processing pass can pick it up. All other fields stay untouched.
func (r *Record) ResetForRetry(now time.Time) {
	r.Status = StatusPending
	r.ErrorMessage = ""
	r.UpdatedAt = now
}
