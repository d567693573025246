package upload

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// DefaultMaxFileSize is the upload size ceiling when none is configured.
const DefaultMaxFileSize = 100 * 1024 * 1024 // 100 MB

// DefaultAllowedFormats lists the audio extensions accepted out of the box.
var DefaultAllowedFormats = []string{"wav", "mp3", "m4a", "flac", "ogg", "aac", "wma"}

// Accepted describes a validated upload.
type Accepted struct {
	Filename string
	Size     int64
	Format   string
}

// ValidationError is a rejection reason from the validator. It is
// client-caused; no record is ever created for a rejected upload.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validator checks submitted files against the configured limits.
// Validation is pure; it never touches the payload bytes.
type Validator struct {
	maxSize int64
	formats []string
}

// NewValidator creates a validator. Zero maxSize and an empty allow-list
// fall back to the defaults.
func NewValidator(maxSize int64, formats []string) *Validator {
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	if len(formats) == 0 {
		formats = DefaultAllowedFormats
	}
	normalized := lo.Map(formats, func(f string, _ int) string {
		return strings.ToLower(strings.TrimPrefix(f, "."))
	})
	return &Validator{maxSize: maxSize, formats: normalized}
}

// MaxSize returns the configured upload ceiling in bytes.
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}

// Formats returns the configured allow-list.
func (v *Validator) Formats() []string {
	out := make([]string, len(v.formats))
	copy(out, v.formats)
	return out
}

// Validate checks a declared filename and size and returns the accepted
// description or a *ValidationError.
func (v *Validator) Validate(filename string, size int64) (Accepted, error) {
	if strings.TrimSpace(filename) == "" {
		return Accepted{}, &ValidationError{Reason: "no file selected"}
	}
	if size > v.maxSize {
		return Accepted{}, &ValidationError{
			Reason: fmt.Sprintf("file size exceeds the %d MB limit", v.maxSize/(1024*1024)),
		}
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return Accepted{}, &ValidationError{Reason: "file has no extension"}
	}
	if !lo.Contains(v.formats, ext) {
		return Accepted{}, &ValidationError{
			Reason: fmt.Sprintf("unsupported file format %q, allowed: %s", ext, strings.Join(v.formats, ", ")),
		}
	}
	return Accepted{Filename: filename, Size: size, Format: ext}, nil
}
