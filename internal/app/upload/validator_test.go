package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		size         int64
		wantFormat   string
		wantErr      bool
		errContains  string
	}{
		{
			name:       "wav at the size limit is accepted",
			filename:   "meeting.wav",
			size:       DefaultMaxFileSize,
			wantFormat: "wav",
		},
		{
			name:       "uppercase extension is normalized",
			filename:   "EPISODE.MP3",
			size:       1024,
			wantFormat: "mp3",
		},
		{
			name:        "oversized file is rejected",
			filename:    "huge.flac",
			size:        DefaultMaxFileSize + 1,
			wantErr:     true,
			errContains: "exceeds",
		},
		{
			name:        "unsupported format is rejected",
			filename:    "notes.txt",
			size:        10,
			wantErr:     true,
			errContains: "unsupported file format",
		},
		{
			name:        "empty filename is rejected",
			filename:    "",
			size:        10,
			wantErr:     true,
			errContains: "no file",
		},
		{
			name:        "filename without extension is rejected",
			filename:    "audio",
			size:        10,
			wantErr:     true,
			errContains: "no extension",
		},
	}

	v := NewValidator(0, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accepted, err := v.Validate(tt.filename, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Reason, tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.filename, accepted.Filename)
			assert.Equal(t, tt.size, accepted.Size)
			assert.Equal(t, tt.wantFormat, accepted.Format)
		})
	}
}

func TestNewValidator_CustomLimits(t *testing.T) {
	v := NewValidator(1024, []string{".OGG", "Wav"})

	assert.Equal(t, int64(1024), v.MaxSize())
	assert.Equal(t, []string{"ogg", "wav"}, v.Formats())

	_, err := v.Validate("a.mp3", 10)
	assert.Error(t, err, "format outside the custom allow-list must be rejected")

	_, err = v.Validate("a.ogg", 2048)
	assert.Error(t, err, "custom size limit must apply")

	_, err = v.Validate("a.ogg", 512)
	assert.NoError(t, err)
}

func TestValidator_NeverTouchesPayload(t *testing.T) {
	// Validation decides on name and declared size alone, so a zero-byte
	// declared size passes even for formats whose content would be invalid.
	v := NewValidator(0, nil)
	accepted, err := v.Validate("silence.m4a", 0)
	require.NoError(t, err)
	assert.Equal(t, "m4a", accepted.Format)
}
