package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/api/v1/handlers"
	"audioscribe/internal/app/testutil"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *testutil.MockServices) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mockServices := testutil.NewMockServices(t)
	return router, mockServices
}

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestTranscriptionHandler_Upload(t *testing.T) {
	tests := []struct {
		name           string
		fieldName      string
		filename       string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:      "successful upload and transcription",
			fieldName: "audio",
			filename:  "meeting.wav",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Upload", mock.Anything, mock.Anything, mock.Anything).
					Return(&dto.UploadResponse{
						Success:       true,
						Transcription: "Hello world",
						Filename:      "meeting.wav",
						Record: dto.TranscriptionResponse{
							ID:     "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11",
							Status: "completed",
						},
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "Hello world", body["transcription"])
				record := body["record"].(map[string]interface{})
				assert.Equal(t, "completed", record["status"])
			},
		},
		{
			name:      "upload with failed transcription still returns the record",
			fieldName: "audio",
			filename:  "broken.mp3",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Upload", mock.Anything, mock.Anything, mock.Anything).
					Return(&dto.UploadResponse{
						Success:  false,
						Filename: "broken.mp3",
						Record: dto.TranscriptionResponse{
							ID:     "b3d3c2a1-0000-4000-8000-000000000001",
							Status: "failed",
							Error:  "transcription failed: decode error",
						},
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, false, body["success"])
				record := body["record"].(map[string]interface{})
				assert.Equal(t, "failed", record["status"])
				assert.Contains(t, record["error"], "decode error")
			},
		},
		{
			name:           "missing file field",
			fieldName:      "file",
			filename:       "meeting.wav",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "bad_request", body["kind"])
			},
		},
		{
			name:      "rejected format",
			fieldName: "audio",
			filename:  "notes.txt",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Upload", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.NewBadRequestError("unsupported file format: txt"))
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "bad_request", body["kind"])
				assert.Contains(t, body["message"], "unsupported")
			},
		},
		{
			name:      "engine unavailable",
			fieldName: "audio",
			filename:  "meeting.wav",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Upload", mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.NewServiceUnavailableError("transcription engine unavailable"))
			},
			expectedStatus: http.StatusServiceUnavailable,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "service_unavailable", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewTranscriptionHandler(mockServices.TranscriptionService)
			router.POST("/api/v1/transcriptions", handler.Upload)

			body, contentType := multipartBody(t, tt.fieldName, tt.filename, []byte("fake audio bytes"))
			req := httptest.NewRequest("POST", "/api/v1/transcriptions", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err := json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}

func TestTranscriptionHandler_Get(t *testing.T) {
	tests := []struct {
		name            string
		transcriptionID string
		setupMocks      func(*testutil.MockServices)
		expectedStatus  int
		validateBody    func(*testing.T, map[string]interface{})
	}{
		{
			name:            "successful get",
			transcriptionID: "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Get", mock.Anything, "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11").
					Return(&dto.TranscriptionResponse{
						ID:            "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11",
						Status:        "completed",
						Transcription: "Hello world",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "completed", body["status"])
				assert.Equal(t, "Hello world", body["transcription"])
			},
		},
		{
			name:            "not found",
			transcriptionID: "b3d3c2a1-0000-4000-8000-000000000999",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Get", mock.Anything, "b3d3c2a1-0000-4000-8000-000000000999").
					Return(nil, errors.NewNotFoundError("transcription"))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "not_found", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewTranscriptionHandler(mockServices.TranscriptionService)
			router.GET("/api/v1/transcriptions/:id", handler.Get)

			req := httptest.NewRequest("GET", "/api/v1/transcriptions/"+tt.transcriptionID, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err := json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}

func TestTranscriptionHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:        "successful list with pagination",
			queryParams: "?page=1&limit=10",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("List", mock.Anything, mock.Anything).
					Return(&dto.PaginatedTranscriptionsResponse{
						Transcriptions: []dto.ListItem{
							{ID: "a", Status: "completed"},
							{ID: "b", Status: "processing"},
						},
						Pagination: dto.PaginationResponse{
							Page:       1,
							Limit:      10,
							Total:      2,
							TotalPages: 1,
							HasNext:    false,
							HasPrev:    false,
						},
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				transcriptions := body["transcriptions"].([]interface{})
				assert.Len(t, transcriptions, 2)

				pagination := body["pagination"].(map[string]interface{})
				assert.Equal(t, float64(1), pagination["page"])
				assert.Equal(t, float64(10), pagination["limit"])
				assert.Equal(t, float64(2), pagination["total"])
			},
		},
		{
			name:        "filter by status",
			queryParams: "?status=failed",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("List", mock.Anything, mock.MatchedBy(func(query dto.ListTranscriptionsQuery) bool {
					return query.Status == "failed"
				})).Return(&dto.PaginatedTranscriptionsResponse{
					Transcriptions: []dto.ListItem{
						{ID: "a", Status: "failed"},
					},
					Pagination: dto.PaginationResponse{
						Page: 1, Limit: 20, Total: 1, TotalPages: 1,
					},
				}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				transcriptions := body["transcriptions"].([]interface{})
				assert.Len(t, transcriptions, 1)
			},
		},
		{
			name:           "invalid query parameters",
			queryParams:    "?page=0&limit=200",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "bad_request", body["kind"])
			},
		},
		{
			name:           "invalid status value",
			queryParams:    "?status=done",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "bad_request", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewTranscriptionHandler(mockServices.TranscriptionService)
			router.GET("/api/v1/transcriptions", handler.List)

			req := httptest.NewRequest("GET", "/api/v1/transcriptions"+tt.queryParams, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err := json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}

func TestTranscriptionHandler_Delete(t *testing.T) {
	tests := []struct {
		name            string
		transcriptionID string
		setupMocks      func(*testutil.MockServices)
		expectedStatus  int
	}{
		{
			name:            "successful delete",
			transcriptionID: "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Delete", mock.Anything, "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11").
					Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:            "not found",
			transcriptionID: "b3d3c2a1-0000-4000-8000-000000000999",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Delete", mock.Anything, "b3d3c2a1-0000-4000-8000-000000000999").
					Return(errors.NewNotFoundError("transcription"))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewTranscriptionHandler(mockServices.TranscriptionService)
			router.DELETE("/api/v1/transcriptions/:id", handler.Delete)

			req := httptest.NewRequest("DELETE", "/api/v1/transcriptions/"+tt.transcriptionID, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestTranscriptionHandler_Retry(t *testing.T) {
	tests := []struct {
		name            string
		transcriptionID string
		setupMocks      func(*testutil.MockServices)
		expectedStatus  int
		validateBody    func(*testing.T, map[string]interface{})
	}{
		{
			name:            "failed record resets to pending",
			transcriptionID: "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Retry", mock.Anything, "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11").
					Return(&dto.TranscriptionResponse{
						ID:     "0b2f1f60-6f3a-4d19-9df5-9f6a3a3e1f11",
						Status: "pending",
					}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "pending", body["status"])
				assert.NotContains(t, body, "error")
			},
		},
		{
			name:            "non-failed record conflicts",
			transcriptionID: "b3d3c2a1-0000-4000-8000-000000000001",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Retry", mock.Anything, "b3d3c2a1-0000-4000-8000-000000000001").
					Return(nil, errors.NewConflictError("Only failed transcriptions can be retried"))
			},
			expectedStatus: http.StatusConflict,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "conflict", body["kind"])
			},
		},
		{
			name:            "not found",
			transcriptionID: "b3d3c2a1-0000-4000-8000-000000000999",
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Retry", mock.Anything, "b3d3c2a1-0000-4000-8000-000000000999").
					Return(nil, errors.NewNotFoundError("transcription"))
			},
			expectedStatus: http.StatusNotFound,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "not_found", body["kind"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewTranscriptionHandler(mockServices.TranscriptionService)
			router.POST("/api/v1/transcriptions/:id/retry", handler.Retry)

			req := httptest.NewRequest("POST", "/api/v1/transcriptions/"+tt.transcriptionID+"/retry", nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err := json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
		})
	}
}

func TestTranscriptionHandler_RetryAll(t *testing.T) {
	router, mockServices := setupTestRouter(t)
	mockServices.TranscriptionService.On("RetryAllFailed", mock.Anything).
		Return(int64(3), nil)

	handler := handlers.NewTranscriptionHandler(mockServices.TranscriptionService)
	router.POST("/api/v1/transcriptions/retry", handler.RetryAll)

	req := httptest.NewRequest("POST", "/api/v1/transcriptions/retry", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var responseBody dto.RetryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &responseBody))
	assert.Equal(t, int64(3), responseBody.Reset)
}
