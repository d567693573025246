package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/errors"
	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Upload handles POST /api/v1/transcriptions
// Uploads an audio file and transcribes it synchronously
//
// @Summary Upload audio file for transcription
// @Description Uploads an audio file, creates a transcription record, and runs transcription inside the request. The response carries the record in its terminal state.
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio file to transcribe"
// @Success 201 {object} dto.UploadResponse "Transcription record with result"
// @Failure 400 {object} errors.APIError "Bad request - invalid or missing file"
// @Failure 500 {object} errors.APIError "Storage or internal error"
// @Failure 503 {object} errors.APIError "Transcription engine unavailable"
// @Router /transcriptions [post]
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("No audio file provided"))
		return
	}
	defer file.Close()

	response, err := h.service.Upload(c.Request.Context(), file, header)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/transcriptions/:id
// Retrieves a specific transcription by ID
//
// @Summary Get transcription by ID
// @Description Retrieves detailed information about a specific transcription record
// @Tags transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Transcription ID" format(uuid)
// @Success 200 {object} dto.TranscriptionResponse "Transcription details"
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcriptions/{id} [get]
func (h *TranscriptionHandler) Get(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/transcriptions
// Lists transcriptions with pagination and filtering
//
// @Summary List transcriptions with pagination
// @Description Retrieves a paginated list of transcriptions with optional filtering by status and format, and filename search
// @Tags transcriptions
// @Accept json
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param limit query int false "Items per page" default(20) minimum(1) maximum(100)
// @Param status query string false "Filter by status" Enums(pending,processing,completed,failed)
// @Param format query string false "Filter by audio format"
// @Param search query string false "Search in original filename"
// @Param order_by query string false "Sort field" default(created_at) Enums(created_at,updated_at,file_size,processing_time)
// @Param order query string false "Sort order" default(desc) Enums(asc,desc)
// @Success 200 {object} dto.PaginatedTranscriptionsResponse "List of transcriptions with pagination"
// @Failure 400 {object} errors.APIError "Bad request - invalid query parameters"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Header 200 {string} X-Total-Count "Total number of transcriptions"
// @Router /transcriptions [get]
func (h *TranscriptionHandler) List(c *gin.Context) {
	var query dto.ListTranscriptionsQuery

	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(response.Pagination.Total))

	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/v1/transcriptions/:id
// Deletes a transcription and its audio file
//
// @Summary Delete a transcription
// @Description Deletes a transcription record and the stored audio file that backs it
// @Tags transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Transcription ID" format(uuid)
// @Success 204 "Transcription deleted successfully"
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Failure 500 {object} errors.APIError "Storage or internal error"
// @Router /transcriptions/{id} [delete]
func (h *TranscriptionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Retry handles POST /api/v1/transcriptions/:id/retry
// Resets a failed transcription back to pending
//
// @Summary Retry a failed transcription
// @Description Resets a failed transcription record to pending and clears its error. Only records in the failed state can be retried.
// @Tags transcriptions
// @Accept json
// @Produce json
// @Param id path string true "Transcription ID" format(uuid)
// @Success 200 {object} dto.TranscriptionResponse "Record reset to pending"
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Failure 409 {object} errors.APIError "Record is not in the failed state"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcriptions/{id}/retry [post]
func (h *TranscriptionHandler) Retry(c *gin.Context) {
	response, err := h.service.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// RetryAll handles POST /api/v1/transcriptions/retry
// Resets every failed transcription back to pending
//
// @Summary Retry all failed transcriptions
// @Description Resets every failed transcription record to pending and reports how many were reset
// @Tags transcriptions
// @Accept json
// @Produce json
// @Success 200 {object} dto.RetryResponse "Number of records reset"
// @Failure 500 {object} errors.APIError "Internal server error"
// @Router /transcriptions/retry [post]
func (h *TranscriptionHandler) RetryAll(c *gin.Context) {
	count, err := h.service.RetryAllFailed(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RetryResponse{Reset: count})
}
