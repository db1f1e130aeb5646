package resumes

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cvlens-backend/internal/extract"
	"cvlens-backend/internal/llm"
	"cvlens-backend/internal/shared/server/middleware"
	"cvlens-backend/internal/shared/server/respond"
	"cvlens-backend/internal/shared/util"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/analyze", h.analyze)
	rg.GET("/resumes/history", h.history)
	rg.GET("/resumes/:id", h.get)
	rg.DELETE("/resumes/:id", h.delete)
	rg.GET("/resumes/:id/report", h.report)
}

func (h *Handler) analyze(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	jobDescription := c.PostForm("jobDescription")
	mimeType := fileHeader.Header.Get("Content-Type")

	rec, err := h.Svc.Analyze(c.Request.Context(), userID, fileName, mimeType, data, jobDescription)
	if err != nil {
		h.writeAnalyzeError(c, err)
		return
	}

	c.Set("resumeId", rec.ID)
	respond.OK(c, rec)
}

func (h *Handler) writeAnalyzeError(c *gin.Context, err error) {
	var schemaErr *SchemaError
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_format", "unsupported file format, upload pdf, docx, or txt", nil)
	case errors.Is(err, extract.ErrExtractionFailed):
		respond.Error(c, http.StatusUnprocessableEntity, "extraction_failed", "failed to extract text from file", nil)
	case errors.Is(err, llm.ErrCompletion):
		respond.Error(c, http.StatusBadGateway, "completion_failed", "analysis service is unavailable, try again later", nil)
	case errors.Is(err, ErrMalformedOutput):
		respond.Error(c, http.StatusBadGateway, "malformed_output", "analysis produced unusable output, try again", nil)
	case errors.As(err, &schemaErr):
		respond.Error(c, http.StatusBadGateway, "schema_violation", "analysis produced unusable output, try again", schemaErr.Error())
	case errors.Is(err, ErrStorageUpload):
		respond.Error(c, http.StatusBadGateway, "storage_failed", "failed to store uploaded file", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze resume", nil)
	}
}

func (h *Handler) history(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 0 {
		limit = 0
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	recs, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		}
		return
	}

	respond.OK(c, recs)
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rec, err := h.Svc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch resume", nil)
		}
		return
	}

	respond.OK(c, rec)
}

func (h *Handler) delete(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	if err := h.Svc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		case errors.Is(err, ErrStorageDeletion):
			respond.Error(c, http.StatusBadGateway, "storage_failed", "failed to delete stored file, try again", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete resume", nil)
		}
		return
	}

	respond.OK(c, gin.H{"message": "Resume deleted successfully"})
}

func (h *Handler) report(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	rec, html, err := h.Svc.Report(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate report", nil)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=resume-analysis-%s.html", rec.ID))
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
