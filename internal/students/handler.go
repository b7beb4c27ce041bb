package students

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/schema"
	"intake-backend/internal/shared/server/respond"
)

// Handler serves the student document read paths.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches student routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/students/:studentId/documents", h.getRecord)
	rg.GET("/students/:studentId/documents/:docType/latest", h.getLatest)
}

func (h *Handler) getRecord(c *gin.Context) {
	studentID := strings.TrimSpace(c.Param("studentId"))
	if studentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "studentId is required", nil)
		return
	}
	c.Set("studentId", studentID)

	rec, err := h.Repo.GetRecord(c.Request.Context(), studentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrStudentNotFound):
			respond.Error(c, http.StatusNotFound, "student_not_found", "no record for student", nil)
		default:
			respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "failed to fetch student record", nil)
		}
		return
	}

	respond.OK(c, rec)
}

func (h *Handler) getLatest(c *gin.Context) {
	studentID := strings.TrimSpace(c.Param("studentId"))
	c.Set("studentId", studentID)

	docType, err := schema.ParseDocType(c.Param("docType"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unknown_document_type", err.Error(), nil)
		return
	}
	c.Set("docType", string(docType))

	doc, err := h.Repo.GetLatestDocument(c.Request.Context(), studentID, docType)
	if err != nil {
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			respond.Error(c, http.StatusNotFound, "document_not_found", "student has no document of this type", nil)
		case errors.Is(err, ErrStudentNotFound):
			respond.Error(c, http.StatusNotFound, "student_not_found", "no record for student", nil)
		default:
			respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "failed to fetch document", nil)
		}
		return
	}

	respond.OK(c, gin.H{"document": doc, "ready": doc.Ready()})
}
