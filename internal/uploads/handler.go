package uploads

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/schema"
	"intake-backend/internal/shared/server/respond"
)

// Handler exposes the pending-upload queue.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches upload queue routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/uploads", h.enqueue)
	rg.GET("/uploads/pending", h.listPending)
}

type enqueueRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	DocType   string `json:"docType" binding:"required"`
	SourceURL string `json:"sourceUrl" binding:"required"`
}

func (h *Handler) enqueue(c *gin.Context) {
	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "studentId, docType and sourceUrl are required", nil)
		return
	}
	c.Set("studentId", req.StudentID)

	docType, err := schema.ParseDocType(req.DocType)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unknown_document_type", err.Error(), nil)
		return
	}

	up, err := h.Repo.Create(c.Request.Context(), PendingUpload{
		StudentID: req.StudentID,
		DocType:   docType,
		SourceURL: req.SourceURL,
	})
	if err != nil {
		respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "failed to queue upload", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, up)
}

func (h *Handler) listPending(c *gin.Context) {
	f := Filter{StudentID: c.Query("studentId")}
	if raw := c.Query("docType"); raw != "" {
		docType, err := schema.ParseDocType(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "unknown_document_type", err.Error(), nil)
			return
		}
		f.DocType = docType
	}

	pending, err := h.Repo.ListPending(c.Request.Context(), f)
	if err != nil {
		respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "failed to list queued uploads", nil)
		return
	}
	if pending == nil {
		pending = []PendingUpload{}
	}

	respond.OK(c, gin.H{"uploads": pending})
}
