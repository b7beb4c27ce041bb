package intake

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"intake-backend/internal/schema"
	"intake-backend/internal/shared/server/respond"
	"intake-backend/internal/uploads"
)

// Handler exposes the document processing endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

// RegisterRoutes attaches intake routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.postDocument)
	rg.POST("/documents/from-url", h.postFromURL)
	rg.POST("/documents/batch", h.postBatch)
}

func (h *Handler) postDocument(c *gin.Context) {
	studentID := strings.TrimSpace(c.PostForm("studentId"))
	if studentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "studentId is required", nil)
		return
	}
	c.Set("studentId", studentID)

	docType, err := schema.ParseDocType(c.PostForm("docType"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "unknown_document_type", err.Error(), nil)
		return
	}
	c.Set("docType", string(docType))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read file", nil)
		return
	}
	defer file.Close()

	res := h.Service.ProcessUpload(c.Request.Context(), studentID, docType, fileHeader.Filename, file)
	writeItemResult(c, res)
}

func (h *Handler) postFromURL(c *gin.Context) {
	var req fromURLRequest
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
	c.Set("docType", string(docType))

	res := h.Service.ProcessURL(c.Request.Context(), req.StudentID, docType, req.SourceURL)
	writeItemResult(c, res)
}

func (h *Handler) postBatch(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid batch body", nil)
		return
	}
	if (len(req.Items) == 0) == (req.Query == nil) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "provide either items or query", nil)
		return
	}

	var (
		items []BatchItem
		err   error
	)
	if req.Query != nil {
		items, err = h.Service.PendingBatchItems(c.Request.Context(), uploads.Filter{
			StudentID: req.Query.StudentID,
			DocType:   schema.DocType(req.Query.DocType),
			Limit:     req.Query.Limit,
		})
		if err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "store_unavailable", "failed to list queued uploads", nil)
			return
		}
	} else {
		for _, item := range req.Items {
			docType, err := schema.ParseDocType(item.DocType)
			if err != nil {
				respond.Error(c, http.StatusBadRequest, "unknown_document_type", err.Error(), gin.H{"studentId": item.StudentID})
				return
			}
			items = append(items, BatchItem{
				StudentID: item.StudentID,
				DocType:   docType,
				SourceURL: item.SourceURL,
			})
		}
	}

	agg, err := h.Service.ProcessBatch(c.Request.Context(), items, req.CallbackURL)
	if err != nil {
		if errors.Is(err, ErrBatchTooLarge) {
			respond.Error(c, http.StatusBadRequest, "batch_too_large", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "batch failed", nil)
		return
	}

	respond.OK(c, agg)
}

// writeItemResult renders a single-item pipeline outcome: 201 on success,
// the taxonomy-mapped status otherwise.
func writeItemResult(c *gin.Context, res ItemResult) {
	if res.Status == "done" {
		respond.JSON(c, http.StatusCreated, res)
		return
	}
	respond.Error(c, httpStatus(res.ErrorCode), res.ErrorCode, res.Error, gin.H{"stage": res.Stage})
}
