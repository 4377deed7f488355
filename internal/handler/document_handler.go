package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"lexdocs/internal/service"
)

// DocumentHandler handles document intake and retrieval endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Submit handles POST /api/v1/documents. The file arrives as multipart form
// data under the "file" field; processing happens in the background and the
// response carries the pending record.
func (h *DocumentHandler) Submit(c *gin.Context) {
	tenantID, userID, ok := extractTenantContext(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}

	doc, err := h.documentService.Submit(c.Request.Context(), service.SubmitInput{
		TenantID:   tenantID,
		UploadedBy: userID,
		FileName:   fileHeader.Filename,
		Data:       data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondAccepted(c, doc)
}

// GetStatus handles GET /api/v1/documents/:id/status.
func (h *DocumentHandler) GetStatus(c *gin.Context) {
	tenantID, _, ok := extractTenantContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	status, err := h.documentService.GetStatus(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, status)
}

// GetResult handles GET /api/v1/documents/:id/result.
func (h *DocumentHandler) GetResult(c *gin.Context) {
	tenantID, _, ok := extractTenantContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	result, err := h.documentService.GetResult(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, result)
}

// Reprocess handles POST /api/v1/documents/:id/reprocess.
func (h *DocumentHandler) Reprocess(c *gin.Context) {
	tenantID, _, ok := extractTenantContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		ForceOCR bool `json:"force_ocr"`
	}
	// Body is optional; absence means a plain reprocess.
	_ = c.ShouldBindJSON(&req)

	status, err := h.documentService.Reprocess(c.Request.Context(), tenantID, docID, req.ForceOCR)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondAccepted(c, status)
}

// List handles GET /api/v1/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	tenantID, _, ok := extractTenantContext(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.List(c.Request.Context(), tenantID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetDownloadURL handles GET /api/v1/documents/:id/download.
func (h *DocumentHandler) GetDownloadURL(c *gin.Context) {
	tenantID, _, ok := extractTenantContext(c)
	if !ok {
		return
	}
	docID, ok := parseIDParam(c)
	if !ok {
		return
	}

	url, err := h.documentService.GetDownloadURL(c.Request.Context(), tenantID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"url": url})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return offset, limit
}
