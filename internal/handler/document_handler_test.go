package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lexdocs/internal/domain"
	"lexdocs/internal/handler"
	"lexdocs/internal/middleware"
	"lexdocs/internal/service"
	"lexdocs/mocks"
)

func newTestRouter(svc *mocks.MockDocumentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewDocumentHandler(svc)

	docs := r.Group("/api/v1/documents")
	docs.Use(middleware.Tenant())
	docs.POST("", h.Submit)
	docs.GET("/:id/status", h.GetStatus)
	docs.GET("/:id/result", h.GetResult)
	docs.POST("/:id/reprocess", h.Reprocess)
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	return resp
}

func TestSubmitRequiresTenantHeader(t *testing.T) {
	r := newTestRouter(new(mocks.MockDocumentService))

	body, contentType := multipartBody(t, "file", "brief.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitAccepted(t *testing.T) {
	tenantID := uuid.New()
	doc := &domain.Document{ID: uuid.New(), TenantID: tenantID, ProcessingStatus: domain.ProcessingStatusPending}

	svc := new(mocks.MockDocumentService)
	svc.On("Submit", mock.Anything, mock.MatchedBy(func(in service.SubmitInput) bool {
		return in.TenantID == tenantID && in.FileName == "brief.pdf" && len(in.Data) > 0
	})).Return(doc, nil)

	r := newTestRouter(svc)
	body, contentType := multipartBody(t, "file", "brief.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Tenant-ID", tenantID.String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	resp := decodeEnvelope(t, w.Body)
	assert.True(t, resp.Success)
	svc.AssertExpectations(t)
}

func TestSubmitMissingFileField(t *testing.T) {
	r := newTestRouter(new(mocks.MockDocumentService))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", uuid.New().String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestSubmitDuplicateConflict(t *testing.T) {
	tenantID := uuid.New()
	existingID := uuid.New().String()

	svc := new(mocks.MockDocumentService)
	svc.On("Submit", mock.Anything, mock.Anything).
		Return(nil, &domain.DuplicateDocumentError{ExistingID: existingID})

	r := newTestRouter(svc)
	body, contentType := multipartBody(t, "file", "dup.pdf", []byte("%PDF-1.4"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Tenant-ID", tenantID.String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_DOCUMENT", resp.Error.Code)
	assert.Equal(t, existingID, resp.Error.Details["existing_document_id"])
}

func TestGetStatusOK(t *testing.T) {
	tenantID := uuid.New()
	docID := uuid.New()

	svc := new(mocks.MockDocumentService)
	svc.On("GetStatus", mock.Anything, tenantID, docID).Return(&service.DocumentStatus{
		ID: docID, Status: domain.ProcessingStatusProcessing,
	}, nil)

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docID.String()+"/status", nil)
	req.Header.Set("X-Tenant-ID", tenantID.String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetStatusInvalidID(t *testing.T) {
	r := newTestRouter(new(mocks.MockDocumentService))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/not-a-uuid/status", nil)
	req.Header.Set("X-Tenant-ID", uuid.New().String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetResultNotReadyConflict(t *testing.T) {
	tenantID := uuid.New()
	docID := uuid.New()

	svc := new(mocks.MockDocumentService)
	svc.On("GetResult", mock.Anything, tenantID, docID).Return(nil, domain.ErrDocumentNotReady)

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+docID.String()+"/result", nil)
	req.Header.Set("X-Tenant-ID", tenantID.String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DOCUMENT_NOT_READY", resp.Error.Code)
}

func TestReprocessForceOCR(t *testing.T) {
	tenantID := uuid.New()
	docID := uuid.New()

	svc := new(mocks.MockDocumentService)
	svc.On("Reprocess", mock.Anything, tenantID, docID, true).Return(&service.DocumentStatus{
		ID: docID, Status: domain.ProcessingStatusPending,
	}, nil)

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+docID.String()+"/reprocess",
		bytes.NewBufferString(`{"force_ocr":true}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID.String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
	svc.AssertExpectations(t)
}

func TestReprocessInFlightConflict(t *testing.T) {
	tenantID := uuid.New()
	docID := uuid.New()

	svc := new(mocks.MockDocumentService)
	svc.On("Reprocess", mock.Anything, tenantID, docID, false).Return(nil, domain.ErrAlreadyProcessing)

	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/"+docID.String()+"/reprocess", nil)
	req.Header.Set("X-Tenant-ID", tenantID.String())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeEnvelope(t, w.Body)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "ALREADY_PROCESSING", resp.Error.Code)
}
