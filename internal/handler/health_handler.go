package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	db    *sqlx.DB
	ocrUp bool
}

// NewHealthHandler creates a new HealthHandler. ocrAvailable records whether
// the OCR binary was found at startup; extraction degrades without it, so
// readiness reports it but does not fail on it.
func NewHealthHandler(db *sqlx.DB, ocrAvailable bool) *HealthHandler {
	return &HealthHandler{db: db, ocrUp: ocrAvailable}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.db.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database not reachable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "ocr_available": h.ocrUp})
}
