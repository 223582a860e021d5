package monitoring

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"schoolrecords/internal/pkg/metrics"
	"schoolrecords/internal/pkg/response"
)

// Handler exposes liveness and operational counters.
type Handler struct {
	db    *gorm.DB
	store *metrics.Store
}

func NewHandler(db *gorm.DB, store *metrics.Store) *Handler {
	return &Handler{db: db, store: store}
}

// RegisterRoutes mounts /health and /metrics on the root router, outside the
// authenticated group.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)
	router.GET("/metrics", h.Metrics)
}

func (h *Handler) Health(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) Metrics(c *gin.Context) {
	response.Success(c, http.StatusOK, h.store.Snapshot())
}
