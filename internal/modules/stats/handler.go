package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/stats")
	{
		group.GET("/dashboard", h.Dashboard)
		group.GET("/grades-distribution", h.GradesDistribution)
	}
}

func callerFrom(c *gin.Context) Caller {
	return Caller{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	data, err := h.service.Dashboard(c.Request.Context(), callerFrom(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}
	response.Success(c, http.StatusOK, data)
}

func (h *Handler) GradesDistribution(c *gin.Context) {
	data, err := h.service.GradesDistribution(c.Request.Context(), callerFrom(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
		return
	}
	response.Success(c, http.StatusOK, data)
}
