package classes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"schoolrecords/internal/domain"
	"schoolrecords/internal/middleware"
	"schoolrecords/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts class endpoints. Reads are open to every
// authenticated role, writes are admin-only.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/classes")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", middleware.AdminOnly(), h.Create)
		group.PUT("/:id", middleware.AdminOnly(), h.Update)
		group.DELETE("/:id", middleware.AdminOnly(), h.Delete)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	class, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, class)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	class, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

func (h *Handler) List(c *gin.Context) {
	callerID := c.GetInt64("user_id")
	callerRole := domain.UserRole(c.GetString("role"))

	list, err := h.service.List(c.Request.Context(), callerID, callerRole)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	class, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, class)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Class deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrClassNotFound):
		response.Error(c, http.StatusNotFound, "CLASS_NOT_FOUND", "Class not found")
	case errors.Is(err, ErrTeacherNotFound):
		response.Error(c, http.StatusBadRequest, "TEACHER_NOT_FOUND", "Referenced teacher does not exist")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "ID must be a positive integer")
		return 0, false
	}
	return id, true
}
