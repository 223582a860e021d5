package grades

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

// RegisterRoutes mounts grade endpoints. Reads are scoped per role inside the
// service, writes require admin or teacher.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/grades")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", middleware.StaffOnly(), h.Create)
		group.PUT("/:id", middleware.StaffOnly(), h.Update)
		group.DELETE("/:id", middleware.StaffOnly(), h.Delete)
	}
}

func callerFrom(c *gin.Context) Caller {
	return Caller{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	grade, err := h.service.Create(c.Request.Context(), callerFrom(c), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, grade)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	grade, err := h.service.GetByID(c.Request.Context(), callerFrom(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grade)
}

func (h *Handler) List(c *gin.Context) {
	var filter ListFilter
	if q := c.Query("student_id"); q != "" {
		id, err := strconv.ParseInt(q, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "student_id must be a positive integer")
			return
		}
		filter.StudentID = &id
	}
	if q := c.Query("subject_id"); q != "" {
		id, err := strconv.ParseInt(q, 10, 64)
		if err != nil || id <= 0 {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "subject_id must be a positive integer")
			return
		}
		filter.SubjectID = &id
	}

	list, err := h.service.List(c.Request.Context(), callerFrom(c), filter)
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

	var req UpdateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	grade, err := h.service.Update(c.Request.Context(), callerFrom(c), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, grade)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), callerFrom(c), id); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Grade deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrGradeNotFound):
		response.Error(c, http.StatusNotFound, "GRADE_NOT_FOUND", "Grade not found")
	case errors.Is(err, ErrStudentNotFound):
		response.Error(c, http.StatusBadRequest, "STUDENT_NOT_FOUND", "Referenced student does not exist")
	case errors.Is(err, ErrSubjectNotFound):
		response.Error(c, http.StatusBadRequest, "SUBJECT_NOT_FOUND", "Referenced subject does not exist")
	case errors.Is(err, ErrGradeOutOfRange):
		response.Error(c, http.StatusBadRequest, "GRADE_OUT_OF_RANGE", "Grade must be between 0 and 20")
	case errors.Is(err, ErrSubjectNotAllowed):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Subject is outside your classes")
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
