package reports

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

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
	group := protected.Group("/reports")
	{
		group.GET("/report-card/:student_id", h.ReportCard)
	}
}

func (h *Handler) ReportCard(c *gin.Context) {
	studentID, err := strconv.ParseInt(c.Param("student_id"), 10, 64)
	if err != nil || studentID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "student_id must be a positive integer")
		return
	}

	caller := Caller{
		ID:   c.GetInt64("user_id"),
		Role: domain.UserRole(c.GetString("role")),
	}

	out, err := h.service.ReportCard(c.Request.Context(), caller, studentID)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only access your own report card")
		case errors.Is(err, ErrStudentNotFound):
			response.Error(c, http.StatusNotFound, "STUDENT_NOT_FOUND", "Student not found")
		default:
			response.Error(c, http.StatusInternalServerError, "REPORT_FAILED", "Failed to generate report card")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_card_%d.pdf", studentID))
	c.Data(http.StatusOK, "application/pdf", out)
}
