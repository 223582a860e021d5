package absences

import "time"

type CreateAbsenceRequest struct {
	StudentID int64     `json:"student_id" binding:"required"`
	Date      time.Time `json:"date" binding:"required"`
	Reason    string    `json:"reason" binding:"max=500"`
}

type UpdateAbsenceRequest struct {
	Date   *time.Time `json:"date"`
	Reason *string    `json:"reason" binding:"omitempty,max=500"`
}
