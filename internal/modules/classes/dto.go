package classes

type CreateClassRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID int64  `json:"teacher_id" binding:"required"`
}

type UpdateClassRequest struct {
	Name      *string `json:"name"`
	TeacherID *int64  `json:"teacher_id"`
}
