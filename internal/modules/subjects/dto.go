package subjects

type CreateSubjectRequest struct {
	Name    string `json:"name" binding:"required"`
	ClassID int64  `json:"class_id" binding:"required"`
}

type UpdateSubjectRequest struct {
	Name    *string `json:"name"`
	ClassID *int64  `json:"class_id"`
}
