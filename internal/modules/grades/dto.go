package grades

type CreateGradeRequest struct {
	StudentID int64   `json:"student_id" binding:"required"`
	SubjectID int64   `json:"subject_id" binding:"required"`
	Grade     float64 `json:"grade" binding:"min=0,max=20"`
}

type UpdateGradeRequest struct {
	Grade float64 `json:"grade" binding:"min=0,max=20"`
}

type ListFilter struct {
	StudentID *int64
	SubjectID *int64
}
