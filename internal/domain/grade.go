package domain

import "time"

// Grade values use the 0..20 scale.
const (
	GradeMin = 0.0
	GradeMax = 20.0
)

type Grade struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	StudentID int64     `json:"student_id" gorm:"index;not null"`
	Student   *User     `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	SubjectID int64     `json:"subject_id" gorm:"index;not null"`
	Subject   *Subject  `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	Grade     float64   `json:"grade" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}
