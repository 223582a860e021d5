package domain

import "time"

type Absence struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	StudentID int64     `json:"student_id" gorm:"index;not null"`
	Student   *User     `json:"student,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Date      time.Time `json:"date" gorm:"type:date;not null;index"`
	Reason    string    `json:"reason,omitempty" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
}
