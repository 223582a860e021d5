package domain

import "time"

type Class struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	TeacherID int64     `json:"teacher_id" gorm:"index;not null"`
	Teacher   *User     `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
