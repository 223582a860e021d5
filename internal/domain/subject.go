package domain

import "time"

type Subject struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	ClassID   int64     `json:"class_id" gorm:"index;not null"`
	Class     *Class    `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
