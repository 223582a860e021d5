package domain

import "time"

// RefreshToken is the durable record behind otherwise-stateless refresh JWTs.
//
// Only the SHA-256 hash of the raw token is stored (TokenHash). On refresh the
// token is rotated: the presented row is revoked and a replacement inserted.
type RefreshToken struct {
	ID int64 `json:"id" gorm:"primaryKey"`

	UserID int64 `json:"user_id" gorm:"index;not null"`
	User   User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	TokenHash string `json:"-" gorm:"size:64;uniqueIndex;not null"`
	JTI       string `json:"-" gorm:"size:36"`

	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at" gorm:"index;not null"`
	Revoked   bool       `json:"revoked" gorm:"not null;default:false;index"`
	RevokedAt *time.Time `json:"revoked_at"`
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
