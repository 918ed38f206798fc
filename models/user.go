package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type User struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string         `json:"name" gorm:"not null"`
	Email        string         `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string         `json:"-" gorm:"column:password_hash"`
	Phone        string         `json:"phone"`
	Avatar       string         `json:"avatar"`
	Wishlist     pq.StringArray `json:"wishlist" gorm:"type:text[]"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// UserProfile is the public projection returned by the profile endpoint.
type UserProfile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Avatar      string `json:"avatar"`
	MemberSince string `json:"member_since"`
}

// PendingSignup holds a registration awaiting OTP confirmation. It lives in
// Redis under a TTL, never in Postgres.
type PendingSignup struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	OTPHash      string    `json:"otp_hash"`
	ExpiresAt    time.Time `json:"expires_at"`
}
