package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает владельца сниппетов и закладок.
// Аутентификация беспарольная: одноразовый код хранится хэшем вместе со сроком действия.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	IsVerified   bool       `db:"is_verified" json:"is_verified"`
	OTPCodeHash  *string    `db:"otp_code_hash" json:"-"`
	OTPExpiresAt *time.Time `db:"otp_expires_at" json:"-"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// HasPendingOTP сообщает, есть ли у пользователя невостребованный код.
func (u *User) HasPendingOTP() bool {
	return u.OTPCodeHash != nil && u.OTPExpiresAt != nil
}
