package model

import (
	"time"

	"github.com/google/uuid"
)

type UserStatus int16

const (
	UserStatusInactive UserStatus = iota
	UserStatusActive
)

func (s UserStatus) String() string {
	if s == UserStatusActive {
		return "ACTIVE"
	}
	return "INACTIVE"
}

type AuthProvider int16

const (
	AuthProviderBasic AuthProvider = iota
	AuthProviderGoogle
)

func (p AuthProvider) String() string {
	if p == AuthProviderGoogle {
		return "GOOGLE"
	}
	return "BASIC"
}

// ProfileFullName is the profile attribute holding the user's display name.
const ProfileFullName = "fullName"

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	HashedPassword string
	AuthProvider   AuthProvider `gorm:"type:smallint;not null"`
	Status         UserStatus   `gorm:"type:smallint;not null"`
	Deleted        bool         `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Profile []UserProfile `gorm:"foreignKey:UserID"`
}

// Attributes flattens the profile rows into a key/value map.
func (u *User) Attributes() map[string]string {
	attrs := make(map[string]string, len(u.Profile))
	for _, p := range u.Profile {
		attrs[p.Key] = p.Value
	}
	return attrs
}

type UserProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_profiles_user_key"`
	Key       string    `gorm:"not null;uniqueIndex:idx_user_profiles_user_key"`
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type VerificationType int16

const (
	VerificationOTP VerificationType = iota
	VerificationReset
)

// UserVerification is a short-lived secret sent to the user by mail: a sign-up
// OTP or a password reset token. Its ID doubles as the sign-up session id.
type UserVerification struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	Token     string           `gorm:"not null;index"`
	Type      VerificationType `gorm:"type:smallint;not null"`
	ExpiresAt time.Time        `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}

func (v *UserVerification) Expired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}
