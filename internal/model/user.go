package model

import (
	"time"

	"github.com/google/uuid"

	"craftmarket/internal/errors"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleMaster Role = "master"
	RoleAdmin  Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleMaster, RoleAdmin:
		return true
	}
	return false
}

// User represents a registered account: a buyer, a master selling goods, or
// an admin.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:50;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Phone        string    `json:"phone,omitempty" gorm:"size:32"`
	Avatar       string    `json:"avatar,omitempty" gorm:"size:255"`
	Role         Role      `json:"role" gorm:"size:16;not null;default:'buyer'"`
	IsVerified   bool      `json:"is_verified" gorm:"not null;default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PromoteToMaster applies the only self-service role transition,
// buyer -> master. Every other starting role is rejected.
func (u *User) PromoteToMaster() error {
	if u.Role != RoleBuyer {
		return errors.ErrAlreadyMaster
	}
	u.Role = RoleMaster
	return nil
}
