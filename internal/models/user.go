package models

import (
	"time"

	"github.com/google/uuid"
)

// Admin roles. main_admin can do everything admin can, plus manage admin
// accounts themselves.
const (
	RoleAdmin     = "admin"
	RoleMainAdmin = "main_admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
