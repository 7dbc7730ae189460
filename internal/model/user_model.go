package model

import (
	"time"

	"github.com/google/uuid"
)

type UserModel struct {
	ID          uuid.UUID
	Email       string
	Name        string
	Password    string // bcrypt hash
	Permissions Permissions
	ResetToken  *string
	// epoch milliseconds
	ResetTokenExpiry *int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type SignupInput struct {
	Email    string
	Password string
	Name     string
}

type ResetPasswordInput struct {
	Password        string
	ConfirmPassword string
	ResetToken      string
}
