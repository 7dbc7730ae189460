package model

import (
	"time"

	"github.com/google/uuid"
)

// Session is the authenticated caller of one request.
// A nil *Session means the request is anonymous.
type Session struct {
	UserID    uuid.UUID
	Token     string
	ExpiresAt time.Time
}

type AuthResult struct {
	User      UserModel
	Token     string
	ExpiresAt time.Time
}

type SuccessMessage struct {
	Message string
}
