package token

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("token is invalid")
	ErrExpiredToken = errors.New("token has expired")
)

// Payload is what a session token carries.
type Payload struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiredAt time.Time
}

type Maker interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, *Payload, error)
	VertifyToken(token string) (*Payload, error)
}
