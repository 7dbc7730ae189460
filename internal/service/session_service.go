package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"reflect"
	"time"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/infra/cache"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/ccfreem/sickfits/internal/token"
	"github.com/google/uuid"
)

const revokedSessionPrefix = "session:revoked:"

var ErrSessionRevoked = errors.New("session has been revoked")

type ISessionService interface {
	// IssueSession signs a token for userID valid for constants.SessionDuration.
	IssueSession(ctx context.Context, userID uuid.UUID) (*model.Session, error)
	// Authenticate verifies signature, expiry and revocation.
	//
	// Errors:
	//   - token.ErrInvalidToken / token.ErrExpiredToken
	//   - ErrSessionRevoked
	//   - apperr.ErrInternal: revocation cache unreachable
	Authenticate(ctx context.Context, rawToken string) (*model.Session, error)
	// Revoke blocks the token until it would have expired anyway. A nil session is a no-op.
	Revoke(ctx context.Context, session *model.Session) error
}

type SessionService struct {
	tokenMaker token.Maker
	cache      cache.Cache
	now        func() time.Time
}

func NewSessionService(tokenMaker token.Maker, c cache.Cache) ISessionService {
	if reflect.ValueOf(tokenMaker).IsNil() {
		panic("session service initialization failed: tokenMaker cannot be nil")
	}
	if reflect.ValueOf(c).IsNil() {
		panic("session service initialization failed: cache cannot be nil")
	}

	return &SessionService{
		tokenMaker: tokenMaker,
		cache:      c,
		now:        time.Now,
	}
}

func (s *SessionService) IssueSession(ctx context.Context, userID uuid.UUID) (*model.Session, error) {
	raw, payload, err := s.tokenMaker.CreateToken(userID, constants.SessionDuration)
	if err != nil {
		return nil, internalErr(err, "create session token")
	}
	return &model.Session{
		UserID:    payload.UserID,
		Token:     raw,
		ExpiresAt: payload.ExpiredAt,
	}, nil
}

func (s *SessionService) Authenticate(ctx context.Context, rawToken string) (*model.Session, error) {
	payload, err := s.tokenMaker.VertifyToken(rawToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.cache.Exists(ctx, revocationKey(rawToken))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, err, "check session revocation")
	}
	if revoked {
		return nil, ErrSessionRevoked
	}

	return &model.Session{
		UserID:    payload.UserID,
		Token:     rawToken,
		ExpiresAt: payload.ExpiredAt,
	}, nil
}

func (s *SessionService) Revoke(ctx context.Context, session *model.Session) error {
	if session == nil || session.Token == "" {
		return nil
	}
	ttl := session.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revocationKey(session.Token), session.UserID.String(), ttl); err != nil {
		return internalErr(err, "revoke session")
	}
	return nil
}

// tokens are only stored hashed
func revocationKey(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return revokedSessionPrefix + hex.EncodeToString(sum[:])
}
