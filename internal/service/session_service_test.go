package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/rj/util/random"
	"github.com/ccfreem/sickfits/internal/infra/cache"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/ccfreem/sickfits/internal/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	maker, err := token.NewJWTMaker(random.RandomString(32))
	require.NoError(t, err)
	c := cache.NewMemoryCache()
	svc := NewSessionService(maker, c)
	ctx := context.Background()

	userID := uuid.New()
	session, err := svc.IssueSession(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, userID, session.UserID)

	got, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	require.Equal(t, userID, got.UserID)
	require.WithinDuration(t, session.ExpiresAt, got.ExpiresAt, time.Second)

	_, err = svc.Authenticate(ctx, session.Token+"x")
	require.ErrorIs(t, err, token.ErrInvalidToken)

	require.NoError(t, svc.Revoke(ctx, session))
	_, err = svc.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, ErrSessionRevoked)

	exists, err := c.Exists(ctx, revocationKey(session.Token))
	require.NoError(t, err)
	require.True(t, exists)

	// a fresh token for the same user is unaffected
	other, err := svc.IssueSession(ctx, userID)
	require.NoError(t, err)
	if other.Token != session.Token {
		_, err = svc.Authenticate(ctx, other.Token)
		require.NoError(t, err)
	}

	require.NoError(t, svc.Revoke(ctx, nil))
	require.NoError(t, svc.Revoke(ctx, &model.Session{Token: "t", ExpiresAt: time.Now().Add(-time.Minute)}))
}
