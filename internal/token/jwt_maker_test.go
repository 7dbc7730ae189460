package token

import (
	"testing"
	"time"

	"github.com/RoyceAzure/rj/util/random"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(random.RandomString(32))
	require.NoError(t, err)

	userID := uuid.New()
	duration := time.Minute

	token, payload, err := maker.CreateToken(userID, duration)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, userID, payload.UserID)

	verified, err := maker.VertifyToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, verified.UserID)
	require.WithinDuration(t, payload.ExpiredAt, verified.ExpiredAt, time.Second)
}

func TestExpiredJWTToken(t *testing.T) {
	maker, err := NewJWTMaker(random.RandomString(32))
	require.NoError(t, err)

	token, _, err := maker.CreateToken(uuid.New(), -time.Minute)
	require.NoError(t, err)

	payload, err := maker.VertifyToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestJWTTokenWrongSecret(t *testing.T) {
	maker1, err := NewJWTMaker(random.RandomString(32))
	require.NoError(t, err)
	maker2, err := NewJWTMaker(random.RandomString(32))
	require.NoError(t, err)

	token, _, err := maker1.CreateToken(uuid.New(), time.Minute)
	require.NoError(t, err)

	_, err = maker2.VertifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTTokenAlgNone(t *testing.T) {
	maker, err := NewJWTMaker(random.RandomString(32))
	require.NoError(t, err)

	claims := jwt.MapClaims{"userId": uuid.New().String()}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = maker.VertifyToken(unsigned)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTMakerShortKey(t *testing.T) {
	_, err := NewJWTMaker("short")
	require.Error(t, err)
}
