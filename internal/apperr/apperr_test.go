package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMatchesByKind(t *testing.T) {
	err := New(KindNotFound, "no cart item found")
	require.ErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrAuthorizationDenied)

	wrapped := fmt.Errorf("remove from cart: %w", err)
	require.ErrorIs(t, wrapped, ErrNotFound)
	require.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestWrapKeepsCauseButHidesIt(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindInternal, cause, "load user")

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "connection refused")
	require.Equal(t, "internal server error", err.PublicMessage())
	require.Equal(t, http.StatusInternalServerError, err.HTTPStatus())
}

func TestKindOfPlainError(t *testing.T) {
	require.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestStatusOf(t *testing.T) {
	cases := map[Kind]int{
		KindAuthenticationRequired: http.StatusUnauthorized,
		KindAuthenticationFailed:   http.StatusUnauthorized,
		KindAuthorizationDenied:    http.StatusForbidden,
		KindValidationFailed:       http.StatusBadRequest,
		KindNotFound:               http.StatusNotFound,
		KindUpstreamFailure:        http.StatusBadGateway,
	}
	for kind, status := range cases {
		require.Equal(t, status, StatusOf(kind), kind)
	}
}

func TestExtensions(t *testing.T) {
	err := New(KindValidationFailed, "passwords don't match")
	require.Equal(t, map[string]interface{}{"code": "VALIDATION_FAILED"}, err.Extensions())
	require.Equal(t, "passwords don't match", err.PublicMessage())
}
