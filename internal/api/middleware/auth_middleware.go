package middleware

import (
	"context"
	"net/http"

	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/ccfreem/sickfits/internal/util"
	"github.com/rs/zerolog"
)

type SessionAuthenticator interface {
	Authenticate(ctx context.Context, rawToken string) (*model.Session, error)
}

// SessionMiddleware resolves the session cookie. A missing or bad token never stops the request,
// it only leaves the request anonymous. The response writer is put in the context so resolvers
// can set or clear the cookie.
func SessionMiddleware(authenticator SessionAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := util.WithResponseWriter(r.Context(), w)

			if session := checkSessionCookie(ctx, authenticator, r); session != nil {
				ctx = util.WithSession(ctx, session)
				zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
					return c.Str("user_id", session.UserID.String())
				})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func checkSessionCookie(ctx context.Context, authenticator SessionAuthenticator, r *http.Request) *model.Session {
	cookie, err := r.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	session, err := authenticator.Authenticate(ctx, cookie.Value)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("ignoring session cookie")
		return nil
	}
	return session
}
