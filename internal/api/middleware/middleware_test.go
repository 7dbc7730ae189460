package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/ccfreem/sickfits/internal/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubAuthenticator struct {
	sessions map[string]*model.Session
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, rawToken string) (*model.Session, error) {
	if session, ok := s.sessions[rawToken]; ok {
		return session, nil
	}
	return nil, errors.New("invalid token")
}

func TestRequestIdMiddleware(t *testing.T) {
	var seen string
	handler := RequestIdMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = util.GetRequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	require.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", seen)
}

func TestSessionMiddleware(t *testing.T) {
	session := &model.Session{UserID: uuid.New(), Token: "good"}
	auth := &stubAuthenticator{sessions: map[string]*model.Session{"good": session}}

	var got *model.Session
	var writer http.ResponseWriter
	handler := SessionMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = util.GetSessionFromContext(r.Context())
		writer = util.GetResponseWriterFromContext(r.Context())
	}))

	testCases := []struct {
		name   string
		cookie *http.Cookie
		want   *model.Session
	}{
		{"valid cookie", &http.Cookie{Name: constants.SessionCookieName, Value: "good"}, session},
		{"bad token stays anonymous", &http.Cookie{Name: constants.SessionCookieName, Value: "forged"}, nil},
		{"no cookie", nil, nil},
		{"other cookie", &http.Cookie{Name: "theme", Value: "good"}, nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, writer = nil, nil
			req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.want, got)
			require.NotNil(t, writer)
		})
	}
}

func TestLoggerMiddlewareRecordsStatusAndUser(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	session := &model.Session{UserID: uuid.New(), Token: "good"}
	auth := &stubAuthenticator{sessions: map[string]*model.Session{"good": session}}

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := RequestIdMiddleware(LoggerMiddleware(logger)(SessionMiddleware(auth)(inner)))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "good"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "request completed", line["message"])
	require.EqualValues(t, http.StatusTeapot, line["status"])
	require.Equal(t, session.UserID.String(), line["user_id"])
	require.NotEmpty(t, line["request_id"])
}

func TestRecoverMiddleware(t *testing.T) {
	handler := RecoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, rec.Body.String(), "Internal Server Error")
}

func TestStatusRecoderDefaultsToOK(t *testing.T) {
	recoder := &StatusRecoder{ResponseWriter: httptest.NewRecorder()}
	_, err := recoder.Write([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, recoder.Status())
}
