package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/mail"
	mock_mail "github.com/ccfreem/sickfits/internal/infra/mail/mock"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	*testEnv
	auth   *AuthService
	sender *mock_mail.MockEmailSender
}

func newAuthFixture(t *testing.T) *authFixture {
	env := newTestEnv(t)
	ctrl := gomock.NewController(t)
	sender := mock_mail.NewMockEmailSender(ctrl)
	var _ mail.EmailSender = sender

	auth := NewAuthService(env.store, env.users, env.sessions, NewMailService(sender), env.permissions, "http://localhost:7777/").(*AuthService)
	return &authFixture{testEnv: env, auth: auth, sender: sender}
}

func TestSignupThenSignin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	res, err := f.auth.Signup(ctx, model.SignupInput{Email: "  Wes@Example.COM ", Password: "dogs", Name: "Wes"})
	require.NoError(t, err)
	require.Equal(t, "wes@example.com", res.User.Email)
	require.Equal(t, model.Permissions{model.PermissionUser}, res.User.Permissions)
	require.NotEqual(t, "dogs", res.User.Password)
	require.NotEmpty(t, res.Token)
	require.WithinDuration(t, time.Now().Add(365*24*time.Hour), res.ExpiresAt, time.Minute)

	session, err := f.auth.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	require.Equal(t, res.User.ID, session.UserID)

	signin, err := f.auth.Signin(ctx, "WES@example.com", "dogs")
	require.NoError(t, err)
	require.Equal(t, res.User.ID, signin.User.ID)
}

func TestSignupRejects(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Signup(ctx, model.SignupInput{Email: "a@b.com", Password: "pw", Name: "A"})
	require.NoError(t, err)

	testCases := []struct {
		name  string
		input model.SignupInput
	}{
		{"duplicate email in other case", model.SignupInput{Email: "A@B.com", Password: "pw", Name: "B"}},
		{"missing email", model.SignupInput{Password: "pw", Name: "B"}},
		{"missing password", model.SignupInput{Email: "c@d.com", Name: "B"}},
		{"missing name", model.SignupInput{Email: "c@d.com", Password: "pw"}},
		{"password too long", model.SignupInput{Email: "e@f.com", Password: strings.Repeat("x", 80), Name: "B"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.auth.Signup(ctx, tc.input)
			require.ErrorIs(t, err, apperr.ErrValidationFailed)
		})
	}
}

func TestSigninFailuresLookAlike(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, _ := f.createUser(t, model.PermissionUser)

	_, errUnknown := f.auth.Signin(ctx, "nobody@example.com", "secret")
	_, errWrong := f.auth.Signin(ctx, user.Email, "not-secret")

	require.ErrorIs(t, errUnknown, apperr.ErrAuthenticationFailed)
	require.ErrorIs(t, errWrong, apperr.ErrAuthenticationFailed)
	require.Equal(t, errUnknown.Error(), errWrong.Error())
}

func TestSignoutRevokesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, session := f.createUser(t, model.PermissionUser)

	msg, err := f.auth.Signout(ctx, session)
	require.NoError(t, err)
	require.Equal(t, "Goodbye!", msg.Message)

	_, err = f.auth.Authenticate(ctx, session.Token)
	require.ErrorIs(t, err, ErrSessionRevoked)

	msg, err = f.auth.Signout(ctx, nil)
	require.NoError(t, err)
	require.Equal(t, "Goodbye!", msg.Message)
}

func TestRequestResetAndResetPassword(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, _ := f.createUser(t, model.PermissionUser)

	var mailed string
	f.sender.EXPECT().
		SendEmail(gomock.Any(), gomock.Any(), []string{user.Email}, gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(subject, content string, to, cc, bcc, attach []string) error {
			mailed = content
			return nil
		})

	msg, err := f.auth.RequestReset(ctx, strings.ToUpper(user.Email))
	require.NoError(t, err)
	require.Equal(t, "thanks", msg.Message)

	stored, err := f.users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	require.Len(t, *stored.ResetToken, 40)
	require.NotNil(t, stored.ResetTokenExpiry)
	require.InDelta(t, time.Now().Add(time.Hour).UnixMilli(), *stored.ResetTokenExpiry, float64(time.Minute.Milliseconds()))
	require.Contains(t, mailed, "http://localhost:7777/reset?resetToken="+*stored.ResetToken)

	_, err = f.auth.ResetPassword(ctx, model.ResetPasswordInput{Password: "new", ConfirmPassword: "other", ResetToken: *stored.ResetToken})
	require.ErrorIs(t, err, apperr.ErrValidationFailed)

	res, err := f.auth.ResetPassword(ctx, model.ResetPasswordInput{Password: "new", ConfirmPassword: "new", ResetToken: *stored.ResetToken})
	require.NoError(t, err)
	require.Nil(t, res.User.ResetToken)
	require.Nil(t, res.User.ResetTokenExpiry)
	require.NotEmpty(t, res.Token)

	_, err = f.auth.Signin(ctx, user.Email, "new")
	require.NoError(t, err)

	// the token is single use
	_, err = f.auth.ResetPassword(ctx, model.ResetPasswordInput{Password: "again", ConfirmPassword: "again", ResetToken: *stored.ResetToken})
	require.ErrorIs(t, err, apperr.ErrValidationFailed)
}

func TestResetPasswordExpiredToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, _ := f.createUser(t, model.PermissionUser)
	f.sender.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	_, err := f.auth.RequestReset(ctx, user.Email)
	require.NoError(t, err)
	stored, err := f.users.GetUserByID(ctx, user.ID)
	require.NoError(t, err)

	f.auth.now = func() time.Time { return time.Now().Add(61 * time.Minute) }
	_, err = f.auth.ResetPassword(ctx, model.ResetPasswordInput{Password: "new", ConfirmPassword: "new", ResetToken: *stored.ResetToken})
	require.ErrorIs(t, err, apperr.ErrValidationFailed)
}

func TestRequestResetFailures(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, _ := f.createUser(t, model.PermissionUser)

	_, err := f.auth.RequestReset(ctx, "ghost@example.com")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	f.sender.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(context.DeadlineExceeded)
	_, err = f.auth.RequestReset(ctx, user.Email)
	require.ErrorIs(t, err, apperr.ErrUpstreamFailure)
}

func TestMe(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	user, session := f.createUser(t, model.PermissionUser)

	me, err := f.auth.Me(ctx, nil)
	require.NoError(t, err)
	require.Nil(t, me)

	me, err = f.auth.Me(ctx, session)
	require.NoError(t, err)
	require.Equal(t, user.ID, me.ID)

	require.NoError(t, f.store.DeleteUser(ctx, db.PgUUID(user.ID)))
	me, err = f.auth.Me(ctx, session)
	require.NoError(t, err)
	require.Nil(t, me)
}
