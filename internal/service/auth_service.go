package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/constants"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	signoutMessage      = "Goodbye!"
	requestResetMessage = "thanks"
	invalidLoginMessage = "Invalid email or password"
)

type IAuthService interface {
	// Signup creates a user with the configured signup permissions and signs them in.
	//
	// Errors:
	//   - apperr.ErrValidationFailed: missing field, or email already registered
	//   - apperr.ErrInternal
	Signup(ctx context.Context, input model.SignupInput) (*model.AuthResult, error)
	// Errors:
	//   - apperr.ErrAuthenticationFailed: unknown email or wrong password, same message for both
	Signin(ctx context.Context, email, password string) (*model.AuthResult, error)
	// Signout revokes the session token. Succeeds without a session.
	Signout(ctx context.Context, session *model.Session) (*model.SuccessMessage, error)
	// RequestReset stores a fresh reset token valid for one hour and mails the link.
	//
	// Errors:
	//   - apperr.ErrNotFound: no user for email
	//   - apperr.ErrUpstreamFailure: mail could not be sent
	RequestReset(ctx context.Context, email string) (*model.SuccessMessage, error)
	// ResetPassword sets a new password from a valid reset token and signs the user in.
	//
	// Errors:
	//   - apperr.ErrValidationFailed: passwords differ, or token unknown or expired
	ResetPassword(ctx context.Context, input model.ResetPasswordInput) (*model.AuthResult, error)
	// Authenticate resolves a session token. Any failure means the request is anonymous.
	Authenticate(ctx context.Context, rawToken string) (*model.Session, error)
	// Me returns nil for anonymous callers and for sessions of deleted users.
	Me(ctx context.Context, session *model.Session) (*model.UserModel, error)
}

type AuthService struct {
	dbDao             db.IStore
	userService       IUserService
	sessionService    ISessionService
	mailService       IMailService
	permissionService IPermissionService
	frontendURL       string
	now               func() time.Time
}

func NewAuthService(dbDao db.IStore, userService IUserService, sessionService ISessionService, mailService IMailService, permissionService IPermissionService, frontendURL string) IAuthService {
	if reflect.ValueOf(dbDao).IsNil() {
		panic("auth service initialization failed: dbDao cannot be nil")
	}
	if reflect.ValueOf(userService).IsNil() {
		panic("auth service initialization failed: userService cannot be nil")
	}
	if reflect.ValueOf(sessionService).IsNil() {
		panic("auth service initialization failed: sessionService cannot be nil")
	}
	if reflect.ValueOf(mailService).IsNil() {
		panic("auth service initialization failed: mailService cannot be nil")
	}
	if reflect.ValueOf(permissionService).IsNil() {
		panic("auth service initialization failed: permissionService cannot be nil")
	}

	return &AuthService{
		dbDao:             dbDao,
		userService:       userService,
		sessionService:    sessionService,
		mailService:       mailService,
		permissionService: permissionService,
		frontendURL:       strings.TrimRight(frontendURL, "/"),
		now:               time.Now,
	}
}

func (a *AuthService) Signup(ctx context.Context, input model.SignupInput) (*model.AuthResult, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if email == "" || input.Password == "" || name == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "email, name and password are required")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := a.now()
	userEntity, err := a.dbDao.CreateUser(ctx, sqlc.CreateUserParams{
		ID:          db.PgUUID(uuid.New()),
		Name:        name,
		Email:       email,
		Password:    hash,
		Permissions: a.permissionService.SignupPermissions().Strings(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, apperr.Newf(apperr.KindValidationFailed, "an account with email %s already exists", email)
		}
		return nil, internalErr(err, "create user")
	}

	return a.signIn(ctx, db.ToUserModel(userEntity))
}

func (a *AuthService) Signin(ctx context.Context, email, password string) (*model.AuthResult, error) {
	user, err := a.userService.GetUserByEmail(ctx, email)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.New(apperr.KindAuthenticationFailed, invalidLoginMessage)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.KindAuthenticationFailed, invalidLoginMessage)
	}

	return a.signIn(ctx, *user)
}

func (a *AuthService) Signout(ctx context.Context, session *model.Session) (*model.SuccessMessage, error) {
	if err := a.sessionService.Revoke(ctx, session); err != nil {
		return nil, err
	}
	return &model.SuccessMessage{Message: signoutMessage}, nil
}

func (a *AuthService) RequestReset(ctx context.Context, email string) (*model.SuccessMessage, error) {
	user, err := a.userService.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	resetToken, err := newResetToken()
	if err != nil {
		return nil, internalErr(err, "generate reset token")
	}
	now := a.now()
	expiry := now.Add(constants.ResetTokenDuration).UnixMilli()

	_, err = a.dbDao.UpdateUserResetToken(ctx, sqlc.UpdateUserResetTokenParams{
		ID:               db.PgUUID(user.ID),
		ResetToken:       db.PgText(&resetToken),
		ResetTokenExpiry: db.PgInt8(&expiry),
		UpdatedAt:        now,
	})
	if err != nil {
		return nil, storeErr(err, "no user found for email "+email)
	}

	err = a.mailService.SendResetEmail(ctx, ResetEmailData{
		Name:          user.Name,
		Email:         user.Email,
		ResetURL:      fmt.Sprintf("%s/reset?resetToken=%s", a.frontendURL, url.QueryEscape(resetToken)),
		ExpiryMinutes: int(constants.ResetTokenDuration / time.Minute),
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstreamFailure, err, "could not send the reset email")
	}

	return &model.SuccessMessage{Message: requestResetMessage}, nil
}

func (a *AuthService) ResetPassword(ctx context.Context, input model.ResetPasswordInput) (*model.AuthResult, error) {
	if input.Password != input.ConfirmPassword {
		return nil, apperr.New(apperr.KindValidationFailed, "Passwords don't match!")
	}
	if input.Password == "" || input.ResetToken == "" {
		return nil, apperr.New(apperr.KindValidationFailed, "password and reset token are required")
	}

	userEntity, err := a.dbDao.GetUserByResetToken(ctx, db.PgText(&input.ResetToken))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, apperr.New(apperr.KindValidationFailed, "This token is either invalid or expired")
		}
		return nil, internalErr(err, "find reset token")
	}
	now := a.now()
	if !userEntity.ResetTokenExpiry.Valid || userEntity.ResetTokenExpiry.Int64 < now.UnixMilli() {
		return nil, apperr.New(apperr.KindValidationFailed, "This token is either invalid or expired")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	updated, err := a.dbDao.UpdateUserPassword(ctx, sqlc.UpdateUserPasswordParams{
		ID:        userEntity.ID,
		Password:  hash,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, storeErr(err, "no user found")
	}

	return a.signIn(ctx, db.ToUserModel(updated))
}

func (a *AuthService) Authenticate(ctx context.Context, rawToken string) (*model.Session, error) {
	return a.sessionService.Authenticate(ctx, rawToken)
}

func (a *AuthService) Me(ctx context.Context, session *model.Session) (*model.UserModel, error) {
	if session == nil {
		return nil, nil
	}
	user, err := a.userService.GetUserByID(ctx, session.UserID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			zerolog.Ctx(ctx).Debug().Str("user_id", session.UserID.String()).Msg("session points at a deleted user")
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (a *AuthService) signIn(ctx context.Context, user model.UserModel) (*model.AuthResult, error) {
	session, err := a.sessionService.IssueSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &model.AuthResult{
		User:      user,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.New(apperr.KindValidationFailed, "password is too long")
		}
		return "", internalErr(err, "hash password")
	}
	return string(hash), nil
}

func newResetToken() (string, error) {
	buf := make([]byte, constants.ResetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
