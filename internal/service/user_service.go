package service

import (
	"context"
	"reflect"
	"strings"
	"time"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
)

const loginRequiredMsg = "You must be logged in to do that!"

type IUserService interface {
	// Errors:
	//   - apperr.ErrNotFound
	//   - apperr.ErrInternal
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error)
	// email is matched lowercased.
	GetUserByEmail(ctx context.Context, email string) (*model.UserModel, error)
	// CurrentUser loads the caller of session.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired: nil session, or its user no longer exists
	//   - apperr.ErrInternal
	CurrentUser(ctx context.Context, session *model.Session) (*model.UserModel, error)
	// ListUsers requires the users read permission set.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrAuthorizationDenied
	ListUsers(ctx context.Context, session *model.Session) ([]model.UserModel, error)
	// UpdatePermissions replaces the permission set of userID.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrAuthorizationDenied
	//   - apperr.ErrValidationFailed: unknown permission tag
	//   - apperr.ErrNotFound: no such user
	UpdatePermissions(ctx context.Context, session *model.Session, userID uuid.UUID, permissions []string) (*model.UserModel, error)
}

type UserService struct {
	dbDao             db.IStore
	permissionService IPermissionService
	now               func() time.Time
}

func NewUserService(dbDao db.IStore, permissionService IPermissionService) IUserService {
	if reflect.ValueOf(dbDao).IsNil() {
		panic("user service initialization failed: dbDao cannot be nil")
	}
	if reflect.ValueOf(permissionService).IsNil() {
		panic("user service initialization failed: permissionService cannot be nil")
	}

	return &UserService{
		dbDao:             dbDao,
		permissionService: permissionService,
		now:               time.Now,
	}
}

func (u *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	userEntity, err := u.dbDao.GetUserByID(ctx, db.PgUUID(id))
	if err != nil {
		return nil, storeErr(err, "no user found")
	}

	user := db.ToUserModel(userEntity)
	return &user, nil
}

func (u *UserService) GetUserByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	userEntity, err := u.dbDao.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, storeErr(err, "no user found for email "+email)
	}

	user := db.ToUserModel(userEntity)
	return &user, nil
}

func (u *UserService) CurrentUser(ctx context.Context, session *model.Session) (*model.UserModel, error) {
	if session == nil {
		return nil, apperr.New(apperr.KindAuthenticationRequired, loginRequiredMsg)
	}
	user, err := u.GetUserByID(ctx, session.UserID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, apperr.New(apperr.KindAuthenticationRequired, loginRequiredMsg)
		}
		return nil, err
	}
	return user, nil
}

func (u *UserService) ListUsers(ctx context.Context, session *model.Session) ([]model.UserModel, error) {
	caller, err := u.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := u.permissionService.CanListUsers(caller); err != nil {
		return nil, err
	}

	entities, err := u.dbDao.ListUsers(ctx)
	if err != nil {
		return nil, internalErr(err, "list users")
	}
	users := make([]model.UserModel, 0, len(entities))
	for _, e := range entities {
		users = append(users, db.ToUserModel(e))
	}
	return users, nil
}

func (u *UserService) UpdatePermissions(ctx context.Context, session *model.Session, userID uuid.UUID, permissions []string) (*model.UserModel, error) {
	caller, err := u.CurrentUser(ctx, session)
	if err != nil {
		return nil, err
	}
	if err := u.permissionService.CanUpdatePermissions(caller); err != nil {
		return nil, err
	}

	perms, err := model.PermissionsFromStrings(permissions)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindValidationFailed, err, err.Error())
	}

	userEntity, err := u.dbDao.UpdateUserPermissions(ctx, sqlc.UpdateUserPermissionsParams{
		ID:          db.PgUUID(userID),
		Permissions: perms.Strings(),
		UpdatedAt:   u.now(),
	})
	if err != nil {
		return nil, storeErr(err, "no user found")
	}

	user := db.ToUserModel(userEntity)
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
