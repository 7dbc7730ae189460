package service

import (
	"context"
	"testing"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestListUsersGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, userSession := env.createUser(t, model.PermissionUser)
	_, adminSession := env.createUser(t, model.PermissionAdmin)

	_, err := env.users.ListUsers(ctx, nil)
	require.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	_, err = env.users.ListUsers(ctx, userSession)
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)

	users, err := env.users.ListUsers(ctx, adminSession)
	require.NoError(t, err)
	require.Len(t, users, 2)
}

func TestUpdatePermissions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	target, targetSession := env.createUser(t, model.PermissionUser)
	_, managerSession := env.createUser(t, model.PermissionPermissionUpdate)

	_, err := env.users.UpdatePermissions(ctx, targetSession, target.ID, []string{"ADMIN"})
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)

	_, err = env.users.UpdatePermissions(ctx, managerSession, target.ID, []string{"ADMIN", "GODMODE"})
	require.ErrorIs(t, err, apperr.ErrValidationFailed)

	_, err = env.users.UpdatePermissions(ctx, managerSession, uuid.New(), []string{"USER"})
	require.ErrorIs(t, err, apperr.ErrNotFound)

	updated, err := env.users.UpdatePermissions(ctx, managerSession, target.ID, []string{"user", "ITEMCREATE", "USER"})
	require.NoError(t, err)
	require.Equal(t, model.Permissions{model.PermissionUser, model.PermissionItemCreate}, updated.Permissions)
}

func TestCurrentUserOfDeletedUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, session := env.createUser(t, model.PermissionUser)
	session.UserID = uuid.New()

	_, err := env.users.CurrentUser(ctx, session)
	require.ErrorIs(t, err, apperr.ErrAuthenticationRequired)
}
