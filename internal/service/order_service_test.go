package service

import (
	"context"
	"testing"
	"time"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func createOrder(t *testing.T, env *testEnv, owner uuid.UUID, createdAt time.Time) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := uuid.New()
	_, err := env.store.CreateOrder(ctx, sqlc.CreateOrderParams{
		ID:        db.PgUUID(id),
		Total:     2500,
		Charge:    "ch_test",
		UserID:    db.PgUUID(owner),
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	require.NoError(t, err)
	_, err = env.store.CreateOrderItem(ctx, sqlc.CreateOrderItemParams{
		ID:       db.PgUUID(uuid.New()),
		OrderID:  db.PgUUID(id),
		Title:    "boots",
		Price:    2500,
		Quantity: 1,
		UserID:   db.PgUUID(owner),
	})
	require.NoError(t, err)
	return id
}

func TestGetOrderGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, ownerSession := env.createUser(t, model.PermissionUser)
	_, adminSession := env.createUser(t, model.PermissionAdmin)
	_, otherSession := env.createUser(t, model.PermissionUser)
	orderID := createOrder(t, env, owner.ID, time.Now())

	order, err := env.orders.GetOrder(ctx, ownerSession, orderID)
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	require.Equal(t, "boots", order.Items[0].Title)

	_, err = env.orders.GetOrder(ctx, adminSession, orderID)
	require.NoError(t, err)

	_, err = env.orders.GetOrder(ctx, otherSession, orderID)
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)

	_, err = env.orders.GetOrder(ctx, nil, orderID)
	require.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	_, err = env.orders.GetOrder(ctx, ownerSession, uuid.New())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestListOrdersNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, ownerSession := env.createUser(t, model.PermissionUser)
	other, _ := env.createUser(t, model.PermissionUser)

	older := createOrder(t, env, owner.ID, time.Now().Add(-time.Hour))
	newer := createOrder(t, env, owner.ID, time.Now())
	createOrder(t, env, other.ID, time.Now())

	orders, err := env.orders.ListOrders(ctx, ownerSession)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, newer, orders[0].ID)
	require.Equal(t, older, orders[1].ID)
	require.Len(t, orders[0].Items, 1)
}
