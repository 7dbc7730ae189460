package service

import (
	"context"
	"sync"
	"testing"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestAddToCartIncrements(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, session := env.createUser(t, model.PermissionUser)
	item := env.createItem(t, session, 1200)

	first, err := env.carts.AddToCart(ctx, session, item.ID)
	require.NoError(t, err)
	require.EqualValues(t, 1, first.Quantity)
	require.Equal(t, item.ID, first.Item.ID)

	second, err := env.carts.AddToCart(ctx, session, item.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.EqualValues(t, 2, second.Quantity)

	cart, err := env.carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.EqualValues(t, 2400, cart[0].LineTotal())
}

func TestAddToCartConcurrentKeepsOneLine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, session := env.createUser(t, model.PermissionUser)
	item := env.createItem(t, session, 100)

	const adds = 10
	var wg sync.WaitGroup
	errs := make(chan error, adds)
	for i := 0; i < adds; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.carts.AddToCart(ctx, session, item.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	cart, err := env.carts.GetCart(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)
	require.EqualValues(t, adds, cart[0].Quantity)
}

func TestAddToCartErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, session := env.createUser(t, model.PermissionUser)
	item := env.createItem(t, session, 100)

	_, err := env.carts.AddToCart(ctx, nil, item.ID)
	require.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	_, err = env.carts.AddToCart(ctx, session, uuid.New())
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner, ownerSession := env.createUser(t, model.PermissionUser)
	_, otherSession := env.createUser(t, model.PermissionAdmin)
	item := env.createItem(t, ownerSession, 100)

	line, err := env.carts.AddToCart(ctx, ownerSession, item.ID)
	require.NoError(t, err)

	_, err = env.carts.RemoveFromCart(ctx, otherSession, line.ID)
	require.ErrorIs(t, err, apperr.ErrAuthorizationDenied)

	_, err = env.carts.RemoveFromCart(ctx, nil, line.ID)
	require.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	cart, err := env.carts.GetCart(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, cart, 1)

	removed, err := env.carts.RemoveFromCart(ctx, ownerSession, line.ID)
	require.NoError(t, err)
	require.Equal(t, line.ID, removed.ID)

	_, err = env.carts.RemoveFromCart(ctx, ownerSession, line.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	cart, err = env.carts.GetCart(ctx, owner.ID)
	require.NoError(t, err)
	require.Empty(t, cart)
}
