package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/RoyceAzure/rj/util/random"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func requireDB(t *testing.T) {
	t.Helper()
	if testStore == nil {
		t.Skip("TEST_DATABASE_URL not set, skipping")
	}
}

func createRandomUser(t *testing.T) sqlc.User {
	t.Helper()
	now := time.Now().UTC().Truncate(time.Microsecond)
	arg := sqlc.CreateUserParams{
		ID:          PgUUID(uuid.New()),
		Name:        random.RandomString(8),
		Email:       random.RandomEmail(),
		Password:    random.RandomString(20),
		Permissions: []string{"USER"},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	user, err := testStore.CreateUser(context.Background(), arg)
	require.NoError(t, err)
	require.Equal(t, arg.Email, user.Email)
	require.Equal(t, arg.Permissions, user.Permissions)
	require.False(t, user.ResetToken.Valid)

	t.Cleanup(func() {
		testStore.DeleteUser(context.Background(), user.ID)
	})
	return user
}

func createRandomItem(t *testing.T, owner sqlc.User) sqlc.Item {
	t.Helper()
	now := time.Now().UTC()
	item, err := testStore.CreateItem(context.Background(), sqlc.CreateItemParams{
		ID:          PgUUID(uuid.New()),
		Title:       random.RandomString(10),
		Description: random.RandomString(30),
		Price:       1999,
		UserID:      owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		testStore.DeleteItem(context.Background(), item.ID)
	})
	return item
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	requireDB(t)
	user := createRandomUser(t)

	now := time.Now()
	_, err := testStore.CreateUser(context.Background(), sqlc.CreateUserParams{
		ID:        PgUUID(uuid.New()),
		Name:      "dup",
		Email:     user.Email,
		Password:  "x",
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.True(t, IsUniqueViolation(err))
}

func TestGetUserByID(t *testing.T) {
	requireDB(t)
	user := createRandomUser(t)

	got, err := testStore.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)
	require.WithinDuration(t, user.CreatedAt, got.CreatedAt, time.Second)

	_, err = testStore.GetUserByID(context.Background(), PgUUID(uuid.New()))
	require.True(t, IsNoRows(err))
}

func TestExecTxRollback(t *testing.T) {
	requireDB(t)
	user := createRandomUser(t)
	item := createRandomItem(t, user)

	boom := errors.New("boom")
	err := testStore.ExecTx(context.Background(), func(q sqlc.Querier) error {
		_, err := q.CreateCartItem(context.Background(), sqlc.CreateCartItemParams{
			ID:        PgUUID(uuid.New()),
			Quantity:  1,
			UserID:    user.ID,
			ItemID:    item.ID,
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	rows, err := testStore.ListCartItemsByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestCartItemUniquePerUserAndItem(t *testing.T) {
	requireDB(t)
	user := createRandomUser(t)
	item := createRandomItem(t, user)

	arg := sqlc.CreateCartItemParams{
		ID:        PgUUID(uuid.New()),
		Quantity:  1,
		UserID:    user.ID,
		ItemID:    item.ID,
		CreatedAt: time.Now(),
	}
	_, err := testStore.CreateCartItem(context.Background(), arg)
	require.NoError(t, err)

	arg.ID = PgUUID(uuid.New())
	_, err = testStore.CreateCartItem(context.Background(), arg)
	require.True(t, IsUniqueViolation(err))

	rows, err := testStore.ListCartItemsByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, item.Title, rows[0].Item.Title)
}

func TestToUserModel(t *testing.T) {
	id := uuid.New()
	token := "abc"
	expiry := int64(1700000000000)
	user := ToUserModel(sqlc.User{
		ID:               PgUUID(id),
		Email:            "a@b.c",
		Permissions:      []string{"ADMIN", "USER"},
		ResetToken:       PgText(&token),
		ResetTokenExpiry: PgInt8(&expiry),
	})
	require.Equal(t, id, user.ID)
	require.Equal(t, "abc", *user.ResetToken)
	require.Equal(t, expiry, *user.ResetTokenExpiry)
	require.Len(t, user.Permissions, 2)
}

func TestFromPgUUIDPtrInvalid(t *testing.T) {
	require.Nil(t, FromPgUUIDPtr(PgUUIDPtr(nil)))
	require.Equal(t, uuid.Nil, FromPgUUID(PgUUIDPtr(nil)))
}
