package memstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, s *Store, title string, price int32, createdAt time.Time) sqlc.Item {
	t.Helper()
	it, err := s.CreateItem(context.Background(), sqlc.CreateItemParams{
		ID:          db.PgUUID(uuid.New()),
		Title:       title,
		Description: title + " description",
		Price:       price,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	})
	require.NoError(t, err)
	return it
}

func TestExecTxRestoresOnError(t *testing.T) {
	s := New()
	ctx := context.Background()
	it := seedItem(t, s, "shoe", 100, time.Now())

	boom := errors.New("boom")
	err := s.ExecTx(ctx, func(q sqlc.Querier) error {
		require.NoError(t, q.DeleteItem(ctx, it.ID))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.GetItemByID(ctx, it.ID)
	require.NoError(t, err)
}

func TestExecTxRollbackKeepsConcurrentWrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	it := seedItem(t, s, "shoe", 100, time.Now())

	inTx := make(chan struct{})
	release := make(chan struct{})
	writeDone := make(chan error, 1)

	boom := errors.New("boom")
	txDone := make(chan error, 1)
	go func() {
		txDone <- s.ExecTx(ctx, func(q sqlc.Querier) error {
			if err := q.DeleteItem(ctx, it.ID); err != nil {
				return err
			}
			close(inTx)
			<-release
			return boom
		})
	}()

	<-inTx
	go func() {
		_, err := s.CreateUser(ctx, sqlc.CreateUserParams{ID: db.PgUUID(uuid.New()), Email: "late@b.c", CreatedAt: time.Now()})
		writeDone <- err
	}()

	select {
	case <-writeDone:
		t.Fatal("write outside the transaction finished while it was open")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)

	require.ErrorIs(t, <-txDone, boom)
	require.NoError(t, <-writeDone)

	_, err := s.GetUserByEmail(ctx, "late@b.c")
	require.NoError(t, err)
	_, err = s.GetItemByID(ctx, it.ID)
	require.NoError(t, err)
}

func TestExecTxNestedRunsInline(t *testing.T) {
	s := New()
	ctx := context.Background()
	it := seedItem(t, s, "shoe", 100, time.Now())

	err := s.ExecTx(ctx, func(q sqlc.Querier) error {
		return q.(*Store).ExecTx(ctx, func(inner sqlc.Querier) error {
			return inner.DeleteItem(ctx, it.ID)
		})
	})
	require.NoError(t, err)

	_, err = s.GetItemByID(ctx, it.ID)
	require.True(t, db.IsNoRows(err))
}

func TestCreateUserUniqueEmail(t *testing.T) {
	s := New()
	ctx := context.Background()
	arg := sqlc.CreateUserParams{ID: db.PgUUID(uuid.New()), Email: "a@b.c", CreatedAt: time.Now()}
	_, err := s.CreateUser(ctx, arg)
	require.NoError(t, err)

	arg.ID = db.PgUUID(uuid.New())
	_, err = s.CreateUser(ctx, arg)
	require.True(t, db.IsUniqueViolation(err))
}

func TestListItemsOrderAndPage(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Now()
	seedItem(t, s, "belt", 300, base)
	seedItem(t, s, "anorak", 100, base.Add(time.Second))
	seedItem(t, s, "cap", 200, base.Add(2*time.Second))

	items, err := s.ListItems(ctx, sqlc.ListItemsParams{PageLimit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"cap", "anorak", "belt"}, titles(items))

	items, err = s.ListItems(ctx, sqlc.ListItemsParams{OrderBy: "price_ASC", PageLimit: 2, PageOffset: 1})
	require.NoError(t, err)
	require.Equal(t, []string{"cap", "belt"}, titles(items))

	items, err = s.ListItems(ctx, sqlc.ListItemsParams{Search: "ANO", PageLimit: 10})
	require.NoError(t, err)
	require.Equal(t, []string{"anorak"}, titles(items))

	n, err := s.CountItems(ctx, "")
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestDeleteItemCascadesCart(t *testing.T) {
	s := New()
	ctx := context.Background()
	it := seedItem(t, s, "shoe", 100, time.Now())
	userID := db.PgUUID(uuid.New())

	_, err := s.CreateCartItem(ctx, sqlc.CreateCartItemParams{ID: db.PgUUID(uuid.New()), Quantity: 1, UserID: userID, ItemID: it.ID})
	require.NoError(t, err)
	_, err = s.CreateCartItem(ctx, sqlc.CreateCartItemParams{ID: db.PgUUID(uuid.New()), Quantity: 1, UserID: userID, ItemID: it.ID})
	require.True(t, db.IsUniqueViolation(err))

	require.NoError(t, s.DeleteItem(ctx, it.ID))
	rows, err := s.ListCartItemsByUser(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func titles(items []sqlc.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Title)
	}
	return out
}
