package service

import (
	"context"
	"testing"
	"time"

	"github.com/RoyceAzure/rj/util/random"
	"github.com/ccfreem/sickfits/internal/config"
	"github.com/ccfreem/sickfits/internal/infra/cache"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/memstore"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/ccfreem/sickfits/internal/token"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store       *memstore.Store
	cache       *cache.MemoryCache
	permissions IPermissionService
	users       IUserService
	sessions    ISessionService
	items       IItemService
	carts       ICartService
	orders      IOrderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	maker, err := token.NewJWTMaker(random.RandomString(32))
	require.NoError(t, err)

	env := &testEnv{
		store: memstore.New(),
		cache: cache.NewMemoryCache(),
	}
	env.permissions = NewPermissionService(config.DefaultPermissionConfig())
	env.users = NewUserService(env.store, env.permissions)
	env.sessions = NewSessionService(maker, env.cache)
	env.items = NewItemService(env.store, env.users, env.permissions)
	env.carts = NewCartService(env.store, env.users)
	env.orders = NewOrderService(env.store, env.users, env.permissions)
	return env
}

// createUser stores a user with password "secret" and returns a session for it.
func (e *testEnv) createUser(t *testing.T, perms ...model.Permission) (model.UserModel, *model.Session) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	now := time.Now()
	entity, err := e.store.CreateUser(context.Background(), sqlc.CreateUserParams{
		ID:          db.PgUUID(uuid.New()),
		Name:        random.RandomString(8),
		Email:       normalizeEmail(random.RandomEmail()),
		Password:    string(hash),
		Permissions: model.Permissions(perms).Strings(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)

	session, err := e.sessions.IssueSession(context.Background(), db.FromPgUUID(entity.ID))
	require.NoError(t, err)
	return db.ToUserModel(entity), session
}

func (e *testEnv) createItem(t *testing.T, owner *model.Session, price int32) model.ItemModel {
	t.Helper()
	item, err := e.items.CreateItem(context.Background(), owner, model.ItemInput{
		Title:       random.RandomString(10),
		Description: random.RandomString(30),
		Price:       price,
	})
	require.NoError(t, err)
	return *item
}
