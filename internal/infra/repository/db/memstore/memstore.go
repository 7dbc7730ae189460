// Package memstore keeps every table in process memory. It backs DB_DRIVER=memory and the service tests.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type tables struct {
	users      map[[16]byte]sqlc.User
	items      map[[16]byte]sqlc.Item
	cartItems  map[[16]byte]sqlc.CartItem
	orders     map[[16]byte]sqlc.Order
	orderItems map[[16]byte]sqlc.OrderItem
	checkouts  map[[16]byte]sqlc.Checkout
}

func newTables() tables {
	return tables{
		users:      map[[16]byte]sqlc.User{},
		items:      map[[16]byte]sqlc.Item{},
		cartItems:  map[[16]byte]sqlc.CartItem{},
		orders:     map[[16]byte]sqlc.Order{},
		orderItems: map[[16]byte]sqlc.OrderItem{},
		checkouts:  map[[16]byte]sqlc.Checkout{},
	}
}

func (t tables) clone() tables {
	c := newTables()
	for k, v := range t.users {
		v.Permissions = append([]string(nil), v.Permissions...)
		c.users[k] = v
	}
	for k, v := range t.items {
		c.items[k] = v
	}
	for k, v := range t.cartItems {
		c.cartItems[k] = v
	}
	for k, v := range t.orders {
		c.orders[k] = v
	}
	for k, v := range t.orderItems {
		c.orderItems[k] = v
	}
	for k, v := range t.checkouts {
		c.checkouts[k] = v
	}
	return c
}

type state struct {
	// txMu is held by an open transaction and by every write made outside one,
	// so a rollback only ever discards the transaction's own writes.
	txMu sync.Mutex
	mu   sync.RWMutex
	t    tables
}

// Store is safe for concurrent use. Transactions are serialized with all writes
// and rolled back by restoring a snapshot. Reads outside a transaction may see
// its uncommitted writes.
type Store struct {
	*state
	inTx bool
}

var _ db.IStore = (*Store)(nil)

func New() *Store {
	return &Store{state: &state{t: newTables()}}
}

// lockWrite takes the write lock and returns its release.
func (s *Store) lockWrite() func() {
	if !s.inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		if !s.inTx {
			s.txMu.Unlock()
		}
	}
}

func (s *Store) ExecTx(ctx context.Context, fn func(sqlc.Querier) error) error {
	if s.inTx {
		return fn(s)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.t.clone()
	s.mu.RUnlock()

	err := fn(&Store{state: s.state, inTx: true})
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		s.mu.Lock()
		s.t = snapshot
		s.mu.Unlock()
	}
	return err
}

func (s *Store) ExecMultiTx(ctx context.Context, fns []func(sqlc.Querier) error) error {
	return s.ExecTx(ctx, func(q sqlc.Querier) error {
		for _, fn := range fns {
			if err := fn(q); err != nil {
				return err
			}
		}
		return nil
	})
}

func key(id pgtype.UUID) [16]byte {
	return id.Bytes
}

func sameUUID(a, b pgtype.UUID) bool {
	return a.Valid && b.Valid && a.Bytes == b.Bytes
}

// users

func (s *Store) CreateUser(ctx context.Context, arg sqlc.CreateUserParams) (sqlc.User, error) {
	defer s.lockWrite()()
	for _, u := range s.t.users {
		if u.Email == arg.Email {
			return sqlc.User{}, db.UniqueViolation("users_email_key")
		}
	}
	u := sqlc.User{
		ID:          arg.ID,
		Name:        arg.Name,
		Email:       arg.Email,
		Password:    arg.Password,
		Permissions: append([]string{}, arg.Permissions...),
		CreatedAt:   arg.CreatedAt,
		UpdatedAt:   arg.UpdatedAt,
	}
	s.t.users[key(arg.ID)] = u
	return u, nil
}

func (s *Store) GetUserByID(ctx context.Context, id pgtype.UUID) (sqlc.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.t.users[key(id)]
	if !ok {
		return sqlc.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (sqlc.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.t.users {
		if u.Email == email {
			return u, nil
		}
	}
	return sqlc.User{}, pgx.ErrNoRows
}

func (s *Store) GetUserByResetToken(ctx context.Context, resetToken pgtype.Text) (sqlc.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !resetToken.Valid {
		return sqlc.User{}, pgx.ErrNoRows
	}
	for _, u := range s.t.users {
		if u.ResetToken.Valid && u.ResetToken.String == resetToken.String {
			return u, nil
		}
	}
	return sqlc.User{}, pgx.ErrNoRows
}

func (s *Store) ListUsers(ctx context.Context) ([]sqlc.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]sqlc.User, 0, len(s.t.users))
	for _, u := range s.t.users {
		users = append(users, u)
	}
	sort.SliceStable(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

func (s *Store) updateUser(id pgtype.UUID, fn func(*sqlc.User)) (sqlc.User, error) {
	defer s.lockWrite()()
	u, ok := s.t.users[key(id)]
	if !ok {
		return sqlc.User{}, pgx.ErrNoRows
	}
	fn(&u)
	s.t.users[key(id)] = u
	return u, nil
}

func (s *Store) UpdateUserResetToken(ctx context.Context, arg sqlc.UpdateUserResetTokenParams) (sqlc.User, error) {
	return s.updateUser(arg.ID, func(u *sqlc.User) {
		u.ResetToken = arg.ResetToken
		u.ResetTokenExpiry = arg.ResetTokenExpiry
		u.UpdatedAt = arg.UpdatedAt
	})
}

func (s *Store) UpdateUserPassword(ctx context.Context, arg sqlc.UpdateUserPasswordParams) (sqlc.User, error) {
	return s.updateUser(arg.ID, func(u *sqlc.User) {
		u.Password = arg.Password
		u.ResetToken = pgtype.Text{}
		u.ResetTokenExpiry = pgtype.Int8{}
		u.UpdatedAt = arg.UpdatedAt
	})
}

func (s *Store) UpdateUserPermissions(ctx context.Context, arg sqlc.UpdateUserPermissionsParams) (sqlc.User, error) {
	return s.updateUser(arg.ID, func(u *sqlc.User) {
		u.Permissions = append([]string{}, arg.Permissions...)
		u.UpdatedAt = arg.UpdatedAt
	})
}

func (s *Store) DeleteUser(ctx context.Context, id pgtype.UUID) error {
	defer s.lockWrite()()
	delete(s.t.users, key(id))
	for k, c := range s.t.cartItems {
		if sameUUID(c.UserID, id) {
			delete(s.t.cartItems, k)
		}
	}
	for k, it := range s.t.items {
		if sameUUID(it.UserID, id) {
			it.UserID = pgtype.UUID{}
			s.t.items[k] = it
		}
	}
	return nil
}

// items

func (s *Store) CreateItem(ctx context.Context, arg sqlc.CreateItemParams) (sqlc.Item, error) {
	defer s.lockWrite()()
	it := sqlc.Item{
		ID:          arg.ID,
		Title:       arg.Title,
		Description: arg.Description,
		Image:       arg.Image,
		LargeImage:  arg.LargeImage,
		Price:       arg.Price,
		UserID:      arg.UserID,
		CreatedAt:   arg.CreatedAt,
		UpdatedAt:   arg.UpdatedAt,
	}
	s.t.items[key(arg.ID)] = it
	return it, nil
}

func (s *Store) GetItemByID(ctx context.Context, id pgtype.UUID) (sqlc.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.t.items[key(id)]
	if !ok {
		return sqlc.Item{}, pgx.ErrNoRows
	}
	return it, nil
}

func (s *Store) UpdateItem(ctx context.Context, arg sqlc.UpdateItemParams) (sqlc.Item, error) {
	defer s.lockWrite()()
	it, ok := s.t.items[key(arg.ID)]
	if !ok {
		return sqlc.Item{}, pgx.ErrNoRows
	}
	if arg.Title.Valid {
		it.Title = arg.Title.String
	}
	if arg.Description.Valid {
		it.Description = arg.Description.String
	}
	if arg.Image.Valid {
		it.Image = arg.Image
	}
	if arg.LargeImage.Valid {
		it.LargeImage = arg.LargeImage
	}
	if arg.Price.Valid {
		it.Price = arg.Price.Int32
	}
	it.UpdatedAt = arg.UpdatedAt
	s.t.items[key(arg.ID)] = it
	return it, nil
}

func (s *Store) DeleteItem(ctx context.Context, id pgtype.UUID) error {
	defer s.lockWrite()()
	delete(s.t.items, key(id))
	for k, c := range s.t.cartItems {
		if sameUUID(c.ItemID, id) {
			delete(s.t.cartItems, k)
		}
	}
	return nil
}

func matchesSearch(it sqlc.Item, search string) bool {
	if search == "" {
		return true
	}
	search = strings.ToLower(search)
	return strings.Contains(strings.ToLower(it.Title), search) ||
		strings.Contains(strings.ToLower(it.Description), search)
}

func (s *Store) ListItems(ctx context.Context, arg sqlc.ListItemsParams) ([]sqlc.Item, error) {
	s.mu.RLock()
	var items []sqlc.Item
	for _, it := range s.t.items {
		if matchesSearch(it, arg.Search) {
			items = append(items, it)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch arg.OrderBy {
		case "price_ASC":
			if a.Price != b.Price {
				return a.Price < b.Price
			}
		case "price_DESC":
			if a.Price != b.Price {
				return a.Price > b.Price
			}
		case "title_ASC":
			if a.Title != b.Title {
				return a.Title < b.Title
			}
		case "createdAt_ASC":
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		return a.CreatedAt.After(b.CreatedAt)
	})

	out := []sqlc.Item{}
	for i := int(arg.PageOffset); i < len(items) && len(out) < int(arg.PageLimit); i++ {
		out = append(out, items[i])
	}
	return out, nil
}

func (s *Store) CountItems(ctx context.Context, search string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var n int64
	for _, it := range s.t.items {
		if matchesSearch(it, search) {
			n++
		}
	}
	return n, nil
}
