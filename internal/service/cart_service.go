package service

import (
	"context"
	"reflect"
	"time"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ICartService interface {
	// AddToCart adds one unit of itemID to the caller's cart.
	// A second add of the same item increments the existing line.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrNotFound: no such item
	AddToCart(ctx context.Context, session *model.Session, itemID uuid.UUID) (*model.CartItemModel, error)
	// RemoveFromCart deletes a line owned by the caller and returns it.
	//
	// Errors:
	//   - apperr.ErrAuthenticationRequired
	//   - apperr.ErrNotFound
	//   - apperr.ErrAuthorizationDenied: line belongs to someone else
	RemoveFromCart(ctx context.Context, session *model.Session, cartItemID uuid.UUID) (*model.CartItemModel, error)
	// GetCart lists the lines of userID, oldest first, with their items.
	GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartItemModel, error)
}

type CartService struct {
	dbDao       db.IStore
	userService IUserService
	now         func() time.Time
}

func NewCartService(dbDao db.IStore, userService IUserService) ICartService {
	if reflect.ValueOf(dbDao).IsNil() {
		panic("cart service initialization failed: dbDao cannot be nil")
	}
	if reflect.ValueOf(userService).IsNil() {
		panic("cart service initialization failed: userService cannot be nil")
	}

	return &CartService{
		dbDao:       dbDao,
		userService: userService,
		now:         time.Now,
	}
}

func (s *CartService) AddToCart(ctx context.Context, session *model.Session, itemID uuid.UUID) (*model.CartItemModel, error) {
	if session == nil {
		return nil, apperr.New(apperr.KindAuthenticationRequired, loginRequiredMsg)
	}
	itemEntity, err := s.dbDao.GetItemByID(ctx, db.PgUUID(itemID))
	if err != nil {
		return nil, storeErr(err, "no item found")
	}

	cartEntity, err := s.upsertCartItem(ctx, session.UserID, itemID)
	if err != nil && db.IsUniqueViolation(err) {
		// lost an insert race with a concurrent add, the row exists now
		zerolog.Ctx(ctx).Debug().Str("item_id", itemID.String()).Msg("cart insert raced, retrying as increment")
		cartEntity, err = s.upsertCartItem(ctx, session.UserID, itemID)
	}
	if err != nil {
		return nil, storeErr(err, "no item found")
	}

	cartItem := db.ToCartItemModel(cartEntity)
	item := db.ToItemModel(itemEntity)
	cartItem.Item = &item
	return &cartItem, nil
}

func (s *CartService) upsertCartItem(ctx context.Context, userID, itemID uuid.UUID) (sqlc.CartItem, error) {
	var result sqlc.CartItem
	err := s.dbDao.ExecTx(ctx, func(q sqlc.Querier) error {
		existing, err := q.GetCartItemByUserAndItem(ctx, sqlc.GetCartItemByUserAndItemParams{
			UserID: db.PgUUID(userID),
			ItemID: db.PgUUID(itemID),
		})
		if err == nil {
			result, err = q.IncrementCartItemQuantity(ctx, existing.ID)
			return err
		}
		if !db.IsNoRows(err) {
			return err
		}

		result, err = q.CreateCartItem(ctx, sqlc.CreateCartItemParams{
			ID:        db.PgUUID(uuid.New()),
			Quantity:  1,
			UserID:    db.PgUUID(userID),
			ItemID:    db.PgUUID(itemID),
			CreatedAt: s.now(),
		})
		return err
	})
	return result, err
}

func (s *CartService) RemoveFromCart(ctx context.Context, session *model.Session, cartItemID uuid.UUID) (*model.CartItemModel, error) {
	if session == nil {
		return nil, apperr.New(apperr.KindAuthenticationRequired, loginRequiredMsg)
	}

	cartEntity, err := s.dbDao.GetCartItemByID(ctx, db.PgUUID(cartItemID))
	if err != nil {
		return nil, storeErr(err, "No cart item found")
	}
	cartItem := db.ToCartItemModel(cartEntity)
	if cartItem.UserID != session.UserID {
		return nil, apperr.New(apperr.KindAuthorizationDenied, "Not yours to delete!")
	}

	if err := s.dbDao.DeleteCartItem(ctx, cartEntity.ID); err != nil {
		return nil, internalErr(err, "delete cart item")
	}
	return &cartItem, nil
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]model.CartItemModel, error) {
	rows, err := s.dbDao.ListCartItemsByUser(ctx, db.PgUUID(userID))
	if err != nil {
		return nil, internalErr(err, "list cart")
	}

	cart := make([]model.CartItemModel, 0, len(rows))
	for _, row := range rows {
		cartItem := db.ToCartItemModel(row.CartItem)
		item := db.ToItemModel(row.Item)
		cartItem.Item = &item
		cart = append(cart, cartItem)
	}
	return cart, nil
}
