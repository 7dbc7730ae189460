package memstore

import (
	"context"
	"sort"

	"github.com/ccfreem/sickfits/internal/infra/repository/db"
	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// cart items

func (s *Store) CreateCartItem(ctx context.Context, arg sqlc.CreateCartItemParams) (sqlc.CartItem, error) {
	defer s.lockWrite()()
	for _, c := range s.t.cartItems {
		if sameUUID(c.UserID, arg.UserID) && sameUUID(c.ItemID, arg.ItemID) {
			return sqlc.CartItem{}, db.UniqueViolation("cart_items_user_item_key")
		}
	}
	if _, ok := s.t.items[key(arg.ItemID)]; !ok {
		return sqlc.CartItem{}, &foreignKeyError{table: "items"}
	}
	c := sqlc.CartItem{
		ID:        arg.ID,
		Quantity:  arg.Quantity,
		UserID:    arg.UserID,
		ItemID:    arg.ItemID,
		CreatedAt: arg.CreatedAt,
	}
	s.t.cartItems[key(arg.ID)] = c
	return c, nil
}

func (s *Store) GetCartItemByID(ctx context.Context, id pgtype.UUID) (sqlc.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.t.cartItems[key(id)]
	if !ok {
		return sqlc.CartItem{}, pgx.ErrNoRows
	}
	return c, nil
}

func (s *Store) GetCartItemByUserAndItem(ctx context.Context, arg sqlc.GetCartItemByUserAndItemParams) (sqlc.CartItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.t.cartItems {
		if sameUUID(c.UserID, arg.UserID) && sameUUID(c.ItemID, arg.ItemID) {
			return c, nil
		}
	}
	return sqlc.CartItem{}, pgx.ErrNoRows
}

func (s *Store) IncrementCartItemQuantity(ctx context.Context, id pgtype.UUID) (sqlc.CartItem, error) {
	defer s.lockWrite()()
	c, ok := s.t.cartItems[key(id)]
	if !ok {
		return sqlc.CartItem{}, pgx.ErrNoRows
	}
	c.Quantity++
	s.t.cartItems[key(id)] = c
	return c, nil
}

func (s *Store) DeleteCartItem(ctx context.Context, id pgtype.UUID) error {
	defer s.lockWrite()()
	delete(s.t.cartItems, key(id))
	return nil
}

func (s *Store) DeleteSettledCartItem(ctx context.Context, arg sqlc.DeleteSettledCartItemParams) (int64, error) {
	defer s.lockWrite()()
	c, ok := s.t.cartItems[key(arg.ID)]
	if !ok || c.Quantity > arg.ChargedQuantity {
		return 0, nil
	}
	delete(s.t.cartItems, key(arg.ID))
	return 1, nil
}

func (s *Store) DecrementCartItemQuantity(ctx context.Context, arg sqlc.DecrementCartItemQuantityParams) (int64, error) {
	defer s.lockWrite()()
	c, ok := s.t.cartItems[key(arg.ID)]
	if !ok || c.Quantity <= arg.ChargedQuantity {
		return 0, nil
	}
	c.Quantity -= arg.ChargedQuantity
	s.t.cartItems[key(arg.ID)] = c
	return 1, nil
}

func (s *Store) ListCartItemsByUser(ctx context.Context, userID pgtype.UUID) ([]sqlc.ListCartItemsByUserRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := []sqlc.ListCartItemsByUserRow{}
	for _, c := range s.t.cartItems {
		if !sameUUID(c.UserID, userID) {
			continue
		}
		it, ok := s.t.items[key(c.ItemID)]
		if !ok {
			continue
		}
		rows = append(rows, sqlc.ListCartItemsByUserRow{CartItem: c, Item: it})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CartItem.CreatedAt.Before(rows[j].CartItem.CreatedAt) })
	return rows, nil
}

// orders

func (s *Store) CreateOrder(ctx context.Context, arg sqlc.CreateOrderParams) (sqlc.Order, error) {
	defer s.lockWrite()()
	o := sqlc.Order{
		ID:        arg.ID,
		Total:     arg.Total,
		Charge:    arg.Charge,
		UserID:    arg.UserID,
		CreatedAt: arg.CreatedAt,
		UpdatedAt: arg.UpdatedAt,
	}
	s.t.orders[key(arg.ID)] = o
	return o, nil
}

func (s *Store) CreateOrderItem(ctx context.Context, arg sqlc.CreateOrderItemParams) (sqlc.OrderItem, error) {
	defer s.lockWrite()()
	if _, ok := s.t.orders[key(arg.OrderID)]; !ok {
		return sqlc.OrderItem{}, &foreignKeyError{table: "orders"}
	}
	it := sqlc.OrderItem(arg)
	s.t.orderItems[key(arg.ID)] = it
	return it, nil
}

func (s *Store) GetOrderByID(ctx context.Context, id pgtype.UUID) (sqlc.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.t.orders[key(id)]
	if !ok {
		return sqlc.Order{}, pgx.ErrNoRows
	}
	return o, nil
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID pgtype.UUID) ([]sqlc.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := []sqlc.Order{}
	for _, o := range s.t.orders {
		if sameUUID(o.UserID, userID) {
			orders = append(orders, o)
		}
	}
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	return orders, nil
}

func (s *Store) ListOrderItemsByOrder(ctx context.Context, orderID pgtype.UUID) ([]sqlc.OrderItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []sqlc.OrderItem{}
	for _, it := range s.t.orderItems {
		if sameUUID(it.OrderID, orderID) {
			items = append(items, it)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })
	return items, nil
}

// checkouts

func (s *Store) CreateCheckout(ctx context.Context, arg sqlc.CreateCheckoutParams) (sqlc.Checkout, error) {
	defer s.lockWrite()()
	c := sqlc.Checkout{
		ID:           arg.ID,
		UserID:       arg.UserID,
		Status:       arg.Status,
		Total:        arg.Total,
		Lines:        append([]byte(nil), arg.Lines...),
		PaymentToken: arg.PaymentToken,
		CreatedAt:    arg.CreatedAt,
		UpdatedAt:    arg.UpdatedAt,
	}
	s.t.checkouts[key(arg.ID)] = c
	return c, nil
}

func (s *Store) GetCheckoutByID(ctx context.Context, id pgtype.UUID) (sqlc.Checkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.t.checkouts[key(id)]
	if !ok {
		return sqlc.Checkout{}, pgx.ErrNoRows
	}
	return c, nil
}

// updateCheckout applies fn only while the checkout is in status from.
func (s *Store) updateCheckout(id pgtype.UUID, from string, fn func(*sqlc.Checkout)) (sqlc.Checkout, error) {
	defer s.lockWrite()()
	c, ok := s.t.checkouts[key(id)]
	if !ok || c.Status != from {
		return sqlc.Checkout{}, pgx.ErrNoRows
	}
	fn(&c)
	s.t.checkouts[key(id)] = c
	return c, nil
}

func (s *Store) MarkCheckoutCharged(ctx context.Context, arg sqlc.MarkCheckoutChargedParams) (sqlc.Checkout, error) {
	return s.updateCheckout(arg.ID, "pending", func(c *sqlc.Checkout) {
		c.Status = "charged"
		c.ChargeID = arg.ChargeID
		c.ChargedAmount = arg.ChargedAmount
		c.UpdatedAt = arg.UpdatedAt
	})
}

func (s *Store) MarkCheckoutCompleted(ctx context.Context, arg sqlc.MarkCheckoutCompletedParams) (sqlc.Checkout, error) {
	return s.updateCheckout(arg.ID, "charged", func(c *sqlc.Checkout) {
		c.Status = "completed"
		c.OrderID = arg.OrderID
		c.UpdatedAt = arg.UpdatedAt
	})
}

func (s *Store) MarkCheckoutFailed(ctx context.Context, arg sqlc.MarkCheckoutFailedParams) (sqlc.Checkout, error) {
	return s.updateCheckout(arg.ID, "pending", func(c *sqlc.Checkout) {
		c.Status = "failed"
		c.FailureReason = arg.FailureReason
		c.UpdatedAt = arg.UpdatedAt
	})
}

func isOpen(status string) bool {
	return status == "pending" || status == "charged"
}

func (s *Store) ListOpenCheckoutsByUser(ctx context.Context, userID pgtype.UUID) ([]sqlc.Checkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []sqlc.Checkout{}
	for _, c := range s.t.checkouts {
		if sameUUID(c.UserID, userID) && isOpen(c.Status) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ListStalledCheckouts(ctx context.Context, arg sqlc.ListStalledCheckoutsParams) ([]sqlc.Checkout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []sqlc.Checkout{}
	for _, c := range s.t.checkouts {
		if isOpen(c.Status) && c.UpdatedAt.Before(arg.UpdatedAt) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	if len(out) > int(arg.Limit) {
		out = out[:arg.Limit]
	}
	return out, nil
}

type foreignKeyError struct {
	table string
}

func (e *foreignKeyError) Error() string {
	return "violates foreign key constraint on " + e.table
}
