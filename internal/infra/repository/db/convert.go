package db

import (
	"encoding/json"

	"github.com/ccfreem/sickfits/internal/infra/repository/db/sqlc"
	"github.com/ccfreem/sickfits/internal/model"
	pgutil "github.com/RoyceAzure/rj/util/pg_util"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

func PgUUID(id uuid.UUID) pgtype.UUID {
	return pgutil.UUIDToPgUUIDV5(id)
}

func PgUUIDPtr(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgutil.UUIDToPgUUIDV5(*id)
}

func FromPgUUID(id pgtype.UUID) uuid.UUID {
	if !id.Valid {
		return uuid.Nil
	}
	return uuid.UUID(id.Bytes)
}

func FromPgUUIDPtr(id pgtype.UUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	u := uuid.UUID(id.Bytes)
	return &u
}

func PgText(s *string) pgtype.Text {
	return pgutil.StringToPgTextV5(s)
}

func FromPgText(t pgtype.Text) *string {
	return pgutil.PgTextToStringV5(t)
}

func PgInt4(v *int32) pgtype.Int4 {
	if v == nil {
		return pgtype.Int4{}
	}
	return pgtype.Int4{Int32: *v, Valid: true}
}

func PgInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}
	return pgtype.Int8{Int64: *v, Valid: true}
}

func ToUserModel(u sqlc.User) model.UserModel {
	user := model.UserModel{
		ID:         FromPgUUID(u.ID),
		Email:      u.Email,
		Name:       u.Name,
		Password:   u.Password,
		ResetToken: FromPgText(u.ResetToken),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
	// stored tags were validated on write
	for _, p := range u.Permissions {
		user.Permissions = append(user.Permissions, model.Permission(p))
	}
	if u.ResetTokenExpiry.Valid {
		expiry := u.ResetTokenExpiry.Int64
		user.ResetTokenExpiry = &expiry
	}
	return user
}

func ToItemModel(i sqlc.Item) model.ItemModel {
	return model.ItemModel{
		ID:          FromPgUUID(i.ID),
		Title:       i.Title,
		Description: i.Description,
		Image:       FromPgText(i.Image),
		LargeImage:  FromPgText(i.LargeImage),
		Price:       i.Price,
		UserID:      FromPgUUIDPtr(i.UserID),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func ToCartItemModel(c sqlc.CartItem) model.CartItemModel {
	return model.CartItemModel{
		ID:        FromPgUUID(c.ID),
		Quantity:  c.Quantity,
		UserID:    FromPgUUID(c.UserID),
		ItemID:    FromPgUUID(c.ItemID),
		CreatedAt: c.CreatedAt,
	}
}

func ToOrderModel(o sqlc.Order, items []sqlc.OrderItem) model.OrderModel {
	order := model.OrderModel{
		ID:        FromPgUUID(o.ID),
		Total:     o.Total,
		Charge:    o.Charge,
		UserID:    FromPgUUID(o.UserID),
		Items:     make([]model.OrderItemModel, 0, len(items)),
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, it := range items {
		order.Items = append(order.Items, ToOrderItemModel(it))
	}
	return order
}

func ToOrderItemModel(it sqlc.OrderItem) model.OrderItemModel {
	return model.OrderItemModel{
		ID:          FromPgUUID(it.ID),
		OrderID:     FromPgUUID(it.OrderID),
		Title:       it.Title,
		Description: it.Description,
		Image:       it.Image,
		LargeImage:  it.LargeImage,
		Price:       it.Price,
		Quantity:    it.Quantity,
		UserID:      FromPgUUIDPtr(it.UserID),
		Position:    it.Position,
	}
}

func ToCheckoutModel(c sqlc.Checkout) (model.CheckoutModel, error) {
	checkout := model.CheckoutModel{
		ID:            FromPgUUID(c.ID),
		UserID:        FromPgUUID(c.UserID),
		Status:        model.CheckoutStatus(c.Status),
		Total:         c.Total,
		PaymentToken:  c.PaymentToken,
		ChargeID:      FromPgText(c.ChargeID),
		OrderID:       FromPgUUIDPtr(c.OrderID),
		FailureReason: FromPgText(c.FailureReason),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	if c.ChargedAmount.Valid {
		amount := c.ChargedAmount.Int32
		checkout.ChargedAmount = &amount
	}
	if err := json.Unmarshal(c.Lines, &checkout.Lines); err != nil {
		return model.CheckoutModel{}, err
	}
	return checkout, nil
}
