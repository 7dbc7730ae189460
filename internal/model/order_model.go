package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderModel struct {
	ID        uuid.UUID
	Total     int32
	Charge    string
	UserID    uuid.UUID
	Items     []OrderItemModel
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItemModel is a copy of an item taken at purchase time.
type OrderItemModel struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Title       string
	Description string
	Image       string
	LargeImage  string
	Price       int32
	Quantity    int32
	UserID      *uuid.UUID
	Position    int32
}
