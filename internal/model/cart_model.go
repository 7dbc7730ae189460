package model

import (
	"time"

	"github.com/google/uuid"
)

type CartItemModel struct {
	ID        uuid.UUID
	Quantity  int32
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Item      *ItemModel
	CreatedAt time.Time
}

// LineTotal is price × quantity, zero when the item is gone.
func (c *CartItemModel) LineTotal() int64 {
	if c.Item == nil {
		return 0
	}
	return int64(c.Item.Price) * int64(c.Quantity)
}
