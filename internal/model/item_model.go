package model

import (
	"time"

	"github.com/google/uuid"
)

type ItemModel struct {
	ID          uuid.UUID
	Title       string
	Description string
	Image       *string
	LargeImage  *string
	Price       int32 // smallest currency unit
	UserID      *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether userID owns the item. Items without an owner are owned by nobody.
func (i *ItemModel) OwnedBy(userID uuid.UUID) bool {
	return i.UserID != nil && *i.UserID == userID
}

type ItemInput struct {
	Title       string
	Description string
	Price       int32
	Image       *string
	LargeImage  *string
}

// ItemPatch only changes the fields that are set.
type ItemPatch struct {
	Title       *string
	Description *string
	Price       *int32
	Image       *string
	LargeImage  *string
}

type ItemOrderBy string

const (
	ItemOrderByCreatedAtDesc ItemOrderBy = "createdAt_DESC"
	ItemOrderByCreatedAtAsc  ItemOrderBy = "createdAt_ASC"
	ItemOrderByPriceAsc      ItemOrderBy = "price_ASC"
	ItemOrderByPriceDesc     ItemOrderBy = "price_DESC"
	ItemOrderByTitleAsc      ItemOrderBy = "title_ASC"
)

func (o ItemOrderBy) Valid() bool {
	switch o {
	case ItemOrderByCreatedAtDesc, ItemOrderByCreatedAtAsc, ItemOrderByPriceAsc, ItemOrderByPriceDesc, ItemOrderByTitleAsc:
		return true
	}
	return false
}

type ItemQuery struct {
	Search  string
	OrderBy ItemOrderBy
	Skip    int32
	First   int32
}
