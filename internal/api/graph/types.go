package graph

import (
	"context"
	"math"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/graph-gophers/graphql-go"
)

type userResolver struct {
	root *Resolver
	user model.UserModel
}

func (u *userResolver) ID() graphql.ID {
	return graphql.ID(u.user.ID.String())
}

func (u *userResolver) Name() string {
	return u.user.Name
}

func (u *userResolver) Email() string {
	return u.user.Email
}

func (u *userResolver) Permissions() []string {
	return u.user.Permissions.Strings()
}

func (u *userResolver) Cart(ctx context.Context) ([]*cartItemResolver, error) {
	lines, err := u.root.cartService.GetCart(ctx, u.user.ID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	out := make([]*cartItemResolver, 0, len(lines))
	for _, line := range lines {
		out = append(out, &cartItemResolver{root: u.root, cartItem: line})
	}
	return out, nil
}

type itemResolver struct {
	item model.ItemModel
}

func newItemResolvers(items []model.ItemModel) []*itemResolver {
	out := make([]*itemResolver, 0, len(items))
	for _, it := range items {
		out = append(out, &itemResolver{item: it})
	}
	return out
}

func (i *itemResolver) ID() graphql.ID {
	return graphql.ID(i.item.ID.String())
}

func (i *itemResolver) Title() string {
	return i.item.Title
}

func (i *itemResolver) Description() string {
	return i.item.Description
}

func (i *itemResolver) Image() *string {
	return i.item.Image
}

func (i *itemResolver) LargeImage() *string {
	return i.item.LargeImage
}

func (i *itemResolver) Price() int32 {
	return i.item.Price
}

func (i *itemResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: i.item.CreatedAt}
}

func (i *itemResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: i.item.UpdatedAt}
}

type cartItemResolver struct {
	root     *Resolver
	cartItem model.CartItemModel
}

func (c *cartItemResolver) ID() graphql.ID {
	return graphql.ID(c.cartItem.ID.String())
}

func (c *cartItemResolver) Quantity() int32 {
	return c.cartItem.Quantity
}

// Item is null once the item has been deleted from the catalogue.
func (c *cartItemResolver) Item(ctx context.Context) (*itemResolver, error) {
	if c.cartItem.Item != nil {
		return &itemResolver{item: *c.cartItem.Item}, nil
	}
	item, err := c.root.itemService.GetItem(ctx, c.cartItem.ItemID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, nil
		}
		return nil, toResolverError(ctx, err)
	}
	return &itemResolver{item: *item}, nil
}

type orderResolver struct {
	root  *Resolver
	order model.OrderModel
}

func (o *orderResolver) ID() graphql.ID {
	return graphql.ID(o.order.ID.String())
}

func (o *orderResolver) Items() []*orderItemResolver {
	out := make([]*orderItemResolver, 0, len(o.order.Items))
	for _, it := range o.order.Items {
		out = append(out, &orderItemResolver{item: it})
	}
	return out
}

func (o *orderResolver) Total() int32 {
	return o.order.Total
}

func (o *orderResolver) Charge() string {
	return o.order.Charge
}

func (o *orderResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: o.order.CreatedAt}
}

func (o *orderResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: o.order.UpdatedAt}
}

func (o *orderResolver) User(ctx context.Context) (*userResolver, error) {
	user, err := o.root.userService.GetUserByID(ctx, o.order.UserID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, nil
		}
		return nil, toResolverError(ctx, err)
	}
	return &userResolver{root: o.root, user: *user}, nil
}

type orderItemResolver struct {
	item model.OrderItemModel
}

func (o *orderItemResolver) ID() graphql.ID {
	return graphql.ID(o.item.ID.String())
}

func (o *orderItemResolver) Title() string       { return o.item.Title }
func (o *orderItemResolver) Description() string { return o.item.Description }
func (o *orderItemResolver) Image() string       { return o.item.Image }
func (o *orderItemResolver) LargeImage() string  { return o.item.LargeImage }
func (o *orderItemResolver) Price() int32        { return o.item.Price }
func (o *orderItemResolver) Quantity() int32     { return o.item.Quantity }

type itemConnectionResolver struct {
	count int64
}

func (c *itemConnectionResolver) Aggregate() *itemConnectionResolver {
	return c
}

// Count saturates at the largest GraphQL Int.
func (c *itemConnectionResolver) Count() int32 {
	if c.count > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(c.count)
}

type successMessageResolver struct {
	msg model.SuccessMessage
}

func (s *successMessageResolver) Message() *string {
	return &s.msg.Message
}
