package graph

import (
	"context"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/model"
	"github.com/ccfreem/sickfits/internal/util"
	"github.com/graph-gophers/graphql-go"
)

type itemWhereInput struct {
	Search *string
}

func (w *itemWhereInput) search() string {
	if w == nil || w.Search == nil {
		return ""
	}
	return *w.Search
}

type itemsArgs struct {
	Where   *itemWhereInput
	OrderBy *string
	Skip    *int32
	First   *int32
}

func (r *Resolver) Items(ctx context.Context, args itemsArgs) ([]*itemResolver, error) {
	query := model.ItemQuery{Search: args.Where.search()}
	if args.OrderBy != nil {
		query.OrderBy = model.ItemOrderBy(*args.OrderBy)
	}
	if args.Skip != nil {
		query.Skip = *args.Skip
	}
	if args.First != nil {
		query.First = *args.First
	}

	items, err := r.itemService.ListItems(ctx, query)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return newItemResolvers(items), nil
}

type itemArgs struct {
	Where struct {
		ID graphql.ID
	}
}

// Item is null for an unknown id.
func (r *Resolver) Item(ctx context.Context, args itemArgs) (*itemResolver, error) {
	id, err := parseID(args.Where.ID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	item, err := r.itemService.GetItem(ctx, id)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return nil, nil
		}
		return nil, toResolverError(ctx, err)
	}
	return &itemResolver{item: *item}, nil
}

func (r *Resolver) ItemsConnection(ctx context.Context, args struct{ Where *itemWhereInput }) (*itemConnectionResolver, error) {
	count, err := r.itemService.CountItems(ctx, args.Where.search())
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &itemConnectionResolver{count: count}, nil
}

func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	user, err := r.authService.Me(ctx, util.GetSessionFromContext(ctx))
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	if user == nil {
		return nil, nil
	}
	return &userResolver{root: r, user: *user}, nil
}

func (r *Resolver) Users(ctx context.Context) ([]*userResolver, error) {
	users, err := r.userService.ListUsers(ctx, util.GetSessionFromContext(ctx))
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	out := make([]*userResolver, 0, len(users))
	for _, u := range users {
		out = append(out, &userResolver{root: r, user: u})
	}
	return out, nil
}

func (r *Resolver) Order(ctx context.Context, args struct{ ID graphql.ID }) (*orderResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	order, err := r.orderService.GetOrder(ctx, util.GetSessionFromContext(ctx), id)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &orderResolver{root: r, order: *order}, nil
}

func (r *Resolver) Orders(ctx context.Context) ([]*orderResolver, error) {
	orders, err := r.orderService.ListOrders(ctx, util.GetSessionFromContext(ctx))
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	out := make([]*orderResolver, 0, len(orders))
	for _, o := range orders {
		out = append(out, &orderResolver{root: r, order: o})
	}
	return out, nil
}
