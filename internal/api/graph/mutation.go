package graph

import (
	"context"

	"github.com/ccfreem/sickfits/internal/model"
	"github.com/ccfreem/sickfits/internal/util"
	"github.com/graph-gophers/graphql-go"
)

type createItemArgs struct {
	Title       string
	Description string
	Price       int32
	Image       *string
	LargeImage  *string
}

func (r *Resolver) CreateItem(ctx context.Context, args createItemArgs) (*itemResolver, error) {
	item, err := r.itemService.CreateItem(ctx, util.GetSessionFromContext(ctx), model.ItemInput{
		Title:       args.Title,
		Description: args.Description,
		Price:       args.Price,
		Image:       args.Image,
		LargeImage:  args.LargeImage,
	})
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &itemResolver{item: *item}, nil
}

type updateItemArgs struct {
	ID          graphql.ID
	Title       *string
	Description *string
	Price       *int32
	Image       *string
	LargeImage  *string
}

func (r *Resolver) UpdateItem(ctx context.Context, args updateItemArgs) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	item, err := r.itemService.UpdateItem(ctx, util.GetSessionFromContext(ctx), id, model.ItemPatch{
		Title:       args.Title,
		Description: args.Description,
		Price:       args.Price,
		Image:       args.Image,
		LargeImage:  args.LargeImage,
	})
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &itemResolver{item: *item}, nil
}

func (r *Resolver) DeleteItem(ctx context.Context, args struct{ ID graphql.ID }) (*itemResolver, error) {
	id, err := parseID(args.ID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	item, err := r.itemService.DeleteItem(ctx, util.GetSessionFromContext(ctx), id)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &itemResolver{item: *item}, nil
}

type signupArgs struct {
	Email    string
	Password string
	Name     string
}

func (r *Resolver) Signup(ctx context.Context, args signupArgs) (*userResolver, error) {
	result, err := r.authService.Signup(ctx, model.SignupInput{
		Email:    args.Email,
		Password: args.Password,
		Name:     args.Name,
	})
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return r.signedIn(ctx, result), nil
}

func (r *Resolver) Signin(ctx context.Context, args struct{ Email, Password string }) (*userResolver, error) {
	result, err := r.authService.Signin(ctx, args.Email, args.Password)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return r.signedIn(ctx, result), nil
}

func (r *Resolver) Signout(ctx context.Context) (*successMessageResolver, error) {
	msg, err := r.authService.Signout(ctx, util.GetSessionFromContext(ctx))
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	r.clearSessionCookie(ctx)
	return &successMessageResolver{msg: *msg}, nil
}

func (r *Resolver) RequestReset(ctx context.Context, args struct{ Email string }) (*successMessageResolver, error) {
	msg, err := r.authService.RequestReset(ctx, args.Email)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &successMessageResolver{msg: *msg}, nil
}

type resetPasswordArgs struct {
	ResetToken      string
	Password        string
	ConfirmPassword string
}

func (r *Resolver) ResetPassword(ctx context.Context, args resetPasswordArgs) (*userResolver, error) {
	result, err := r.authService.ResetPassword(ctx, model.ResetPasswordInput{
		ResetToken:      args.ResetToken,
		Password:        args.Password,
		ConfirmPassword: args.ConfirmPassword,
	})
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return r.signedIn(ctx, result), nil
}

type updatePermissionsArgs struct {
	Permissions []string
	UserID      graphql.ID
}

func (r *Resolver) UpdatePermissions(ctx context.Context, args updatePermissionsArgs) (*userResolver, error) {
	userID, err := parseID(args.UserID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	user, err := r.userService.UpdatePermissions(ctx, util.GetSessionFromContext(ctx), userID, args.Permissions)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &userResolver{root: r, user: *user}, nil
}

func (r *Resolver) AddToCart(ctx context.Context, args struct{ ID graphql.ID }) (*cartItemResolver, error) {
	itemID, err := parseID(args.ID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	cartItem, err := r.cartService.AddToCart(ctx, util.GetSessionFromContext(ctx), itemID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &cartItemResolver{root: r, cartItem: *cartItem}, nil
}

func (r *Resolver) RemoveFromCart(ctx context.Context, args struct{ ID graphql.ID }) (*cartItemResolver, error) {
	cartItemID, err := parseID(args.ID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	cartItem, err := r.cartService.RemoveFromCart(ctx, util.GetSessionFromContext(ctx), cartItemID)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &cartItemResolver{root: r, cartItem: *cartItem}, nil
}

func (r *Resolver) CreateOrder(ctx context.Context, args struct{ Token string }) (*orderResolver, error) {
	order, err := r.checkoutService.CreateOrder(ctx, util.GetSessionFromContext(ctx), args.Token)
	if err != nil {
		return nil, toResolverError(ctx, err)
	}
	return &orderResolver{root: r, order: *order}, nil
}

// signedIn sets the session cookie and renders the user.
func (r *Resolver) signedIn(ctx context.Context, result *model.AuthResult) *userResolver {
	r.setSessionCookie(ctx, result.Token, result.ExpiresAt)
	return &userResolver{root: r, user: result.User}
}
