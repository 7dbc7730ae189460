package service

import (
	"fmt"
	"strings"

	"github.com/ccfreem/sickfits/internal/apperr"
	"github.com/ccfreem/sickfits/internal/config"
	"github.com/ccfreem/sickfits/internal/model"
)

type ItemAction string

const (
	ItemActionCreate ItemAction = "create"
	ItemActionUpdate ItemAction = "update"
	ItemActionDelete ItemAction = "delete"
)

type IPermissionService interface {
	// HasPermission passes when user holds at least one of required.
	// Errors:
	//   - apperr.ErrAuthorizationDenied: no shared tag, message lists required and held
	HasPermission(user *model.UserModel, required ...model.Permission) error
	// AuthorizeItem applies the configured item policy. item is nil for create.
	// Errors:
	//   - apperr.ErrAuthorizationDenied
	AuthorizeItem(user *model.UserModel, action ItemAction, item *model.ItemModel) error
	CanUpdatePermissions(user *model.UserModel) error
	CanListUsers(user *model.UserModel) error
	// CanReadOrder passes for the owner of the order or a holder of the order read set.
	CanReadOrder(user *model.UserModel, order *model.OrderModel) error
	SignupPermissions() model.Permissions
}

type PermissionService struct {
	cf *config.PermissionConfig
}

func NewPermissionService(cf *config.PermissionConfig) IPermissionService {
	if cf == nil {
		panic("permission service missing reqired depency permission config")
	}

	return &PermissionService{
		cf: cf,
	}
}

func (p *PermissionService) HasPermission(user *model.UserModel, required ...model.Permission) error {
	var held model.Permissions
	if user != nil {
		held = user.Permissions
	}
	if held.Intersects(required) {
		return nil
	}
	return apperr.New(apperr.KindAuthorizationDenied, deniedMessage(required, held))
}

func (p *PermissionService) AuthorizeItem(user *model.UserModel, action ItemAction, item *model.ItemModel) error {
	if user == nil {
		return apperr.New(apperr.KindAuthenticationRequired, "You must be logged in to do that!")
	}

	var policy config.ActionPolicy
	switch action {
	case ItemActionCreate:
		policy = p.cf.Item.Create
	case ItemActionUpdate:
		policy = p.cf.Item.Update
	case ItemActionDelete:
		policy = p.cf.Item.Delete
	default:
		return apperr.Newf(apperr.KindAuthorizationDenied, "unknown item action %q", action)
	}

	if policy.AnySignedIn {
		return nil
	}
	if policy.OwnerAllowed && item != nil && item.OwnedBy(user.ID) {
		return nil
	}
	required := config.Perms(policy.Permissions)
	if user.Permissions.Intersects(required) {
		return nil
	}
	return apperr.New(apperr.KindAuthorizationDenied, fmt.Sprintf("You don't have permission to %s this item. %s", action, deniedMessage(required, user.Permissions)))
}

func (p *PermissionService) CanUpdatePermissions(user *model.UserModel) error {
	return p.HasPermission(user, config.Perms(p.cf.PermissionUpdate)...)
}

func (p *PermissionService) CanListUsers(user *model.UserModel) error {
	return p.HasPermission(user, config.Perms(p.cf.UsersRead)...)
}

func (p *PermissionService) CanReadOrder(user *model.UserModel, order *model.OrderModel) error {
	if user != nil && order != nil && order.UserID == user.ID {
		return nil
	}
	if err := p.HasPermission(user, config.Perms(p.cf.OrderRead)...); err != nil {
		return apperr.New(apperr.KindAuthorizationDenied, "You can't see this order")
	}
	return nil
}

func (p *PermissionService) SignupPermissions() model.Permissions {
	return config.Perms(p.cf.SignupPermissions)
}

func deniedMessage(required, held model.Permissions) string {
	return fmt.Sprintf("You do not have sufficient permissions: %s. You have: %s",
		joinPerms(required), joinPerms(held))
}

func joinPerms(perms model.Permissions) string {
	if len(perms) == 0 {
		return "none"
	}
	return strings.Join(perms.Strings(), ", ")
}
