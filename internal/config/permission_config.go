package config

import (
	"fmt"
	"os"

	"github.com/ccfreem/sickfits/internal/model"
	"gopkg.in/yaml.v3"
)

// ActionPolicy grants an action to holders of any listed permission, and to the
// owner of the target when OwnerAllowed is set.
type ActionPolicy struct {
	Permissions  []string `yaml:"permissions"`
	OwnerAllowed bool     `yaml:"owner_allowed"`
	// AnySignedIn grants the action to every authenticated user.
	AnySignedIn bool `yaml:"any_signed_in"`
}

type ItemPolicy struct {
	Create ActionPolicy `yaml:"create"`
	Update ActionPolicy `yaml:"update"`
	Delete ActionPolicy `yaml:"delete"`
}

type PermissionConfig struct {
	SignupPermissions []string   `yaml:"signup_permissions"`
	PermissionUpdate  []string   `yaml:"permission_update"`
	OrderRead         []string   `yaml:"order_read"`
	UsersRead         []string   `yaml:"users_read"`
	Item              ItemPolicy `yaml:"item"`
}

// DefaultPermissionConfig is used when no policy file exists.
func DefaultPermissionConfig() *PermissionConfig {
	return &PermissionConfig{
		SignupPermissions: []string{"USER"},
		PermissionUpdate:  []string{"ADMIN", "PERMISSIONUPDATE"},
		OrderRead:         []string{"ADMIN"},
		UsersRead:         []string{"ADMIN"},
		Item: ItemPolicy{
			Create: ActionPolicy{AnySignedIn: true},
			Update: ActionPolicy{Permissions: []string{"ADMIN", "ITEMUPDATE"}, OwnerAllowed: true},
			Delete: ActionPolicy{Permissions: []string{"ADMIN", "ITEMDELETE"}, OwnerAllowed: true},
		},
	}
}

// yaml path : config/permission.yaml
func LoadPermissionConfig(path string) (*PermissionConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPermissionConfig(), nil
		}
		return nil, err
	}

	config := DefaultPermissionConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return config, nil
}

// Validate rejects unknown permission tags so a typo cannot silently lock an action.
func (c *PermissionConfig) Validate() error {
	lists := map[string][]string{
		"signup_permissions": c.SignupPermissions,
		"permission_update":  c.PermissionUpdate,
		"order_read":         c.OrderRead,
		"users_read":         c.UsersRead,
		"item.create":        c.Item.Create.Permissions,
		"item.update":        c.Item.Update.Permissions,
		"item.delete":        c.Item.Delete.Permissions,
	}
	for name, list := range lists {
		if _, err := model.PermissionsFromStrings(list); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// Perms converts a validated list. Unknown tags are dropped.
func Perms(list []string) model.Permissions {
	out := make(model.Permissions, 0, len(list))
	for _, s := range list {
		if p, err := model.ParsePermission(s); err == nil {
			out = append(out, p)
		}
	}
	return out
}
