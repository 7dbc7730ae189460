package model

import (
	"fmt"
	"strings"
)

// Permission is an opaque tag granted to a user.
type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

var AllPermissions = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToUpper(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown permission %q", s)
	}
	return p, nil
}

type Permissions []Permission

// Intersects reports whether any held permission is in required.
// An empty set on either side never intersects.
func (held Permissions) Intersects(required Permissions) bool {
	for _, h := range held {
		for _, r := range required {
			if h == r {
				return true
			}
		}
	}
	return false
}

func (held Permissions) Contains(p Permission) bool {
	return held.Intersects(Permissions{p})
}

func (held Permissions) Strings() []string {
	out := make([]string, 0, len(held))
	for _, p := range held {
		out = append(out, string(p))
	}
	return out
}

func PermissionsFromStrings(ss []string) (Permissions, error) {
	out := make(Permissions, 0, len(ss))
	seen := make(map[Permission]struct{}, len(ss))
	for _, s := range ss {
		p, err := ParsePermission(s)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}
