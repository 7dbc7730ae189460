package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermissionsIntersects(t *testing.T) {
	testCases := []struct {
		name     string
		held     Permissions
		required Permissions
		want     bool
	}{
		{"shared tag", Permissions{PermissionUser, PermissionItemDelete}, Permissions{PermissionAdmin, PermissionItemDelete}, true},
		{"disjoint", Permissions{PermissionUser}, Permissions{PermissionAdmin, PermissionPermissionUpdate}, false},
		{"empty held", Permissions{}, Permissions{PermissionAdmin}, false},
		{"nil held", nil, Permissions{PermissionUser}, false},
		{"empty required", Permissions{PermissionAdmin}, Permissions{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.held.Intersects(tc.required))
		})
	}
}

func TestPermissionsFromStrings(t *testing.T) {
	perms, err := PermissionsFromStrings([]string{"admin", "USER", "ADMIN"})
	require.NoError(t, err)
	require.Equal(t, Permissions{PermissionAdmin, PermissionUser}, perms)

	_, err = PermissionsFromStrings([]string{"ITEMDELET"})
	require.Error(t, err)
}
