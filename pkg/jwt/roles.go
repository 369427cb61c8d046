package jwt

// Role is a coarse access level carried in token claims.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
	RoleGuest Role = "guest"
)

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role Role) bool {
	switch role {
	case RoleUser, RoleAdmin, RoleGuest:
		return true
	}
	return false
}

// HasRole reports whether the claims satisfy the required role. Admins
// satisfy every role.
func (c *JWTClaims) HasRole(role Role) bool {
	if c.Role == string(RoleAdmin) {
		return true
	}
	return c.Role == string(role)
}

// Permission is a fine-grained capability derived from the role.
type Permission string

const (
	PermissionChat        Permission = "chat"
	PermissionMintArtwork Permission = "mint:artwork"
	PermissionManageUsers Permission = "manage:users"
)

var rolePermissions = map[Role][]Permission{
	RoleGuest: {PermissionChat},
	RoleUser:  {PermissionChat, PermissionMintArtwork},
	RoleAdmin: {PermissionChat, PermissionMintArtwork, PermissionManageUsers},
}

// HasPermission reports whether the claims' role grants the permission.
func (c *JWTClaims) HasPermission(permission Permission) bool {
	for _, p := range rolePermissions[Role(c.Role)] {
		if p == permission {
			return true
		}
	}
	return false
}
