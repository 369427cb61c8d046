package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, ValidRole(RoleUser))
	assert.True(t, ValidRole(RoleAdmin))
	assert.True(t, ValidRole(RoleGuest))
	assert.False(t, ValidRole(Role("superuser")))
	assert.False(t, ValidRole(Role("")))
}

func TestHasRoleAdminImpliesAll(t *testing.T) {
	claims := &JWTClaims{Role: string(RoleAdmin)}
	assert.True(t, claims.HasRole(RoleUser))
	assert.True(t, claims.HasRole(RoleGuest))
	assert.True(t, claims.HasRole(RoleAdmin))
}

func TestHasRoleExactMatch(t *testing.T) {
	claims := &JWTClaims{Role: string(RoleUser)}
	assert.True(t, claims.HasRole(RoleUser))
	assert.False(t, claims.HasRole(RoleAdmin))
}

func TestHasPermissionByRole(t *testing.T) {
	guest := &JWTClaims{Role: string(RoleGuest)}
	assert.True(t, guest.HasPermission(PermissionChat))
	assert.False(t, guest.HasPermission(PermissionMintArtwork))

	user := &JWTClaims{Role: string(RoleUser)}
	assert.True(t, user.HasPermission(PermissionMintArtwork))
	assert.False(t, user.HasPermission(PermissionManageUsers))

	admin := &JWTClaims{Role: string(RoleAdmin)}
	assert.True(t, admin.HasPermission(PermissionManageUsers))
}

func TestGenerateTokenCarriesRole(t *testing.T) {
	token, err := GenerateToken(1, "curator@example.com", RoleAdmin)
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, string(RoleAdmin), claims.Role)
	assert.Equal(t, uint(1), claims.UserID)
}

func TestGenerateTokenDefaultsToUserRole(t *testing.T) {
	token, err := GenerateToken(2, "visitor@example.com")
	assert.NoError(t, err)

	claims, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, string(RoleUser), claims.Role)
}
