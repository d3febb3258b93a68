package auth

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/medidesk/internal/common"
	"github.com/dmitrijs2005/medidesk/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func account(role models.Role) *models.Account {
	return &models.Account{ID: "1", Email: string(role) + "@example.com", Role: role, Active: true}
}

func TestRequireRole_AdminOnly(t *testing.T) {
	_, err := RequireRole(account(models.RoleDoctor), models.RoleAdmin)
	assert.ErrorIs(t, err, common.ErrForbidden)

	got, err := RequireRole(account(models.RoleAdmin), models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
}

func TestRequireRole_StaffWildcard(t *testing.T) {
	for _, r := range []models.Role{models.RoleStaff, models.RoleReceptionist, models.RoleDoctor, models.RolePharmacist, models.RolePhysicalMedicine} {
		_, err := RequireRole(account(r), models.RoleStaff)
		assert.NoError(t, err, r)
	}

	_, err := RequireRole(account(models.RoleAdmin), models.RoleStaff)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestRequireRole_ExactLabelsDoNotExpand(t *testing.T) {
	_, err := RequireRole(account(models.RoleStaff), models.RoleDoctor)
	assert.ErrorIs(t, err, common.ErrForbidden, "literal staff is not a doctor")

	_, err = RequireRole(account(models.RolePharmacist), models.RoleDoctor, models.RoleReceptionist)
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = RequireRole(account(models.RoleReceptionist), models.RoleDoctor, models.RoleReceptionist)
	assert.NoError(t, err)
}

func TestRequireRole_EmptySetDeniesEveryone(t *testing.T) {
	_, err := RequireRole(account(models.RoleAdmin))
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestRequireRole_NoSession(t *testing.T) {
	_, err := RequireRole(nil, models.RoleAdmin)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestRequireAuth(t *testing.T) {
	_, err := RequireAuth(nil)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)

	a := account(models.RolePharmacist)
	got, err := RequireAuth(a)
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestRequireRole_Idempotent(t *testing.T) {
	a := account(models.RoleDoctor)
	for i := 0; i < 3; i++ {
		got, err := RequireRole(a, models.RoleStaff)
		require.NoError(t, err)
		assert.Same(t, a, got)
	}
	assert.Equal(t, models.RoleDoctor, a.Role)
}

func TestAccountContext(t *testing.T) {
	_, ok := AccountFromContext(context.Background())
	assert.False(t, ok)

	_, ok = AccountFromContext(WithAccount(context.Background(), nil))
	assert.False(t, ok)

	a := account(models.RoleAdmin)
	got, ok := AccountFromContext(WithAccount(context.Background(), a))
	require.True(t, ok)
	assert.Same(t, a, got)
}
