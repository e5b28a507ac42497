package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellosarowarhn-boop/ecomm/internal/domain/models"
)

func strPtr(s string) *string { return &s }

func rolePtr(r models.AdminRole) *models.AdminRole { return &r }

func TestCreateAdmin(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewAdminService(db, cfg)
	ctx := context.Background()

	admin, err := svc.CreateAdmin(ctx, CreateAdminInput{Name: " Co ", Email: " Co@Example.COM ", Password: "pass1234"})
	require.NoError(t, err)
	assert.Equal(t, "co@example.com", admin.Email)
	assert.Equal(t, "Co", admin.Name)
	assert.Equal(t, models.RoleCoAdmin, admin.Role)
	assert.True(t, svc.CheckPassword("pass1234", admin.Password))

	found, err := svc.GetAdminByEmail(ctx, "CO@example.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)

	_, err = svc.CreateAdmin(ctx, CreateAdminInput{Email: "co@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrAdminEmailExists)

	_, err = svc.CreateAdmin(ctx, CreateAdminInput{Email: "new@example.com"})
	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = svc.CreateAdmin(ctx, CreateAdminInput{Email: "new@example.com", Password: "x", Role: "owner"})
	assert.True(t, errors.As(err, &validationErr))
}

func TestGetAllAdmins(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewAdminService(db, cfg)
	ctx := context.Background()

	created, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "co@example.com", Password: "pass"})
	require.NoError(t, err)

	admins, err := svc.GetAllAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 2)
	assert.Equal(t, created.ID, admins[0].ID)

	_, err = svc.GetAdminByID(ctx, 404)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestUpdateAdmin(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewAdminService(db, cfg)
	ctx := context.Background()

	co, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "co@example.com", Password: "pass"})
	require.NoError(t, err)

	updated, err := svc.UpdateAdmin(ctx, co.ID, UpdateAdminInput{
		Name:  strPtr("Helper"),
		Email: strPtr("Helper@Example.com"),
		Role:  rolePtr(models.RoleSuperAdmin),
	})
	require.NoError(t, err)
	assert.Equal(t, "Helper", updated.Name)
	assert.Equal(t, "helper@example.com", updated.Email)
	assert.Equal(t, models.RoleSuperAdmin, updated.Role)
	// 空密码不修改
	assert.True(t, svc.CheckPassword("pass", updated.Password))

	updated, err = svc.UpdateAdmin(ctx, co.ID, UpdateAdminInput{Password: "changed"})
	require.NoError(t, err)
	assert.True(t, svc.CheckPassword("changed", updated.Password))

	_, err = svc.UpdateAdmin(ctx, co.ID, UpdateAdminInput{Email: strPtr("admin@ecomstore.com")})
	assert.ErrorIs(t, err, ErrAdminEmailExists)

	_, err = svc.UpdateAdmin(ctx, 999, UpdateAdminInput{Name: strPtr("x")})
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestUpdateAdminKeepsLastSuperAdmin(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewAdminService(db, cfg)
	ctx := context.Background()

	root, err := svc.GetAdminByEmail(ctx, "admin@ecomstore.com")
	require.NoError(t, err)

	_, err = svc.UpdateAdmin(ctx, root.ID, UpdateAdminInput{Role: rolePtr(models.RoleCoAdmin)})
	assert.ErrorIs(t, err, ErrLastSuperAdmin)

	_, err = svc.CreateAdmin(ctx, CreateAdminInput{Email: "second@example.com", Password: "pass", Role: models.RoleSuperAdmin})
	require.NoError(t, err)

	demoted, err := svc.UpdateAdmin(ctx, root.ID, UpdateAdminInput{Role: rolePtr(models.RoleCoAdmin)})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCoAdmin, demoted.Role)
}

func TestDeleteAdmin(t *testing.T) {
	db, cfg := newSeededDB(t)
	svc := NewAdminService(db, cfg)
	ctx := context.Background()

	root, err := svc.GetAdminByEmail(ctx, "admin@ecomstore.com")
	require.NoError(t, err)
	co, err := svc.CreateAdmin(ctx, CreateAdminInput{Email: "co@example.com", Password: "pass"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteAdmin(ctx, root.ID, root.ID), ErrCannotDeleteSelf)
	assert.ErrorIs(t, svc.DeleteAdmin(ctx, root.ID, co.ID), ErrLastSuperAdmin)
	assert.ErrorIs(t, svc.DeleteAdmin(ctx, 999, root.ID), ErrAdminNotFound)

	require.NoError(t, svc.DeleteAdmin(ctx, co.ID, root.ID))
	_, err = svc.GetAdminByID(ctx, co.ID)
	assert.ErrorIs(t, err, ErrAdminNotFound)
}
