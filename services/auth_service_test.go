package services

import (
	"testing"
	"time"

	"github.com/ar363/restaurant-live-ordering/entity"
	"github.com/ar363/restaurant-live-ordering/repository"
	"github.com/ar363/restaurant-live-ordering/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	return NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour)
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	token, user, err := svc.Register("Alice@Example.com ", "s3cret", " Alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, entity.RoleCustomer, user.Role)

	claims, err := utils.ParseToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, entity.RoleCustomer, claims.Role)

	// email เทียบแบบ normalize แล้ว
	_, _, err = svc.Register("ALICE@example.com", "another", "Alice 2")
	assert.ErrorIs(t, err, ErrValidation)

	_, logged, err := svc.Login("alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	_, _, err = svc.Login("alice@example.com", "wrong")
	assert.Error(t, err)

	_, _, err = svc.Login("nobody@example.com", "s3cret")
	assert.Error(t, err)
}

func TestAuthService_StaffLoginEnforcesRole(t *testing.T) {
	svc := newAuthService(t)

	_, user, err := svc.Register("cook@example.com", "s3cret", "Cook")
	require.NoError(t, err)

	// register ให้แค่ role customer — console ครัวต้องปฏิเสธ
	_, _, err = svc.StaffLogin("cook@example.com", "s3cret", entity.RoleKitchen)
	assert.ErrorIs(t, err, ErrForbidden)

	// โปรโมทแล้วถึงเข้าได้
	require.NoError(t, svc.userRepo.DB.Model(user).Update("role", entity.RoleKitchen).Error)
	_, staff, err := svc.StaffLogin("cook@example.com", "s3cret", entity.RoleKitchen)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleKitchen, staff.Role)

	_, _, err = svc.StaffLogin("cook@example.com", "s3cret", entity.RoleOwner)
	assert.ErrorIs(t, err, ErrForbidden)
}
