package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"armadacheck_backend/internals/features/users/user/dto"
	"armadacheck_backend/internals/features/users/user/model"
	"armadacheck_backend/internals/helpers/authctx"
)

func setupUserService(t *testing.T) *UserService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.UserModel{}))
	return NewUserService(db)
}

func createUser(t *testing.T, svc *UserService, username, role string) *model.UserModel {
	t.Helper()
	user, err := svc.Create(dto.CreateUserRequest{
		FirstName: "Test", LastName: "User",
		Username: username, Password: "rahasia1", Role: role,
	})
	require.NoError(t, err)
	return user
}

func authFor(u *model.UserModel) authctx.AuthContext {
	return authctx.AuthContext{UserID: u.ID, Role: u.Role, Username: u.Username}
}

func TestCreateUserHashesPassword(t *testing.T) {
	svc := setupUserService(t)

	user := createUser(t, svc, "budi", "STAFF")
	assert.NotEqual(t, "rahasia1", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("rahasia1")))
	assert.True(t, user.IsActive)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := setupUserService(t)
	createUser(t, svc, "budi", "STAFF")

	// Username dinormalisasi lowercase: "Budi" bentrok dengan "budi".
	_, err := svc.Create(dto.CreateUserRequest{
		FirstName: "Lain", LastName: "Orang",
		Username: "Budi", Password: "rahasia1", Role: "STAFF",
	})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusConflict, fe.Code)
}

func TestToggleStatusSelfProtection(t *testing.T) {
	svc := setupUserService(t)
	admin := createUser(t, svc, "sari", "ADMIN")
	staff := createUser(t, svc, "budi", "STAFF")

	_, err := svc.ToggleStatus(authFor(admin), admin.ID)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)

	toggled, err := svc.ToggleStatus(authFor(admin), staff.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = svc.ToggleStatus(authFor(admin), staff.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestDeleteSelfForbidden(t *testing.T) {
	svc := setupUserService(t)
	admin := createUser(t, svc, "sari", "ADMIN")

	err := svc.Delete(authFor(admin), admin.ID)
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusForbidden, fe.Code)
}

func TestChangePassword(t *testing.T) {
	svc := setupUserService(t)
	user := createUser(t, svc, "budi", "STAFF")

	err := svc.ChangePassword(authFor(user), dto.ChangePasswordRequest{
		OldPassword: "salah", NewPassword: "barubanget",
	})
	require.Error(t, err)

	err = svc.ChangePassword(authFor(user), dto.ChangePasswordRequest{
		OldPassword: "rahasia1", NewPassword: "barubanget",
	})
	require.NoError(t, err)

	fresh, err := svc.GetByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(fresh.Password), []byte("barubanget")))
}

func TestSetProfileImageReturnsOld(t *testing.T) {
	svc := setupUserService(t)
	user := createUser(t, svc, "budi", "STAFF")

	first := "https://blob.test/profiles/a.jpg"
	old, err := svc.SetProfileImage(authFor(user), &first)
	require.NoError(t, err)
	assert.Nil(t, old)

	second := "https://blob.test/profiles/b.jpg"
	old, err = svc.SetProfileImage(authFor(user), &second)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.Equal(t, first, *old)
}
