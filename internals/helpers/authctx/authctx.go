// Package authctx menyediakan objek konteks otorisasi yang dipass eksplisit
// dari controller ke service, sebagai ganti pembacaan Locals di sembarang tempat.
package authctx

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"armadacheck_backend/internals/constants"
)

type AuthContext struct {
	UserID   uuid.UUID
	Role     string
	Username string
}

func (a AuthContext) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

func (a AuthContext) IsStaff() bool {
	return a.Role == constants.RoleStaff
}

// FromFiber membaca klaim yang di-set AuthMiddleware dari Locals.
func FromFiber(c *fiber.Ctx) (AuthContext, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return AuthContext{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return AuthContext{}, fiber.NewError(fiber.StatusUnauthorized, "Invalid UUID format")
	}

	role, _ := c.Locals("userRole").(string)
	username, _ := c.Locals("userName").(string)

	return AuthContext{
		UserID:   userID,
		Role:     role,
		Username: username,
	}, nil
}
