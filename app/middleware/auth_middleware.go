// Package middleware contains HTTP middleware functions for request processing
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/shiftwave/shiftwave/app/dto"
	"github.com/shiftwave/shiftwave/app/services"
	"github.com/shiftwave/shiftwave/models"
	"github.com/shiftwave/shiftwave/repository"
	"github.com/shiftwave/shiftwave/utils"
)

// AuthMiddleware handles JWT token validation for protected endpoints
type AuthMiddleware struct {
	tokenService services.TokenService
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(tokenService services.TokenService, userRepo repository.UserRepository, roleRepo repository.RoleRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
		userRepo:     userRepo,
		roleRepo:     roleRepo,
	}
}

// Authenticate validates the bearer token and resolves the supervisor account
// behind it. Downstream handlers read the user and role from locals.
func (m *AuthMiddleware) Authenticate() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Authorization header is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_AUTHORIZATION_HEADER",
				},
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Invalid authorization header format. Expected 'Bearer <token>'",
				Error: dto.ErrorDetail{
					Code: "INVALID_AUTHORIZATION_FORMAT",
				},
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Access token is required",
				Error: dto.ErrorDetail{
					Code: "MISSING_ACCESS_TOKEN",
				},
			})
		}

		claims, err := m.tokenService.ValidateToken(token)
		if err != nil {
			var errorCode string
			var message string

			if errors.Is(err, services.ErrTokenExpired) {
				errorCode = "TOKEN_EXPIRED"
				message = "Access token has expired"
			} else if errors.Is(err, services.ErrTokenInvalid) {
				errorCode = "TOKEN_INVALID"
				message = "Invalid access token"
			} else {
				errorCode = "TOKEN_VALIDATION_FAILED"
				message = "Token validation failed"
			}

			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: message,
				Error: dto.ErrorDetail{
					Code: errorCode,
				},
			})
		}

		user, err := m.userRepo.ByID(c.RequestCtx(), claims.UserID)
		if err != nil || user == nil || !utils.IsTrue(user.IsActive) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Account not found or disabled",
				Error: dto.ErrorDetail{
					Code: "ACCOUNT_DISABLED",
				},
			})
		}

		role := user.Role
		if role == nil {
			role, err = m.roleRepo.ByID(c.RequestCtx(), user.RoleID)
			if err != nil || role == nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
					Success: false,
					Message: "Account has no role",
					Error: dto.ErrorDetail{
						Code: "ROLE_NOT_FOUND",
					},
				})
			}
		}

		// Store user information in context for downstream handlers
		c.Locals("user_id", user.ID)
		c.Locals("user_name", user.DisplayName)
		c.Locals("user_role", role)
		c.Locals("token_id", claims.TokenID)

		// Store RequestID for audit logging
		if requestID := c.Get("X-Request-ID"); requestID != "" {
			c.Locals("request_id", requestID)
		}

		return c.Next()
	}
}

// RequirePermission gates an endpoint on a capability tag. It must run after
// Authenticate.
func (m *AuthMiddleware) RequirePermission(tag string) fiber.Handler {
	return func(c fiber.Ctx) error {
		role, ok := GetRoleFromContext(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{
				Success: false,
				Message: "Authentication required",
				Error: dto.ErrorDetail{
					Code: "AUTHENTICATION_REQUIRED",
				},
			})
		}

		if !role.HasPermission(tag) {
			return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{
				Success: false,
				Message: "Permission denied",
				Error: dto.ErrorDetail{
					Code: "PERMISSION_DENIED",
				},
			})
		}

		return c.Next()
	}
}

// GetUserIDFromContext extracts the supervisor's user ID from the request context
func GetUserIDFromContext(c fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("user_id").(uint)
	return userID, ok
}

// GetUserNameFromContext extracts the supervisor's display name from the request context
func GetUserNameFromContext(c fiber.Ctx) (string, bool) {
	name, ok := c.Locals("user_name").(string)
	return name, ok
}

// GetRoleFromContext extracts the resolved role from the request context
func GetRoleFromContext(c fiber.Ctx) (*models.Role, bool) {
	role, ok := c.Locals("user_role").(*models.Role)
	return role, ok
}
