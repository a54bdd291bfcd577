package middleware

import (
	"strings"

	"quiz-course/internal/domain"
	"quiz-course/internal/logger"
	"quiz-course/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	ActorKey            = "actor"
)

// Protected requires a valid access token and stores the resulting domain.Actor in locals.
func Protected(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return domain.NewUnauthorizedError("authorization header is missing", nil)
		}
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("authorization scheme is not Bearer", nil)
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewUnauthorizedError("token is empty", nil)
		}

		claims, err := authService.ValidateJWT(c.UserContext(), tokenString)
		if err != nil {
			return domain.NewUnauthorizedError("invalid or expired token", err)
		}

		c.Locals(ActorKey, authService.ActorFromClaims(claims))
		return c.Next()
	}
}

// OptionalAuth resolves the actor when a valid token is present and otherwise continues anonymously.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Next()
		}

		claims, err := authService.ValidateJWT(c.UserContext(), strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema)))
		if err != nil {
			logger.Get().Debug("OptionalAuth: proceeding as anonymous", zap.Error(err))
			return c.Next()
		}

		c.Locals(ActorKey, authService.ActorFromClaims(claims))
		return c.Next()
	}
}

// ActorFrom returns the actor stored by Protected or OptionalAuth, or the anonymous actor.
func ActorFrom(c *fiber.Ctx) domain.Actor {
	if actor, ok := c.Locals(ActorKey).(domain.Actor); ok {
		return actor
	}
	return domain.Actor{}
}
