package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/aravind-gm/CINEPLEXFINAL/internal/auth"
)

// ClaimsKey is the Locals key under which validated token claims are stored.
const ClaimsKey = "auth_claims"

// RequireAuth validates the bearer token on incoming requests and stores the
// claims in Locals. Requests without a valid token are rejected with 401; no
// detail about what was wrong with the credential is leaked.
func RequireAuth(jwtManager *auth.JWTManager) fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid Authorization header format, expected 'Bearer <token>'",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired token",
			})
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// ClaimsFromContext returns the validated claims stored by RequireAuth.
func ClaimsFromContext(c fiber.Ctx) (*auth.Claims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*auth.Claims)
	return claims, ok
}
