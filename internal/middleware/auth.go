package middleware

import (
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/dto"
	"github.com/ahmetcoskunkizilkaya/movie-server/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenKey  = "user"
	claimsKey = "claims"
)

// TokenVerifier is satisfied by services.TokenService.
type TokenVerifier interface {
	KeyFunc(t *jwt.Token) (interface{}, error)
	Verify(raw string) (jwt.MapClaims, error)
}

// JWTProtected accepts "Authorization: Bearer <token>". jwtware extracts the
// token and checks the signature, then the token service verifies the claims
// (expiry is mandatory).
func JWTProtected(tokens TokenVerifier) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc:    tokens.KeyFunc,
		ContextKey: tokenKey,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals(tokenKey).(*jwt.Token)
			if !ok || token == nil {
				return unauthorized(c)
			}
			claims, err := tokens.Verify(token.Raw)
			if err != nil {
				return unauthorized(c)
			}
			c.Locals(claimsKey, claims)
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return unauthorized(c)
		},
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error:   true,
		Message: "unauthorized access",
	})
}

// CallerEmail returns the email claim of the verified token, or "" when the
// route is not behind JWTProtected.
func CallerEmail(c *fiber.Ctx) string {
	claims, ok := c.Locals(claimsKey).(jwt.MapClaims)
	if !ok {
		return ""
	}
	return services.Email(claims)
}
