package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	pkgError "github.com/9rajputshivam/daytime-window-check/pkg/error"
)

// RequireJWT validates the bearer token the journey platform signs onto every
// activity call. HS256 against the shared secret; anything else is rejected
// with a typed auth error that Recovery translates into the 401 envelope.
func RequireJWT(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			panic(pkgError.AuthError("Missing Authorization header"))
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			logrus.WithError(err).Warn("[AUTH] rejected activity call with invalid JWT")
			panic(pkgError.AuthError("Invalid JWT"))
		}

		return c.Next()
	}
}
