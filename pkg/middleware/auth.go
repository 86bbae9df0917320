// Package middleware holds fiber middleware shared by the route groups.
package middleware

import (
	"errors"

	"github.com/amirasaad/vmadmin/pkg/config"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected requires a valid HS256 bearer token. The parsed token is
// stored under the "user" local.
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	body := fiber.Map{"type": "about:blank", "instance": c.OriginalURL()}
	status := fiber.StatusUnauthorized
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
		status = fiber.StatusBadRequest
		body["title"] = "Missing or malformed JWT"
	} else {
		body["title"] = "Invalid or expired JWT"
	}
	body["status"] = status
	return c.Status(status).JSON(body, "application/problem+json")
}
