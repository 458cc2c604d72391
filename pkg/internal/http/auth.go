package http

import (
	"strings"

	"github.com/chroniclehq/chronicle/pkg/internal/security"
	"github.com/chroniclehq/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// authContext resolves the bearer credential, when one is attached, into
// an account stored at c.Locals("user"). Requests without a usable token
// pass through anonymously; the per-route Ensure* helpers decide whether
// that is acceptable.
func authContext(db *gorm.DB) fiber.Handler {
	secret := viper.GetString("security.jwt_secret")

	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || len(token) == 0 {
			return c.Next()
		}

		id, err := security.VerifyToken(token, secret)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid or expired token")
		}

		account, err := services.GetAccount(db, id)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "token subject no longer exists")
		}

		c.Locals("user", account)
		return c.Next()
	}
}
