package exts

import (
	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validation = validator.New(validator.WithRequiredStructEnabled())

// BindAndValidate parses the request body into out and checks it against
// the struct's validate tags. Failures surface as 400s.
func BindAndValidate(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	} else if err := validation.Struct(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return nil
}

// EnsureAuthenticated requires a verified identity on the request.
func EnsureAuthenticated(c *fiber.Ctx) error {
	if _, ok := c.Locals("user").(models.Account); !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "you need to be logged in to do this")
	}

	return nil
}

// EnsureModerator requires an identity carrying the admin role or the
// superuser flag.
func EnsureModerator(c *fiber.Ctx) error {
	if err := EnsureAuthenticated(c); err != nil {
		return err
	}
	if user := c.Locals("user").(models.Account); !user.IsModerator() {
		return fiber.NewError(fiber.StatusForbidden, "you need moderation privileges to do this")
	}

	return nil
}
