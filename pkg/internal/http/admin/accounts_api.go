package admin

import (
	"github.com/chroniclehq/chronicle/pkg/internal/http/exts"
	"github.com/chroniclehq/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
)

// setAccountRole replaces the role enumeration and superuser flag of an
// account. This is the HTTP descendant of the old make-superuser
// one-off script.
func (v *Controller) setAccountRole(c *fiber.Ctx) error {
	if err := exts.EnsureModerator(c); err != nil {
		return err
	}

	id, err := c.ParamsInt("accountId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid account id")
	}

	var data struct {
		Role        string `json:"role" validate:"required,oneof=user admin"`
		IsSuperuser bool   `json:"is_superuser"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.GetAccount(v.db, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	account, err = services.SetAccountRole(v.db, account, data.Role, data.IsSuperuser)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(account)
}
