package api

import (
	"errors"

	"github.com/chroniclehq/chronicle/pkg/internal/http/exts"
	"github.com/chroniclehq/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func (v *Controller) listCategories(c *fiber.Ctx) error {
	categories, err := services.ListCategory(v.db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(categories)
}

func (v *Controller) createCategory(c *fiber.Ctx) error {
	if viper.GetBool("security.categories_admin_only") {
		if err := exts.EnsureModerator(c); err != nil {
			return err
		}
	} else if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}

	var data struct {
		Name string `json:"name" form:"name" validate:"required,min=3,max=256"`
		Slug string `json:"slug" form:"slug" validate:"omitempty,lowercase,max=256"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	category, err := services.NewCategory(v.db, v.cache, data.Name, data.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}
