package api

import (
	"errors"

	"github.com/chroniclehq/chronicle/pkg/internal/http/exts"
	"github.com/chroniclehq/chronicle/pkg/internal/security"
	"github.com/chroniclehq/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func (v *Controller) register(c *fiber.Ctx) error {
	var data struct {
		Username string `json:"username" form:"username" validate:"required,min=3,max=64"`
		Email    string `json:"email" form:"email" validate:"required,email"`
		// bcrypt only consumes the first 72 bytes; longer input is
		// rejected up front instead of being silently truncated.
		Password string `json:"password" form:"password" validate:"required,min=6,max=72"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	// Past validation, the only client-caused failure left is a
	// duplicate identity; anything else is ours.
	account, err := services.NewAccount(v.db, data.Username, data.Email, data.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	token, err := security.IssueToken(account, viper.GetString("security.jwt_secret"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user":  account,
		"token": token,
	})
}

func (v *Controller) login(c *fiber.Ctx) error {
	var data struct {
		Email    string `json:"email" form:"email" validate:"required,email"`
		Password string `json:"password" form:"password" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	account, err := services.AuthenticateAccount(v.db, data.Email, data.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}

	token, err := security.IssueToken(account, viper.GetString("security.jwt_secret"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"user":  account,
		"token": token,
	})
}
