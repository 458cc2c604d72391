package admin

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Controller struct {
	db *gorm.DB
}

func NewController(db *gorm.DB) *Controller {
	return &Controller{db: db}
}

func MapControllers(app *fiber.App, baseURL string, ctrl *Controller) {
	admin := app.Group(baseURL)
	{
		admin.Put("/accounts/:accountId/role", ctrl.setAccountRole)
	}
}
