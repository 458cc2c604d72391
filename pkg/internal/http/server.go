package http

import (
	"errors"

	pkg "github.com/chroniclehq/chronicle/pkg/internal"
	"github.com/chroniclehq/chronicle/pkg/internal/http/admin"
	"github.com/chroniclehq/chronicle/pkg/internal/http/api"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"

	"github.com/eko/gocache/lib/v4/store"
)

type App struct {
	app *fiber.App
}

func NewServer(db *gorm.DB, st store.StoreInterface) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Chronicle",
		AppName:               "Chronicle v" + pkg.AppVersion,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		BodyLimit:             8 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			if code == fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("An internal server error occurred...")
			}
			return c.Status(code).JSON(fiber.Map{
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     viper.GetString("client.origin"),
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))

	app.Use(authContext(db))

	app.Static(
		"/uploads",
		viper.GetString("uploads.path"),
		fiber.Static{MaxAge: 3600},
	)

	api.MapControllers(app, "/api", api.NewController(db, st, viper.GetString("uploads.path")))
	admin.MapControllers(app, "/api/admin", admin.NewController(db))

	return &App{app}
}

// Fiber exposes the underlying application, mainly for handler tests
// driving the fully wired server in-process.
func (v *App) Fiber() *fiber.App {
	return v.app
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}
