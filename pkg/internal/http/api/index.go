package api

import (
	"github.com/eko/gocache/lib/v4/store"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Controller carries the dependencies every handler needs: the database
// handle, the local cache backend, and the upload directory. All of them
// are constructed once at process start and injected here.
type Controller struct {
	db        *gorm.DB
	cache     store.StoreInterface
	uploadDir string
}

func NewController(db *gorm.DB, cache store.StoreInterface, uploadDir string) *Controller {
	return &Controller{db: db, cache: cache, uploadDir: uploadDir}
}

func MapControllers(app *fiber.App, baseURL string, ctrl *Controller) {
	api := app.Group(baseURL)
	{
		auth := api.Group("/auth")
		{
			auth.Post("/register", ctrl.register)
			auth.Post("/login", ctrl.login)
		}

		api.Get("/users/me", ctrl.getUserinfo)

		api.Get("/categories", ctrl.listCategories)
		api.Post("/categories", ctrl.createCategory)

		api.Get("/posts", ctrl.listPosts)
		api.Post("/posts", ctrl.createPost)
		api.Get("/posts/:postId", ctrl.getPost)
		api.Put("/posts/:postId", ctrl.editPost)
		api.Delete("/posts/:postId", ctrl.deletePost)

		api.Get("/comments/:postId", ctrl.listComments)
		api.Post("/comments/:postId", ctrl.createComment)
		api.Put("/comments/:commentId", ctrl.editComment)
		api.Delete("/comments/:commentId", ctrl.deleteComment)
	}
}
