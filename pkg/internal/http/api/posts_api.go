package api

import (
	"errors"
	"strconv"

	"github.com/chroniclehq/chronicle/pkg/internal/http/exts"
	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/chroniclehq/chronicle/pkg/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// universalPostFilter applies the shared listing filters: category (by
// id, name, or slug), status, and fuzzy search. An unknown category is
// treated as no filter, not an error.
func (v *Controller) universalPostFilter(c *fiber.Ctx, tx *gorm.DB) *gorm.DB {
	if probe := c.Query("category"); len(probe) > 0 {
		if category, err := services.ResolveCategory(v.db, v.cache, probe); err == nil {
			tx = services.FilterPostWithCategory(tx, category.ID)
		}
	}

	if status := c.Query("status"); len(status) > 0 {
		tx = services.FilterPostWithStatus(tx, status)
	}

	if probe := c.Query("search"); len(probe) > 0 {
		tx = services.FilterPostWithFuzzySearch(tx, probe)
	}

	return tx
}

func (v *Controller) listPosts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	limit := c.QueryInt("limit", 0)

	tx := v.universalPostFilter(c, v.db.Model(&models.Post{}))

	items, pagination, err := services.ListPost(tx, page, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(fiber.Map{
		"data":       items,
		"pagination": pagination,
	})
}

func (v *Controller) getPost(c *fiber.Ctx) error {
	id := c.Params("postId")

	var item models.Post
	var err error
	if numericId, paramErr := strconv.Atoi(id); paramErr == nil {
		item, err = services.GetPost(v.db, uint(numericId))
	} else {
		item, err = services.GetPostBySlug(v.db, id)
	}
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return c.JSON(item)
}

func (v *Controller) createPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	var data struct {
		Title    string `json:"title" form:"title" validate:"required,max=1024"`
		Content  string `json:"content" form:"content" validate:"required"`
		Category string `json:"category" form:"category" validate:"required"`
		Status   string `json:"status" form:"status" validate:"omitempty,oneof=draft published"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	category, err := services.ResolveCategory(v.db, v.cache, data.Category)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "category was not found")
	}

	item := models.Post{
		Title:      data.Title,
		Content:    data.Content,
		Status:     data.Status,
		CategoryID: category.ID,
	}

	// The image lands on disk before the record write; a failed write
	// hands the file back to the cleanup sweep via the compensating
	// removal below.
	if file, err := c.FormFile("featuredImage"); err == nil && file != nil {
		webPath, err := services.SaveUpload(c, file, v.uploadDir)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		item.FeaturedImage = &webPath
	}

	item, err = services.NewPost(v.db, user, item)
	if err != nil {
		if item.FeaturedImage != nil {
			services.RemoveUpload(v.uploadDir, *item.FeaturedImage)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (v *Controller) editPost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}

	var data struct {
		Title    *string `json:"title" form:"title" validate:"omitempty,max=1024"`
		Content  *string `json:"content" form:"content"`
		Category *string `json:"category" form:"category"`
		Status   *string `json:"status" form:"status" validate:"omitempty,oneof=draft published"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	item, err := services.GetPost(v.db, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !user.CanManage(item.AuthorID) {
		return fiber.NewError(fiber.StatusForbidden, "you are not allowed to edit this post")
	}

	// Patch semantics: only fields present in the request change.
	if data.Title != nil {
		item.Title = *data.Title
	}
	if data.Content != nil {
		item.Content = *data.Content
	}
	if data.Category != nil {
		category, err := services.ResolveCategory(v.db, v.cache, *data.Category)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "category was not found")
		}
		item.CategoryID = category.ID
		item.Category = category
	}
	if data.Status != nil {
		if item.IsPublished() && *data.Status == models.PostStatusDraft {
			return fiber.NewError(fiber.StatusBadRequest, "a published post cannot go back to draft")
		}
		item.Status = *data.Status
	}

	if file, err := c.FormFile("featuredImage"); err == nil && file != nil {
		webPath, err := services.SaveUpload(c, file, v.uploadDir)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if item.FeaturedImage != nil {
			services.RemoveUpload(v.uploadDir, *item.FeaturedImage)
		}
		item.FeaturedImage = &webPath
	}

	item, err = services.EditPost(v.db, item)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(item)
}

func (v *Controller) deletePost(c *fiber.Ctx) error {
	if err := exts.EnsureAuthenticated(c); err != nil {
		return err
	}
	user := c.Locals("user").(models.Account)

	id, err := c.ParamsInt("postId")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid post id")
	}

	item, err := services.GetPost(v.db, uint(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	if !user.CanManage(item.AuthorID) {
		return fiber.NewError(fiber.StatusForbidden, "you are not allowed to delete this post")
	}

	if err := services.DeletePost(v.db, item); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	if item.FeaturedImage != nil {
		services.RemoveUpload(v.uploadDir, *item.FeaturedImage)
	}

	return c.SendStatus(fiber.StatusOK)
}
