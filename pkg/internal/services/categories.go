package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"gorm.io/gorm"
)

const categoryCacheTag = "category-probe"

func categoryCacheKey(probe string) string {
	return fmt.Sprintf("category-probe#%s", probe)
}

func ListCategory(tx *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := tx.Order("created_at DESC").Find(&categories).Error

	return categories, err
}

func GetCategory(tx *gorm.DB, slug string) (models.Category, error) {
	var category models.Category
	if err := tx.Where(models.Category{Slug: slug}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

func GetCategoryWithID(tx *gorm.DB, id uint) (models.Category, error) {
	var category models.Category
	if err := tx.Where(models.Category{
		BaseModel: models.BaseModel{ID: id},
	}).First(&category).Error; err != nil {
		return category, err
	}
	return category, nil
}

// ResolveCategory looks a category up by numeric id, name, or slug and
// keeps the answer in the local cache for a short while; category
// cardinality is small and renames are rare.
func ResolveCategory(tx *gorm.DB, st store.StoreInterface, probe string) (models.Category, error) {
	marshal := marshaler.New(cache.New[any](st))
	ctx := context.Background()

	if hit, err := marshal.Get(ctx, categoryCacheKey(probe), new(models.Category)); err == nil {
		return *hit.(*models.Category), nil
	}

	var category models.Category
	var err error
	if id, numErr := strconv.Atoi(probe); numErr == nil {
		category, err = GetCategoryWithID(tx, uint(id))
	} else {
		err = tx.Where("name = ? OR slug = ?", probe, probe).First(&category).Error
	}
	if err != nil {
		return category, err
	}

	_ = marshal.Set(
		ctx,
		categoryCacheKey(probe),
		category,
		store.WithExpiration(5*time.Minute),
		store.WithTags([]string{categoryCacheTag}),
	)

	return category, nil
}

// NewCategory persists a category, deriving the slug from the name when
// one was not supplied. Duplicate names or slugs surface as a
// duplicated-key error via the unique indexes.
func NewCategory(tx *gorm.DB, st store.StoreInterface, name, slug string) (models.Category, error) {
	if len(slug) == 0 {
		slug = Slugify(name)
	}

	var probe int64
	if err := tx.Model(&models.Category{}).
		Where("name = ? OR slug = ?", name, slug).
		Count(&probe).Error; err != nil {
		return models.Category{}, err
	} else if probe > 0 {
		return models.Category{}, fmt.Errorf("category already exists: %w", gorm.ErrDuplicatedKey)
	}

	category := models.Category{
		Name: name,
		Slug: slug,
	}

	if err := tx.Create(&category).Error; err != nil {
		return category, err
	}

	flushCategoryCache(st)
	return category, nil
}

// EditCategory renames a category; the slug re-derives from the new name
// so it stays a pure function of the name.
func EditCategory(tx *gorm.DB, st store.StoreInterface, category models.Category, name string) (models.Category, error) {
	category.Name = name
	category.Slug = Slugify(name)

	if err := tx.Save(&category).Error; err != nil {
		return category, err
	}

	flushCategoryCache(st)
	return category, nil
}

func DeleteCategory(tx *gorm.DB, st store.StoreInterface, category models.Category) error {
	if err := tx.Delete(&category).Error; err != nil {
		return err
	}

	flushCategoryCache(st)
	return nil
}

func flushCategoryCache(st store.StoreInterface) {
	marshal := marshaler.New(cache.New[any](st))
	_ = marshal.Invalidate(context.Background(), store.WithInvalidateTags([]string{categoryCacheTag}))
}
