package services

import (
	"fmt"
	"math"
	"time"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Pagination describes one page of a listing, the way the public API
// reports it.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

const (
	defaultPostPage  = 1
	defaultPostLimit = 10
	maxPostLimit     = 100
)

// NormalizePagination clamps page and limit to sane values; absent or
// non-positive parameters fall back to the defaults.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPostPage
	}
	if limit < 1 {
		limit = defaultPostLimit
	}
	if limit > maxPostLimit {
		limit = maxPostLimit
	}
	return page, limit
}

func FilterPostWithStatus(tx *gorm.DB, status string) *gorm.DB {
	return tx.Where("status = ?", status)
}

func FilterPostWithAuthor(tx *gorm.DB, authorId uint) *gorm.DB {
	return tx.Where("author_id = ?", authorId)
}

func FilterPostWithCategory(tx *gorm.DB, categoryId uint) *gorm.DB {
	return tx.Where("category_id = ?", categoryId)
}

// FilterPostWithFuzzySearch matches the probe case-insensitively as a
// substring of either title or content. LOWER/LIKE instead of ILIKE so
// the same filter works on every supported driver.
func FilterPostWithFuzzySearch(tx *gorm.DB, probe string) *gorm.DB {
	if len(probe) == 0 {
		return tx
	}

	probe = "%" + escapeLike(probe) + "%"
	return tx.Where(
		"LOWER(title) LIKE LOWER(?) ESCAPE '\\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\\'",
		probe, probe,
	)
}

func escapeLike(probe string) string {
	out := make([]rune, 0, len(probe))
	for _, r := range probe {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

func PreloadGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author").
		Preload("Category")
}

func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func GetPostBySlug(tx *gorm.DB, slug string) (models.Post, error) {
	var item models.Post
	if err := PreloadGeneral(tx).
		Where("slug = ?", slug).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}

	return count, nil
}

// ListPost returns one page of posts, newest first, with author and
// category expanded, plus the pagination summary for the whole filtered
// set. Repeating the call with identical filters yields an identical
// ordered result set absent intervening writes.
func ListPost(tx *gorm.DB, page, limit int) ([]models.Post, Pagination, error) {
	page, limit = NormalizePagination(page, limit)

	total, err := CountPost(tx.Session(&gorm.Session{}))
	if err != nil {
		return nil, Pagination{}, err
	}

	var items []models.Post
	if err := PreloadGeneral(tx).
		Limit(limit).Offset((page - 1) * limit).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return items, Pagination{}, err
	}

	return items, Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// NewPost persists a post owned by the given author. The slug derives
// deterministically from the title; a collision on slug or title rejects
// the write instead of renaming it. The unique indexes stay the final
// arbiter under concurrent creates.
func NewPost(tx *gorm.DB, author models.Account, item models.Post) (models.Post, error) {
	if len(item.Status) == 0 {
		item.Status = models.PostStatusDraft
	}
	item.Slug = Slugify(item.Title)
	if len(item.Slug) == 0 {
		return item, fmt.Errorf("title must contain at least one alphanumeric character")
	}

	var probe int64
	if err := tx.Model(&models.Post{}).
		Where("title = ? OR slug = ?", item.Title, item.Slug).
		Count(&probe).Error; err != nil {
		return item, err
	} else if probe > 0 {
		return item, fmt.Errorf("a post with this title already exists: %w", gorm.ErrDuplicatedKey)
	}

	item.AuthorID = author.ID
	item.Language = DetectLanguage(item.Content)
	if item.IsPublished() && item.PublishedAt == nil {
		item.PublishedAt = lo.ToPtr(time.Now())
	}

	start := time.Now()
	if err := tx.Create(&item).Error; err != nil {
		return item, err
	}
	log.Debug().Dur("elapsed", time.Since(start)).Uint("id", item.ID).Msg("The post is posted.")

	return GetPost(tx, item.ID)
}

// EditPost applies an already-patched post. A changed title re-derives
// the slug, and the first transition out of draft stamps published_at.
// The draft to published transition is one-way.
func EditPost(tx *gorm.DB, item models.Post) (models.Post, error) {
	item.Slug = Slugify(item.Title)
	if len(item.Slug) == 0 {
		return item, fmt.Errorf("title must contain at least one alphanumeric character")
	}

	var probe int64
	if err := tx.Model(&models.Post{}).
		Where("(title = ? OR slug = ?) AND id != ?", item.Title, item.Slug, item.ID).
		Count(&probe).Error; err != nil {
		return item, err
	} else if probe > 0 {
		return item, fmt.Errorf("a post with this title already exists: %w", gorm.ErrDuplicatedKey)
	}

	item.Language = DetectLanguage(item.Content)
	item.EditedAt = lo.ToPtr(time.Now())
	if item.IsPublished() && item.PublishedAt == nil {
		item.PublishedAt = lo.ToPtr(time.Now())
	}

	if err := tx.Save(&item).Error; err != nil {
		return item, err
	}

	return GetPost(tx, item.ID)
}

// DeletePost removes a post together with its comments. The rows go
// away for real, so the title and slug free up immediately and the
// stored image can be removed right after without stranding a
// restorable record.
func DeletePost(tx *gorm.DB, item models.Post) error {
	return tx.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("post_id = ?", item.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&item).Error
	})
}
