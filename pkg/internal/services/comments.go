package services

import (
	"fmt"
	"strings"

	"github.com/chroniclehq/chronicle/pkg/internal/models"
	"gorm.io/gorm"
)

// ListComment returns every comment of a post, oldest first, with the
// author expanded.
func ListComment(tx *gorm.DB, postId uint) ([]models.Comment, error) {
	var items []models.Comment
	if err := tx.
		Preload("Author").
		Where("post_id = ?", postId).
		Order("created_at ASC, id ASC").
		Find(&items).Error; err != nil {
		return items, err
	}

	return items, nil
}

func GetComment(tx *gorm.DB, id uint) (models.Comment, error) {
	var item models.Comment
	if err := tx.
		Preload("Author").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	return item, nil
}

// NewComment appends a remark to an existing post. The post lookup error
// passes through untouched so callers can tell a missing post apart from
// malformed input.
func NewComment(tx *gorm.DB, author models.Account, postId uint, content string) (models.Comment, error) {
	if len(strings.TrimSpace(content)) < models.CommentMinLength {
		return models.Comment{}, fmt.Errorf("comment content must be at least %d characters", models.CommentMinLength)
	}

	var post models.Post
	if err := tx.Select("id").Where("id = ?", postId).First(&post).Error; err != nil {
		return models.Comment{}, err
	}

	item := models.Comment{
		Content:  content,
		PostID:   post.ID,
		AuthorID: author.ID,
	}

	if err := tx.Create(&item).Error; err != nil {
		return item, err
	}

	return GetComment(tx, item.ID)
}

func EditComment(tx *gorm.DB, item models.Comment, content string) (models.Comment, error) {
	if len(strings.TrimSpace(content)) < models.CommentMinLength {
		return item, fmt.Errorf("comment content must be at least %d characters", models.CommentMinLength)
	}

	item.Content = content
	if err := tx.Save(&item).Error; err != nil {
		return item, err
	}

	return GetComment(tx, item.ID)
}

func DeleteComment(tx *gorm.DB, item models.Comment) error {
	return tx.Delete(&item).Error
}
