package models

import "time"

const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
)

type Post struct {
	BaseModel

	Title    string `json:"title" gorm:"uniqueIndex"`
	Slug     string `json:"slug" gorm:"uniqueIndex"`
	Content  string `json:"content"`
	Language string `json:"language"`

	FeaturedImage *string `json:"featured_image"`

	Status      string     `json:"status" gorm:"default:draft"`
	PublishedAt *time.Time `json:"published_at"`
	EditedAt    *time.Time `json:"edited_at"`

	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`

	CategoryID uint     `json:"category_id"`
	Category   Category `json:"category"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`
}

// IsPublished reports whether the post left the draft state.
func (v Post) IsPublished() bool {
	return v.Status == PostStatusPublished
}
