package models

type Category struct {
	BaseModel

	Slug  string `json:"slug" gorm:"uniqueIndex"`
	Name  string `json:"name" gorm:"uniqueIndex"`
	Posts []Post `json:"posts,omitempty"`
}
