package models

// CommentMinLength is the shortest content a comment may carry.
const CommentMinLength = 3

type Comment struct {
	BaseModel

	Content string `json:"content"`

	PostID uint `json:"post_id"`
	Post   Post `json:"-"`

	AuthorID uint    `json:"author_id"`
	Author   Account `json:"author"`
}
